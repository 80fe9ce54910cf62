package repository_test

import (
	"context"
	"testing"

	"github.com/SketchShifter/warbler_backend/internal/repository"
	"github.com/SketchShifter/warbler_backend/internal/testutil"
)

func TestFollowEdgesKeepInsertionOrder(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewSeededDB(t)
	follows := repository.NewFollowRepository(db)

	// john(1) は既に jane(2) をフォロー済み
	if err := follows.Create(ctx, 1, 3); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := follows.Create(ctx, 2, 3); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	following, err := follows.EdgesFrom(ctx, 1)
	if err != nil {
		t.Fatalf("EdgesFrom() error = %v", err)
	}
	if len(following) != 2 || following[0].ID != 2 || following[1].ID != 3 {
		t.Errorf("EdgesFrom(1) = %+v, want [2 3]", following)
	}

	followers, err := follows.EdgesTo(ctx, 3)
	if err != nil {
		t.Fatalf("EdgesTo() error = %v", err)
	}
	if len(followers) != 2 || followers[0].ID != 1 || followers[1].ID != 2 {
		t.Errorf("EdgesTo(3) = %+v, want [1 2]", followers)
	}

	from, err := follows.CountFrom(ctx, 1)
	if err != nil || from != 2 {
		t.Errorf("CountFrom(1) = %d, %v, want 2", from, err)
	}
	to, err := follows.CountTo(ctx, 3)
	if err != nil || to != 2 {
		t.Errorf("CountTo(3) = %d, %v, want 2", to, err)
	}

	ids, err := follows.FolloweeIDs(ctx, 1)
	if err != nil {
		t.Fatalf("FolloweeIDs() error = %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("FolloweeIDs(1) = %v, want 2 ids", ids)
	}
}
