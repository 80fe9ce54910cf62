package services

import (
	"context"
	"errors"
	"testing"

	"github.com/SketchShifter/warbler_backend/internal/models"
	"github.com/SketchShifter/warbler_backend/internal/repository"
)

func userIDs(users []models.User) []uint {
	ids := make([]uint, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids
}

func TestFollowIsDirected(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, true)

	// bobby(3) が john(1) をフォロー
	if err := env.relationships.Follow(ctx, 3, 1); err != nil {
		t.Fatalf("Follow() error = %v", err)
	}

	following, err := env.relationships.IsFollowing(ctx, 3, 1)
	if err != nil || !following {
		t.Errorf("IsFollowing(3, 1) = %v, %v, want true", following, err)
	}
	following, err = env.relationships.IsFollowing(ctx, 1, 3)
	if err != nil || following {
		t.Errorf("IsFollowing(1, 3) = %v, %v, want false", following, err)
	}
	followed, err := env.relationships.IsFollowedBy(ctx, 1, 3)
	if err != nil || !followed {
		t.Errorf("IsFollowedBy(1, 3) = %v, %v, want true", followed, err)
	}
	followed, err = env.relationships.IsFollowedBy(ctx, 3, 1)
	if err != nil || followed {
		t.Errorf("IsFollowedBy(3, 1) = %v, %v, want false", followed, err)
	}

	followers, err := env.relationships.Followers(ctx, 1)
	if err != nil {
		t.Fatalf("Followers() error = %v", err)
	}
	if ids := userIDs(followers); len(ids) != 1 || ids[0] != 3 {
		t.Errorf("Followers(1) = %v, want [3]", ids)
	}

	followees, err := env.relationships.Following(ctx, 3)
	if err != nil {
		t.Fatalf("Following() error = %v", err)
	}
	if ids := userIDs(followees); len(ids) != 1 || ids[0] != 1 {
		t.Errorf("Following(3) = %v, want [1]", ids)
	}
}

func TestFollowEdgeCases(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, true)

	if err := env.relationships.Follow(ctx, 1, 1); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Follow(self) error = %v, want ErrInvalidInput", err)
	}

	// 既存のフォローをもう一度作成しても重複しない
	if err := env.relationships.Follow(ctx, 1, 2); err != nil {
		t.Fatalf("Follow() twice error = %v", err)
	}
	following, err := env.relationships.Following(ctx, 1)
	if err != nil {
		t.Fatalf("Following() error = %v", err)
	}
	if len(following) != 1 {
		t.Errorf("Following(1) has %d entries, want 1", len(following))
	}

	if err := env.relationships.Follow(ctx, 1, 999); !errors.Is(err, repository.ErrConstraintViolation) {
		t.Errorf("Follow(unknown user) error = %v, want ErrConstraintViolation", err)
	}

	if err := env.relationships.Unfollow(ctx, 1, 2); err != nil {
		t.Fatalf("Unfollow() error = %v", err)
	}
	if ok, _ := env.relationships.IsFollowing(ctx, 1, 2); ok {
		t.Error("IsFollowing() after Unfollow should be false")
	}
}

func TestLikes(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, true)

	// john(1) が jane(2) のメッセージ(2) にいいね
	if err := env.relationships.Like(ctx, 1, 2); err != nil {
		t.Fatalf("Like() error = %v", err)
	}
	if err := env.relationships.Like(ctx, 1, 2); err != nil {
		t.Fatalf("Like() twice error = %v", err)
	}

	likes, err := env.relationships.Likes(ctx, 1)
	if err != nil {
		t.Fatalf("Likes() error = %v", err)
	}
	if len(likes) != 1 || likes[0].ID != 2 {
		t.Errorf("Likes(1) = %+v, want message 2 once", likes)
	}

	if err := env.relationships.Like(ctx, 1, 1); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Like(own message) error = %v, want ErrInvalidInput", err)
	}
	if err := env.relationships.Like(ctx, 1, 12345); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Like(missing message) error = %v, want ErrNotFound", err)
	}

	ids, err := env.relationships.LikedMessageIDs(ctx, 1)
	if err != nil {
		t.Fatalf("LikedMessageIDs() error = %v", err)
	}
	if len(ids) != 1 || ids[0] != 2 {
		t.Errorf("LikedMessageIDs(1) = %v, want [2]", ids)
	}
}

func TestToggleLike(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, true)

	liked, err := env.relationships.ToggleLike(ctx, 3, 1)
	if err != nil || !liked {
		t.Fatalf("ToggleLike() = %v, %v, want true", liked, err)
	}

	liked, err = env.relationships.ToggleLike(ctx, 3, 1)
	if err != nil || liked {
		t.Fatalf("second ToggleLike() = %v, %v, want false", liked, err)
	}

	likes, err := env.relationships.Likes(ctx, 3)
	if err != nil {
		t.Fatalf("Likes() error = %v", err)
	}
	if len(likes) != 0 {
		t.Errorf("Likes(3) = %d, want 0", len(likes))
	}
}
