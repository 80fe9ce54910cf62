package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/SketchShifter/warbler_backend/internal/mock"
	"github.com/SketchShifter/warbler_backend/internal/repository"
)

type fakeImageService struct {
	uploaded []string
	deleted  []string
	err      error
}

func (f *fakeImageService) UploadImage(ctx context.Context, file io.Reader, fileName string) (string, string, error) {
	if f.err != nil {
		return "", "", f.err
	}
	if _, err := io.ReadAll(file); err != nil {
		return "", "", err
	}
	f.uploaded = append(f.uploaded, fileName)
	return "warbler/" + fileName, "https://images.example.com/" + fileName, nil
}

func (f *fakeImageService) DeleteImage(ctx context.Context, publicID string) error {
	f.deleted = append(f.deleted, publicID)
	return nil
}

func TestProfileStats(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, false)
	users := env.userService(nil)

	owner, err := env.auth.Register(ctx, "owner", "owner@test.com", "password", "")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	other, err := env.auth.Register(ctx, "other", "other@test.com", "password", "")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if _, err := env.messageSvc.Post(ctx, owner.ID, "mine", ""); err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	theirs, err := env.messageSvc.Post(ctx, other.ID, "theirs", "")
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	if err := env.relationships.Like(ctx, owner.ID, theirs.ID); err != nil {
		t.Fatalf("Like() error = %v", err)
	}

	profile, err := users.Profile(ctx, owner.ID)
	if err != nil {
		t.Fatalf("Profile() error = %v", err)
	}

	want := []StatCount{
		{Name: "messages", Count: 1},
		{Name: "followers", Count: 0},
		{Name: "following", Count: 0},
		{Name: "likes", Count: 1},
	}
	if len(profile.Stats) != len(want) {
		t.Fatalf("Stats = %+v, want %+v", profile.Stats, want)
	}
	for i := range want {
		if profile.Stats[i] != want[i] {
			t.Errorf("Stats[%d] = %+v, want %+v", i, profile.Stats[i], want[i])
		}
	}
	if len(profile.Messages) != 1 || profile.Messages[0].Text != "mine" {
		t.Errorf("Messages = %+v", profile.Messages)
	}

	if _, err := users.Profile(ctx, 99999); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Profile(missing) error = %v, want ErrNotFound", err)
	}
}

func TestListUsersSearch(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, true)
	users := env.userService(nil)

	all, err := users.List(ctx, "")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != len(mock.Users) {
		t.Errorf("List() returned %d users, want %d", len(all), len(mock.Users))
	}

	found, err := users.List(ctx, "JANE")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(found) != 1 || found[0].Username != "janesmith" {
		t.Errorf("List(JANE) = %+v, want janesmith", found)
	}
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, true)
	users := env.userService(nil)

	update := ProfileUpdate{Bio: "New bio", Location: "Kyoto", Username: "johnny"}

	if _, err := users.UpdateProfile(ctx, 1, "wrong", update); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("UpdateProfile(wrong password) error = %v, want ErrInvalidCredentials", err)
	}

	user, err := users.UpdateProfile(ctx, 1, mock.Password, update)
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	if user.Username != "johnny" || user.Bio != "New bio" || user.Location != "Kyoto" {
		t.Errorf("UpdateProfile() = %+v", user)
	}
	if user.Email != mock.Users[0].Email {
		t.Errorf("Email changed to %q", user.Email)
	}

	// 他のユーザーと同じユーザー名には変更できない
	_, err = users.UpdateProfile(ctx, 1, mock.Password, ProfileUpdate{Username: "janesmith"})
	if !errors.Is(err, repository.ErrConstraintViolation) {
		t.Errorf("UpdateProfile(duplicate username) error = %v, want ErrConstraintViolation", err)
	}
}

func TestUploadImage(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, true)

	if _, err := env.userService(nil).UploadImage(ctx, 1, ImageKindProfile, strings.NewReader("png"), "me.png", 3); !errors.Is(err, ErrStorageDisabled) {
		t.Errorf("UploadImage() without storage error = %v, want ErrStorageDisabled", err)
	}

	images := &fakeImageService{}
	users := env.userService(images)

	user, err := users.UploadImage(ctx, 1, ImageKindHeader, strings.NewReader("png"), "header.png", 3)
	if err != nil {
		t.Fatalf("UploadImage() error = %v", err)
	}
	if user.HeaderImageURL != "https://images.example.com/header.png" {
		t.Errorf("HeaderImageURL = %q", user.HeaderImageURL)
	}

	tests := []struct {
		name     string
		kind     ImageKind
		fileName string
		size     int64
	}{
		{"unknown kind", ImageKind("banner"), "me.png", 3},
		{"disallowed type", ImageKindProfile, "me.exe", 3},
		{"too large", ImageKindProfile, "me.png", env.cfg.Storage.MaxUploadSize + 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := users.UploadImage(ctx, 1, tt.kind, strings.NewReader("x"), tt.fileName, tt.size)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("UploadImage() error = %v, want ErrInvalidInput", err)
			}
		})
	}

	if len(images.uploaded) != 1 {
		t.Errorf("uploaded %d images, want 1", len(images.uploaded))
	}
}

func TestDeleteAccount(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, true)
	users := env.userService(nil)

	// jane(2) は john(1) にフォローされ、メッセージを1件持つ
	if err := env.relationships.Like(ctx, 2, 1); err != nil {
		t.Fatalf("Like() error = %v", err)
	}

	if err := users.DeleteAccount(ctx, 2); err != nil {
		t.Fatalf("DeleteAccount() error = %v", err)
	}

	if _, err := users.GetByID(ctx, 2); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("GetByID() after delete error = %v, want ErrNotFound", err)
	}
	if _, err := env.messageSvc.Get(ctx, 2); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("message of deleted user still exists: %v", err)
	}
	following, err := env.relationships.Following(ctx, 1)
	if err != nil {
		t.Fatalf("Following() error = %v", err)
	}
	if len(following) != 0 {
		t.Errorf("Following(1) = %d, want 0", len(following))
	}

	if err := users.DeleteAccount(ctx, 2); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("second DeleteAccount() error = %v, want ErrNotFound", err)
	}
}
