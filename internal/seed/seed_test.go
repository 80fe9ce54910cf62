package seed

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/SketchShifter/warbler_backend/internal/models"
	"github.com/SketchShifter/warbler_backend/internal/services"
	"github.com/SketchShifter/warbler_backend/internal/testutil"

	"golang.org/x/crypto/bcrypt"
)

const (
	usersCSV = `email,username,image_url,password,bio,header_image_url,location
alice@test.com,alice,,password,hello,,Tokyo
bob@test.com,bob,/static/images/bob.png,password,,,
`
	messagesCSV = `text,timestamp,user_id
First warble,01 January 2024,1
Second warble,02 January 2024,2
`
	followsCSV = `user_being_followed_id,user_following_id
1,2
`
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
	}
	return dir
}

func TestLoadDir(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	dir := writeFiles(t, map[string]string{
		"users.csv":    usersCSV,
		"messages.csv": messagesCSV,
		"follows.csv":  followsCSV,
	})

	counts, err := LoadDir(ctx, db, dir, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	if counts != (Counts{Users: 2, Messages: 2, Follows: 1}) {
		t.Errorf("LoadDir() = %+v", counts)
	}

	var alice models.User
	if err := db.Where("username = ?", "alice").First(&alice).Error; err != nil {
		t.Fatalf("alice not found: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(alice.Password), []byte("password")) != nil {
		t.Error("plain password should be hashed on load")
	}
	if cost, err := bcrypt.Cost([]byte(alice.Password)); err != nil || cost != bcrypt.MinCost {
		t.Errorf("bcrypt cost = %d, %v, want %d", cost, err, bcrypt.MinCost)
	}
	if alice.ImageURL != models.DefaultImageURL || alice.HeaderImageURL != models.DefaultHeaderImageURL {
		t.Errorf("alice images = %q, %q, want defaults", alice.ImageURL, alice.HeaderImageURL)
	}

	var follow models.Follow
	if err := db.First(&follow).Error; err != nil {
		t.Fatalf("follow not found: %v", err)
	}
	if follow.FollowerID != 2 || follow.FolloweeID != 1 {
		t.Errorf("follow = %d -> %d, want 2 -> 1", follow.FollowerID, follow.FolloweeID)
	}
}

func TestLoadRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)

	// 存在しないユーザーへのメッセージは外部キー制約で失敗する
	_, err := Load(ctx, db, bcrypt.MinCost,
		strings.NewReader(usersCSV),
		strings.NewReader("text,timestamp,user_id\norphan,01 January 2024,99\n"),
		strings.NewReader(followsCSV),
	)
	if err == nil {
		t.Fatal("Load() should fail on a dangling user_id")
	}

	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 0 {
		t.Errorf("failed load left %d users", count)
	}
}

func TestLoadDirMissingFile(t *testing.T) {
	db := testutil.NewDB(t)
	dir := writeFiles(t, map[string]string{"users.csv": usersCSV})

	if _, err := LoadDir(context.Background(), db, dir, bcrypt.MinCost); err == nil {
		t.Error("LoadDir() should fail when messages.csv is missing")
	}
}

func TestLoadRejectsInvalidRows(t *testing.T) {
	const messagesHeader = "text,timestamp,user_id\n"

	tests := []struct {
		name     string
		users    string
		messages string
	}{
		{
			name:     "empty password",
			users:    "email,username,password\nc@test.com,carol,\n",
			messages: messagesHeader,
		},
		{
			name:     "password over 72 bytes",
			users:    "email,username,password\nc@test.com,carol," + strings.Repeat("a", 73) + "\n",
			messages: messagesHeader,
		},
		{
			name:     "blank message",
			users:    usersCSV,
			messages: messagesHeader + "   ,01 January 2024,1\n",
		},
		{
			name:     "message over 140 characters",
			users:    usersCSV,
			messages: messagesHeader + strings.Repeat("a", 141) + ",01 January 2024,1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testutil.NewDB(t)

			_, err := Load(context.Background(), db, bcrypt.MinCost,
				strings.NewReader(tt.users),
				strings.NewReader(tt.messages),
				strings.NewReader("follower_id,followee_id\n"),
			)
			if !errors.Is(err, services.ErrInvalidInput) {
				t.Fatalf("Load() error = %v, want ErrInvalidInput", err)
			}

			var count int64
			if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
				t.Fatalf("Count() error = %v", err)
			}
			if count != 0 {
				t.Errorf("rejected load left %d users", count)
			}
		})
	}
}
