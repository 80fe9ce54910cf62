// Package testutil provides an in-memory database and config for tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/SketchShifter/warbler_backend/internal/config"
	"github.com/SketchShifter/warbler_backend/internal/mock"
	"github.com/SketchShifter/warbler_backend/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// NewConfig テスト用の設定
func NewConfig() *config.Config {
	return &config.Config{
		Database: config.DatabaseConfig{
			Driver:   "sqlite",
			DBName:   ":memory:",
			LogLevel: "silent",
		},
		Auth: config.AuthConfig{
			JWTSecret:   "test-secret",
			TokenExpiry: time.Hour,
			BcryptCost:  bcrypt.MinCost,
		},
		Session: config.SessionConfig{
			SecretKey:  "it's a secret",
			CookieName: "warbler_session",
			MaxAge:     3600,
		},
		Storage: config.StorageConfig{
			Provider:      "none",
			MaxUploadSize: 1024 * 1024,
			AllowedTypes:  []string{".png", ".jpg", ".jpeg", ".gif", ".webp"},
		},
	}
}

// NewDB マイグレーション済みのインメモリDBを作成
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := config.OpenDatabase(NewConfig().Database)
	if err != nil {
		t.Fatalf("データベースを開けませんでした: %v", err)
	}
	if err := models.Migrate(db); err != nil {
		t.Fatalf("マイグレーションに失敗しました: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// NewSeededDB モックデータを投入したDBを作成
func NewSeededDB(t testing.TB) *gorm.DB {
	t.Helper()

	db := NewDB(t)
	if err := mock.Load(context.Background(), db, bcrypt.MinCost); err != nil {
		t.Fatalf("モックデータの投入に失敗しました: %v", err)
	}
	return db
}
