package models

import (
	"gorm.io/gorm"
)

// Migrate すべてのテーブルを作成・更新
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Message{},
		&Follow{},
		&Like{},
	)
}

// DropAll すべてのテーブルを削除（依存の逆順）
func DropAll(db *gorm.DB) error {
	return db.Migrator().DropTable(
		&Like{},
		&Follow{},
		&Message{},
		&User{},
	)
}
