package models

import (
	"fmt"
	"time"
)

const (
	// DefaultImageURL プロフィール画像のデフォルト
	DefaultImageURL = "/static/images/default-pic.png"
	// DefaultHeaderImageURL ヘッダー画像のデフォルト
	DefaultHeaderImageURL = "/static/images/warbler-hero.jpg"
)

// User ユーザーモデル
type User struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Email          string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Username       string    `json:"username" gorm:"size:255;uniqueIndex;not null"`
	ImageURL       string    `json:"image_url" gorm:"column:image_url"`
	HeaderImageURL string    `json:"header_image_url" gorm:"column:header_image_url"`
	Bio            string    `json:"bio"`
	Location       string    `json:"location"`
	Password       string    `json:"-" gorm:"not null"`
	CreatedAt      time.Time `json:"created_at"`
}

// TableName テーブル名指定
func (User) TableName() string {
	return "users"
}

func (u *User) String() string {
	return fmt.Sprintf("<User #%d: %s, %s>", u.ID, u.Username, u.Email)
}
