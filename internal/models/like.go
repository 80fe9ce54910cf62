package models

import (
	"time"
)

// Like いいねモデル（ユーザーとメッセージの組で一意）
type Like struct {
	UserID    uint      `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	MessageID uint      `json:"message_id" gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time `json:"created_at"`

	// リレーション
	User    *User    `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Message *Message `json:"-" gorm:"foreignKey:MessageID;constraint:OnDelete:CASCADE"`
}

// TableName テーブル名指定
func (Like) TableName() string {
	return "likes"
}
