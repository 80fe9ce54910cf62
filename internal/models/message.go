package models

import (
	"time"
)

// TimestampLayout 表示用タイムスタンプの書式（例: 11 August 2020）
const TimestampLayout = "02 January 2006"

// MaxMessageLength メッセージ本文の最大長
const MaxMessageLength = 140

// Message メッセージ（warble）モデル
type Message struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Text      string    `json:"text" gorm:"size:140;not null"`
	Timestamp string    `json:"timestamp" gorm:"not null"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`

	// リレーション
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName テーブル名指定
func (Message) TableName() string {
	return "messages"
}
