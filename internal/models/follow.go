package models

import (
	"time"
)

// Follow フォロー関係（FollowerがFolloweeをフォローする）
type Follow struct {
	FollowerID uint      `json:"follower_id" gorm:"primaryKey;autoIncrement:false"`
	FolloweeID uint      `json:"followee_id" gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt  time.Time `json:"created_at"`

	// リレーション
	Follower *User `json:"-" gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE"`
	Followee *User `json:"-" gorm:"foreignKey:FolloweeID;constraint:OnDelete:CASCADE"`
}

// TableName テーブル名指定
func (Follow) TableName() string {
	return "follows"
}
