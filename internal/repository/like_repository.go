package repository

import (
	"context"

	"github.com/SketchShifter/warbler_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository いいねに関するデータベース操作を行うインターフェース
type LikeRepository interface {
	Create(ctx context.Context, userID, messageID uint) error
	Delete(ctx context.Context, userID, messageID uint) error
	Exists(ctx context.Context, userID, messageID uint) (bool, error)
	ListMessagesByUser(ctx context.Context, userID uint) ([]models.Message, error)
	LikedMessageIDs(ctx context.Context, userID uint) ([]uint, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
}

// likeRepository LikeRepositoryの実装
type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository LikeRepositoryを作成
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Create いいねを追加（既に存在する場合は何もしない）
func (r *likeRepository) Create(ctx context.Context, userID, messageID uint) error {
	like := &models.Like{UserID: userID, MessageID: messageID}
	return translateError(r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(like).Error)
}

// Delete いいねを削除
func (r *likeRepository) Delete(ctx context.Context, userID, messageID uint) error {
	return translateError(r.db.WithContext(ctx).
		Where("user_id = ? AND message_id = ?", userID, messageID).
		Delete(&models.Like{}).Error)
}

// Exists ユーザーがメッセージにいいねしているか確認
func (r *likeRepository) Exists(ctx context.Context, userID, messageID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ? AND message_id = ?", userID, messageID).
		Count(&count).Error; err != nil {
		return false, translateError(err)
	}
	return count > 0, nil
}

// ListMessagesByUser ユーザーがいいねしたメッセージをいいねした順に取得
func (r *likeRepository) ListMessagesByUser(ctx context.Context, userID uint) ([]models.Message, error) {
	var messages []models.Message
	if err := r.db.WithContext(ctx).
		Preload("User").
		Joins("JOIN likes ON likes.message_id = messages.id").
		Where("likes.user_id = ?", userID).
		Order("likes.created_at ASC").
		Order("messages.id ASC").
		Find(&messages).Error; err != nil {
		return nil, translateError(err)
	}
	return messages, nil
}

// LikedMessageIDs ユーザーがいいねしたメッセージIDを取得
func (r *likeRepository) LikedMessageIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ?", userID).
		Pluck("message_id", &ids).Error; err != nil {
		return nil, translateError(err)
	}
	return ids, nil
}

// CountByUser ユーザーのいいね数を取得
func (r *likeRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, translateError(err)
	}
	return count, nil
}
