package repository

import (
	"context"

	"github.com/SketchShifter/warbler_backend/internal/models"

	"gorm.io/gorm"
)

// MessageRepository メッセージに関するデータベース操作を行うインターフェース
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	FindByID(ctx context.Context, id uint) (*models.Message, error)
	Delete(ctx context.Context, id uint) error
	ListByUser(ctx context.Context, userID uint, limit int) ([]models.Message, error)
	ListByUsers(ctx context.Context, userIDs []uint, limit int) ([]models.Message, error)
	ListLatest(ctx context.Context, limit int) ([]models.Message, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
}

// messageRepository MessageRepositoryの実装
type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository MessageRepositoryを作成
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// Create 新しいメッセージを作成
func (r *messageRepository) Create(ctx context.Context, message *models.Message) error {
	return translateError(r.db.WithContext(ctx).Create(message).Error)
}

// FindByID IDでメッセージを検索
func (r *messageRepository) FindByID(ctx context.Context, id uint) (*models.Message, error) {
	var message models.Message
	if err := r.db.WithContext(ctx).Preload("User").First(&message, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &message, nil
}

// Delete メッセージを削除（いいねは外部キーのCASCADEに加えて明示的にも削除）
func (r *messageRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("message_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Message{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translateError(err)
}

// ListByUser ユーザーのメッセージを新しい順に取得
func (r *messageRepository) ListByUser(ctx context.Context, userID uint, limit int) ([]models.Message, error) {
	return r.ListByUsers(ctx, []uint{userID}, limit)
}

// ListByUsers 複数ユーザーのメッセージを新しい順に取得
func (r *messageRepository) ListByUsers(ctx context.Context, userIDs []uint, limit int) ([]models.Message, error) {
	var messages []models.Message
	if len(userIDs) == 0 {
		return messages, nil
	}

	if err := r.recent(ctx, limit).
		Where("user_id IN ?", userIDs).
		Find(&messages).Error; err != nil {
		return nil, translateError(err)
	}
	return messages, nil
}

// ListLatest 全体の最新メッセージを取得
func (r *messageRepository) ListLatest(ctx context.Context, limit int) ([]models.Message, error) {
	var messages []models.Message
	if err := r.recent(ctx, limit).Find(&messages).Error; err != nil {
		return nil, translateError(err)
	}
	return messages, nil
}

// CountByUser ユーザーのメッセージ数を取得
func (r *messageRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Message{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, translateError(err)
	}
	return count, nil
}

// recent 新しい順（同時刻ならID降順）のクエリ
func (r *messageRepository) recent(ctx context.Context, limit int) *gorm.DB {
	query := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	return query
}
