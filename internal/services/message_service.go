package services

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/SketchShifter/warbler_backend/internal/models"
	"github.com/SketchShifter/warbler_backend/internal/repository"
)

// DefaultPageSize 一覧取得の件数
const DefaultPageSize = 100

// MessageService メッセージに関するサービスインターフェース
// 認可は行わない（呼び出し側が authz.Gate で確認する）
type MessageService interface {
	Post(ctx context.Context, authorID uint, text, timestamp string) (*models.Message, error)
	Get(ctx context.Context, id uint) (*models.Message, error)
	Delete(ctx context.Context, id uint) error
	ListByUser(ctx context.Context, userID uint, limit int) ([]models.Message, error)
	Timeline(ctx context.Context, userID uint, limit int) ([]models.Message, error)
	Latest(ctx context.Context, limit int) ([]models.Message, error)
}

// messageService MessageServiceの実装
type messageService struct {
	messageRepo repository.MessageRepository
	followRepo  repository.FollowRepository
	now         func() time.Time
}

// NewMessageService MessageServiceを作成
func NewMessageService(messageRepo repository.MessageRepository, followRepo repository.FollowRepository) MessageService {
	return &messageService{
		messageRepo: messageRepo,
		followRepo:  followRepo,
		now:         time.Now,
	}
}

// Post 新しいメッセージを投稿
func (s *messageService) Post(ctx context.Context, authorID uint, text, timestamp string) (*models.Message, error) {
	if err := ValidateMessageText(text); err != nil {
		return nil, err
	}

	if timestamp == "" {
		timestamp = s.now().UTC().Format(models.TimestampLayout)
	}

	message := &models.Message{
		Text:      text,
		Timestamp: timestamp,
		UserID:    authorID,
	}

	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	return message, nil
}

// Get IDでメッセージを取得
func (s *messageService) Get(ctx context.Context, id uint) (*models.Message, error) {
	return s.messageRepo.FindByID(ctx, id)
}

// Delete メッセージを削除
func (s *messageService) Delete(ctx context.Context, id uint) error {
	return s.messageRepo.Delete(ctx, id)
}

// ListByUser ユーザーのメッセージを新しい順に取得
func (s *messageService) ListByUser(ctx context.Context, userID uint, limit int) ([]models.Message, error) {
	return s.messageRepo.ListByUser(ctx, userID, normalizeLimit(limit))
}

// Timeline 自分とフォロー中のユーザーのメッセージを新しい順に取得
func (s *messageService) Timeline(ctx context.Context, userID uint, limit int) ([]models.Message, error) {
	ids, err := s.followRepo.FolloweeIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids = append(ids, userID)

	return s.messageRepo.ListByUsers(ctx, ids, normalizeLimit(limit))
}

// Latest 全体の最新メッセージを取得
func (s *messageService) Latest(ctx context.Context, limit int) ([]models.Message, error) {
	return s.messageRepo.ListLatest(ctx, normalizeLimit(limit))
}

// ValidateMessageText 本文が空でなく140文字以内であることを確認
func ValidateMessageText(text string) error {
	if strings.TrimSpace(text) == "" {
		return invalidInput("メッセージ本文は必須です")
	}
	if utf8.RuneCountInString(text) > models.MaxMessageLength {
		return invalidInput("メッセージは140文字以内で入力してください")
	}
	return nil
}

func normalizeLimit(limit int) int {
	if limit < 1 || limit > DefaultPageSize {
		return DefaultPageSize
	}
	return limit
}
