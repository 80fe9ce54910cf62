package services

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/SketchShifter/warbler_backend/internal/config"
	"github.com/SketchShifter/warbler_backend/internal/models"
	"github.com/SketchShifter/warbler_backend/internal/repository"
)

// StatCount プロフィールに表示するカウンター
type StatCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// Profile ユーザーのプロフィール
// Stats は [メッセージ数, フォロワー数, フォロー数, いいね数] の順
type Profile struct {
	User     *models.User     `json:"user"`
	Messages []models.Message `json:"messages"`
	Stats    []StatCount      `json:"stats"`
}

// ProfileUpdate プロフィール更新内容（空文字の項目は変更しない。BioとLocationは常に上書き）
type ProfileUpdate struct {
	Username       string
	Email          string
	ImageURL       string
	HeaderImageURL string
	Bio            string
	Location       string
}

// ImageKind アップロードする画像の種類
type ImageKind string

const (
	ImageKindProfile ImageKind = "profile"
	ImageKindHeader  ImageKind = "header"
)

// UserService ユーザーに関するサービスインターフェース
type UserService interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	List(ctx context.Context, search string) ([]models.User, error)
	Profile(ctx context.Context, id uint) (*Profile, error)
	UpdateProfile(ctx context.Context, userID uint, password string, update ProfileUpdate) (*models.User, error)
	UploadImage(ctx context.Context, userID uint, kind ImageKind, file io.Reader, fileName string, size int64) (*models.User, error)
	DeleteAccount(ctx context.Context, userID uint) error
}

// userService UserServiceの実装
type userService struct {
	userRepo     repository.UserRepository
	messageRepo  repository.MessageRepository
	followRepo   repository.FollowRepository
	likeRepo     repository.LikeRepository
	imageService ImageService
	storage      config.StorageConfig
}

// NewUserService UserServiceを作成
func NewUserService(
	userRepo repository.UserRepository,
	messageRepo repository.MessageRepository,
	followRepo repository.FollowRepository,
	likeRepo repository.LikeRepository,
	imageService ImageService,
	storage config.StorageConfig,
) UserService {
	return &userService{
		userRepo:     userRepo,
		messageRepo:  messageRepo,
		followRepo:   followRepo,
		likeRepo:     likeRepo,
		imageService: imageService,
		storage:      storage,
	}
}

// GetByID IDでユーザーを取得
func (s *userService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

// List ユーザー一覧を取得
func (s *userService) List(ctx context.Context, search string) ([]models.User, error) {
	return s.userRepo.List(ctx, search)
}

// Profile プロフィールとカウンターを取得
func (s *userService) Profile(ctx context.Context, id uint) (*Profile, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.ListByUser(ctx, id, DefaultPageSize)
	if err != nil {
		return nil, err
	}

	counters := []struct {
		name  string
		count func(context.Context, uint) (int64, error)
	}{
		{"messages", s.messageRepo.CountByUser},
		{"followers", s.followRepo.CountTo},
		{"following", s.followRepo.CountFrom},
		{"likes", s.likeRepo.CountByUser},
	}

	stats := make([]StatCount, 0, len(counters))
	for _, c := range counters {
		n, err := c.count(ctx, id)
		if err != nil {
			return nil, err
		}
		stats = append(stats, StatCount{Name: c.name, Count: n})
	}

	return &Profile{
		User:     user,
		Messages: messages,
		Stats:    stats,
	}, nil
}

// UpdateProfile パスワードを再確認してプロフィールを更新
func (s *userService) UpdateProfile(ctx context.Context, userID uint, password string, update ProfileUpdate) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !checkPassword(user.Password, password) {
		return nil, ErrInvalidCredentials
	}

	if v := strings.TrimSpace(update.Username); v != "" {
		user.Username = v
	}
	if v := strings.TrimSpace(update.Email); v != "" {
		user.Email = v
	}
	if v := strings.TrimSpace(update.ImageURL); v != "" {
		user.ImageURL = v
	}
	if v := strings.TrimSpace(update.HeaderImageURL); v != "" {
		user.HeaderImageURL = v
	}
	user.Bio = update.Bio
	user.Location = update.Location

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// UploadImage 画像をストレージに保存し、ユーザーの画像URLを更新
func (s *userService) UploadImage(ctx context.Context, userID uint, kind ImageKind, file io.Reader, fileName string, size int64) (*models.User, error) {
	if s.imageService == nil {
		return nil, ErrStorageDisabled
	}
	if kind != ImageKindProfile && kind != ImageKindHeader {
		return nil, invalidInput("画像の種類が不正です")
	}
	if s.storage.MaxUploadSize > 0 && size > s.storage.MaxUploadSize {
		return nil, invalidInput("ファイルサイズが大きすぎます")
	}
	if !s.allowedType(fileName) {
		return nil, invalidInput("許可されていないファイル形式です")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	publicID, url, err := s.imageService.UploadImage(ctx, file, fileName)
	if err != nil {
		return nil, err
	}

	if kind == ImageKindHeader {
		user.HeaderImageURL = url
	} else {
		user.ImageURL = url
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		// 保存できなかった画像は削除しておく
		_ = s.imageService.DeleteImage(ctx, publicID)
		return nil, err
	}

	return user, nil
}

// DeleteAccount ユーザーと関連データを削除
func (s *userService) DeleteAccount(ctx context.Context, userID uint) error {
	return s.userRepo.Delete(ctx, userID)
}

func (s *userService) allowedType(fileName string) bool {
	ext := strings.ToLower(filepath.Ext(fileName))
	for _, t := range s.storage.AllowedTypes {
		if ext == t {
			return true
		}
	}
	return false
}
