package repository

import (
	"context"

	"github.com/SketchShifter/warbler_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository フォロー関係（有向エッジ）に関するデータベース操作を行うインターフェース
type FollowRepository interface {
	Create(ctx context.Context, followerID, followeeID uint) error
	Delete(ctx context.Context, followerID, followeeID uint) error
	Exists(ctx context.Context, followerID, followeeID uint) (bool, error)
	// EdgesFrom userIDがフォローしているユーザー
	EdgesFrom(ctx context.Context, userID uint) ([]models.User, error)
	// EdgesTo userIDをフォローしているユーザー
	EdgesTo(ctx context.Context, userID uint) ([]models.User, error)
	FolloweeIDs(ctx context.Context, userID uint) ([]uint, error)
	CountFrom(ctx context.Context, userID uint) (int64, error)
	CountTo(ctx context.Context, userID uint) (int64, error)
}

// followRepository FollowRepositoryの実装
type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository FollowRepositoryを作成
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Create フォローを作成（既に存在する場合は何もしない）
func (r *followRepository) Create(ctx context.Context, followerID, followeeID uint) error {
	follow := &models.Follow{FollowerID: followerID, FolloweeID: followeeID}
	return translateError(r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(follow).Error)
}

// Delete フォローを解除
func (r *followRepository) Delete(ctx context.Context, followerID, followeeID uint) error {
	return translateError(r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.Follow{}).Error)
}

// Exists フォロー関係が存在するか確認
func (r *followRepository) Exists(ctx context.Context, followerID, followeeID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error; err != nil {
		return false, translateError(err)
	}
	return count > 0, nil
}

// EdgesFrom フォロー中のユーザーをフォローした順に取得
func (r *followRepository) EdgesFrom(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Joins("JOIN follows ON follows.followee_id = users.id").
		Where("follows.follower_id = ?", userID).
		Order("follows.created_at ASC").
		Order("users.id ASC").
		Find(&users).Error; err != nil {
		return nil, translateError(err)
	}
	return users, nil
}

// EdgesTo フォロワーをフォローされた順に取得
func (r *followRepository) EdgesTo(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.followee_id = ?", userID).
		Order("follows.created_at ASC").
		Order("users.id ASC").
		Find(&users).Error; err != nil {
		return nil, translateError(err)
	}
	return users, nil
}

// FolloweeIDs フォロー中のユーザーIDを取得
func (r *followRepository) FolloweeIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Pluck("followee_id", &ids).Error; err != nil {
		return nil, translateError(err)
	}
	return ids, nil
}

// CountFrom フォロー数を取得
func (r *followRepository) CountFrom(ctx context.Context, userID uint) (int64, error) {
	return r.count(ctx, "follower_id = ?", userID)
}

// CountTo フォロワー数を取得
func (r *followRepository) CountTo(ctx context.Context, userID uint) (int64, error) {
	return r.count(ctx, "followee_id = ?", userID)
}

func (r *followRepository) count(ctx context.Context, cond string, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where(cond, userID).
		Count(&count).Error; err != nil {
		return 0, translateError(err)
	}
	return count, nil
}
