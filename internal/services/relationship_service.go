package services

import (
	"context"

	"github.com/SketchShifter/warbler_backend/internal/models"
	"github.com/SketchShifter/warbler_backend/internal/repository"
)

// RelationshipService フォローといいねに関するサービスインターフェース
type RelationshipService interface {
	Follow(ctx context.Context, followerID, followeeID uint) error
	Unfollow(ctx context.Context, followerID, followeeID uint) error
	Following(ctx context.Context, userID uint) ([]models.User, error)
	Followers(ctx context.Context, userID uint) ([]models.User, error)
	IsFollowing(ctx context.Context, userID, otherID uint) (bool, error)
	IsFollowedBy(ctx context.Context, userID, otherID uint) (bool, error)

	Like(ctx context.Context, userID, messageID uint) error
	Unlike(ctx context.Context, userID, messageID uint) error
	ToggleLike(ctx context.Context, userID, messageID uint) (bool, error)
	Likes(ctx context.Context, userID uint) ([]models.Message, error)
	LikedMessageIDs(ctx context.Context, userID uint) ([]uint, error)
}

// relationshipService RelationshipServiceの実装
type relationshipService struct {
	followRepo  repository.FollowRepository
	likeRepo    repository.LikeRepository
	messageRepo repository.MessageRepository
}

// NewRelationshipService RelationshipServiceを作成
func NewRelationshipService(
	followRepo repository.FollowRepository,
	likeRepo repository.LikeRepository,
	messageRepo repository.MessageRepository,
) RelationshipService {
	return &relationshipService{
		followRepo:  followRepo,
		likeRepo:    likeRepo,
		messageRepo: messageRepo,
	}
}

// Follow followerIDがfolloweeIDをフォローする（重複は無視）
func (s *relationshipService) Follow(ctx context.Context, followerID, followeeID uint) error {
	if followerID == followeeID {
		return invalidInput("自分自身はフォローできません")
	}
	return s.followRepo.Create(ctx, followerID, followeeID)
}

// Unfollow フォローを解除
func (s *relationshipService) Unfollow(ctx context.Context, followerID, followeeID uint) error {
	return s.followRepo.Delete(ctx, followerID, followeeID)
}

// Following userIDがフォローしているユーザー一覧
func (s *relationshipService) Following(ctx context.Context, userID uint) ([]models.User, error) {
	return s.followRepo.EdgesFrom(ctx, userID)
}

// Followers userIDをフォローしているユーザー一覧
func (s *relationshipService) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	return s.followRepo.EdgesTo(ctx, userID)
}

// IsFollowing userIDがotherIDをフォローしているか
func (s *relationshipService) IsFollowing(ctx context.Context, userID, otherID uint) (bool, error) {
	return s.followRepo.Exists(ctx, userID, otherID)
}

// IsFollowedBy userIDがotherIDにフォローされているか
func (s *relationshipService) IsFollowedBy(ctx context.Context, userID, otherID uint) (bool, error) {
	return s.followRepo.Exists(ctx, otherID, userID)
}

// Like メッセージにいいねする（重複は無視、自分のメッセージは不可）
func (s *relationshipService) Like(ctx context.Context, userID, messageID uint) error {
	message, err := s.messageRepo.FindByID(ctx, messageID)
	if err != nil {
		return err
	}
	if message.UserID == userID {
		return invalidInput("自分のメッセージにはいいねできません")
	}
	return s.likeRepo.Create(ctx, userID, messageID)
}

// Unlike いいねを取り消す
func (s *relationshipService) Unlike(ctx context.Context, userID, messageID uint) error {
	return s.likeRepo.Delete(ctx, userID, messageID)
}

// ToggleLike いいね済みなら取り消し、未いいねならいいねする
// 戻り値は操作後にいいねしているかどうか
func (s *relationshipService) ToggleLike(ctx context.Context, userID, messageID uint) (bool, error) {
	liked, err := s.likeRepo.Exists(ctx, userID, messageID)
	if err != nil {
		return false, err
	}

	if liked {
		if err := s.Unlike(ctx, userID, messageID); err != nil {
			return true, err
		}
		return false, nil
	}

	if err := s.Like(ctx, userID, messageID); err != nil {
		return false, err
	}
	return true, nil
}

// Likes ユーザーがいいねしたメッセージ一覧
func (s *relationshipService) Likes(ctx context.Context, userID uint) ([]models.Message, error) {
	return s.likeRepo.ListMessagesByUser(ctx, userID)
}

// LikedMessageIDs ユーザーがいいねしたメッセージIDの一覧
func (s *relationshipService) LikedMessageIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.likeRepo.LikedMessageIDs(ctx, userID)
}
