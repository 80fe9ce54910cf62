package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SketchShifter/warbler_backend/internal/config"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "warbler:revoked:"

// RevocationList ログアウト済みトークンの一覧
type RevocationList interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// redisRevocationList Redisに失効済みトークンIDを保存する実装
type redisRevocationList struct {
	client *redis.Client
}

// NewRedisRevocationList RevocationListを作成
func NewRedisRevocationList(client *redis.Client) RevocationList {
	return &redisRevocationList{client: client}
}

// Revoke トークンを有効期限まで失効扱いにする
func (r *redisRevocationList) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" || ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, revokedKeyPrefix+tokenID, "1", ttl).Err()
}

// IsRevoked トークンが失効済みか確認
func (r *redisRevocationList) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}
	err := r.client.Get(ctx, revokedKeyPrefix+tokenID).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// NewRedisClient Redisクライアントを作成して疎通を確認（アドレス未設定なら nil）
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("Redisへの接続に失敗しました: %w", err)
	}

	return client, nil
}
