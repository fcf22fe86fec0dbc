package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedAccessKey = "revoked_access:%s"

// TokenBlocklist 记录已注销的 access token（按 jti），过期时间与令牌剩余有效期一致
type TokenBlocklist struct {
	client *redis.Client
}

func NewTokenBlocklist(client *redis.Client) *TokenBlocklist {
	return &TokenBlocklist{client: client}
}

// Revoke 注销令牌；ttl 不大于 0 时令牌已自然过期，无需记录
func (b *TokenBlocklist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if jti == "" || ttl <= 0 {
		return nil
	}
	if err := b.client.Set(ctx, fmt.Sprintf(revokedAccessKey, jti), 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (b *TokenBlocklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	err := b.client.Get(ctx, fmt.Sprintf(revokedAccessKey, jti)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check revoked token: %w", err)
	}
	return true, nil
}
