package cache

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const tokenBlacklistKey = "token:blacklist:"

// TokenBlacklist 登出后的 token 在过期前一直留在黑名单中
type TokenBlacklist struct {
	client *redis.Client
}

func NewTokenBlacklist(client *redis.Client) *TokenBlacklist {
	return &TokenBlacklist{client: client}
}

// Add ttl 取 token 剩余有效期，已过期的 token 不需要记录
func (b *TokenBlacklist) Add(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := b.client.Set(ctx, tokenBlacklistKey+token, 1, ttl).Err(); err != nil {
		return errors.Wrap(err, "blacklist token failed")
	}
	return nil
}

func (b *TokenBlacklist) Contains(ctx context.Context, token string) (bool, error) {
	n, err := b.client.Exists(ctx, tokenBlacklistKey+token).Result()
	if err != nil {
		return false, errors.Wrap(err, "check token blacklist failed")
	}
	return n > 0, nil
}
