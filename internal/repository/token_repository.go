package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedTokenPrefix = "auth:revoked:"

// TokenRepository 在 Redis 中维护已吊销令牌的 jti，过期时间与令牌剩余有效期一致
type TokenRepository struct {
	RDB *redis.Client
}

func NewTokenRepository(rdb *redis.Client) *TokenRepository {
	return &TokenRepository{RDB: rdb}
}

func (r *TokenRepository) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if jti == "" || ttl <= 0 {
		return nil
	}
	return r.RDB.Set(ctx, revokedTokenPrefix+jti, "1", ttl).Err()
}

func (r *TokenRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	n, err := r.RDB.Exists(ctx, revokedTokenPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// RevokeOnce 仅在 jti 尚未吊销时写入，返回 false 表示令牌已被使用过
func (r *TokenRepository) RevokeOnce(ctx context.Context, jti string, ttl time.Duration) (bool, error) {
	if jti == "" || ttl <= 0 {
		return false, nil
	}
	return r.RDB.SetNX(ctx, revokedTokenPrefix+jti, "1", ttl).Result()
}
