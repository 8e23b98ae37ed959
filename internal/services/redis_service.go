package services

import (
	"context"
	"log/slog"
	"time"

	"chat-workspace-service/internal/database"
)

// RedisService wraps the shared redis client for transport-level concerns:
// the per-user request limiter and startup health checks.
type RedisService struct {
	client *database.RedisClient
}

func NewRedisService(client *database.RedisClient) *RedisService {
	return &RedisService{client: client}
}

// CheckRateLimit counts requests per key in a rolling window via INCR with
// an EXPIRE set on the first hit.
func (r *RedisService) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	rdb := r.client.GetClient()

	count, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}

	if count == 1 {
		if err := rdb.Expire(ctx, key, window).Err(); err != nil {
			slog.Error("failed to set rate limit expiry", "key", key, "error", err)
		}
	}

	return count <= int64(limit), nil
}

// Ping verifies connectivity at startup.
func (r *RedisService) Ping(ctx context.Context) error {
	return r.client.GetClient().Ping(ctx).Err()
}
