package ratelimiter

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ratelimit:"

// RedisRateLimiter is a fixed-window limiter shared by every instance through Redis.
type RedisRateLimiter struct {
	client   *redis.Client
	limit    int
	interval time.Duration
}

var _ Limiter = (*RedisRateLimiter)(nil)

// NewRedisRateLimiter creates a RedisRateLimiter.
func NewRedisRateLimiter(client *redis.Client, limit int, interval time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{client: client, limit: limit, interval: interval}
}

// Allow increments the counter for key. INCR and EXPIRE NX run in one
// MULTI/EXEC so a key never outlives its window, even when an earlier call
// failed before setting the expiry.
func (rl *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := keyPrefix + key

	var incr *redis.IntCmd
	_, err := rl.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		pipe.ExpireNX(ctx, redisKey, rl.interval)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("rate limit: %w", err)
	}
	return incr.Val() <= int64(rl.limit), nil
}
