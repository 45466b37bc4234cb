package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimitRepository keeps fixed-window request counters in Redis so every
// API instance shares the same limit.
type RateLimitRepository struct {
	client *redis.Client
	prefix string
}

// NewRateLimitRepository constructs the limiter store.
func NewRateLimitRepository(client *redis.Client) *RateLimitRepository {
	return &RateLimitRepository{client: client, prefix: "ratelimit:"}
}

// Enabled reports whether a Redis client backs the counters.
func (r *RateLimitRepository) Enabled() bool {
	return r != nil && r.client != nil
}

// Hit increments the counter for key within the current window and returns
// the new count and the time left until the window resets.
func (r *RateLimitRepository) Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	if r == nil || r.client == nil {
		return 0, 0, errors.New("rate limit store not configured")
	}
	fullKey := r.prefix + key
	pipe := r.client.TxPipeline()
	pipe.SetNX(ctx, fullKey, 0, window)
	incr := pipe.Incr(ctx, fullKey)
	ttl := pipe.PTTL(ctx, fullKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, 0, fmt.Errorf("rate limit hit %s: %w", key, err)
	}
	remaining := ttl.Val()
	if remaining < 0 {
		remaining = window
	}
	return incr.Val(), remaining, nil
}
