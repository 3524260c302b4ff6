package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter provides fixed-window request counters backed by Redis.
// Key format: rl:<name>:<client_ip>
type Limiter struct {
	client *redis.Client
}

// NewLimiter creates a Limiter wrapping the given Redis client.
func NewLimiter(client *redis.Client) *Limiter {
	return &Limiter{client: client}
}

// Incr bumps the counter for key and returns the new value. The window TTL
// is set only when the key is created, so the counter resets once per window.
func (l *Limiter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("rate limit incr: %w", err)
	}
	return incr.Val(), nil
}
