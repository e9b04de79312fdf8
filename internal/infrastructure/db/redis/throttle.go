package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Throttle is a fixed-window rate limiter backed by Redis. Each (operation,
// subject) pair gets a counter that expires after the window; an attempt is
// allowed while the counter stays at or below the limit.
type Throttle struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

func NewThrottle(client *redis.Client, limit int64, window time.Duration) *Throttle {
	return &Throttle{client: client, limit: limit, window: window}
}

// Allow counts the attempt and reports whether it falls within the window
// limit. Counting before deciding means a rejected attempt still extends the
// caller's standing in the current window.
func (t *Throttle) Allow(ctx context.Context, op, subject string) (bool, error) {
	key := fmt.Sprintf("throttle:%s:%s", op, subject)

	count, err := t.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("throttle incr: %w", err)
	}
	if count == 1 {
		if err := t.client.Expire(ctx, key, t.window).Err(); err != nil {
			return false, fmt.Errorf("throttle expire: %w", err)
		}
	}
	return count <= t.limit, nil
}
