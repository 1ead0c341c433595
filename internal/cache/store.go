package cache

import (
	"context"
	"time"
)

// Store is the shared counter interface behind the rate limiter. Counters
// reset when their window elapses.
type Store interface {
	IncrementWithTTL(ctx context.Context, key string, window time.Duration) (count int64, ttl time.Duration, err error)
}
