package ports

import (
	"context"
	"time"
)

// CachePort covers the small counter/flag surface the services need from the
// cache backend.
type CachePort interface {
	// Incr increments the key and returns the new value. The TTL is applied
	// when the key is first created.
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}
