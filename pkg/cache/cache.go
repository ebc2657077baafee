package cache

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache is a key-value store with per-entry expiry.
//
// TTL semantics for Set:
//   - Positive duration: entry expires after this duration
//   - Zero: the store's default TTL applies
//   - Negative: entry never expires
type Cache[V any] interface {
	// Get returns ErrNotFound if the key is absent or expired.
	Get(ctx context.Context, key string) (V, error)
	Set(ctx context.Context, key string, value V, ttl time.Duration) error
	// Clear drops every entry. Used when the data behind the cache changes as a whole.
	Clear(ctx context.Context) error
	Len() int
	Close() error
}

var loads singleflight.Group

type loaded[V any] struct {
	val V
	ttl time.Duration
}

// GetOrSet returns the cached value for key or calls load on a miss.
// Concurrent misses on the same key share one load call.
// Errors from load are returned and nothing is cached.
func GetOrSet[V any](ctx context.Context, c Cache[V], key string, load func(ctx context.Context) (V, time.Duration, error)) (V, error) {
	if v, err := c.Get(ctx, key); err == nil {
		return v, nil
	}

	res, err, _ := loads.Do(key, func() (any, error) {
		val, ttl, err := load(ctx)
		if err != nil {
			return nil, err
		}
		_ = c.Set(ctx, key, val, ttl)
		return loaded[V]{val: val, ttl: ttl}, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}

	return res.(loaded[V]).val, nil
}
