// Package cache provides a small generic in-memory cache with TTL expiry and
// LRU eviction, plus GetOrSet for deduplicated loads.
//
// The i18n catalog keeps decoded catalog files here so every locale file is read
// from disk once per TTL window, no matter how many requests look it up at the same time:
//
//	files := cache.NewMemory[*catalogFile](cache.WithMaxEntries(256))
//	f, err := cache.GetOrSet(ctx, files, key, func(ctx context.Context) (*catalogFile, time.Duration, error) {
//		return readFile(...), 0, nil
//	})
//
// TTL semantics for Set:
//   - Positive duration: entry expires after this duration
//   - Zero: the cache's default TTL (never, unless WithDefaultTTL is used)
//   - Negative: entry never expires
//
// Memory is safe for concurrent use. Close stops the optional background sweep.
package cache
