// Package cache provides a generic, bounded in-memory cache with per-entry TTL.
//
// # Overview
//
// The cache is a type-safe map from string keys to values of a single payload
// type. Every entry carries its own time-to-live; an entry older than its TTL
// is treated as absent even if it has not been physically removed yet. Expiry
// is enforced both lazily (Get and Has re-check liveness and purge what they
// find dead) and eagerly (a background sweep runs on a fixed interval). The
// sweep is housekeeping only — correctness never depends on it.
//
// When the cache is full and a new key arrives, the entry with the oldest
// last-access time is evicted to make room. Overwriting an existing key never
// triggers eviction.
//
// # Basic Usage
//
//	c, err := cache.New[Profile](
//		cache.WithCapacity[Profile](5000),
//		cache.WithTTL[Profile](10*time.Minute),
//	)
//	if err != nil {
//		return err
//	}
//	defer c.Close()
//
//	c.Set("profile:42", p)
//
//	if p, ok := c.Get("profile:42"); ok {
//		render(p)
//	}
//
// # Read-Through Loading
//
// GetOrLoad falls back to a loader on miss and stores the result. Concurrent
// loads for the same key are deduplicated with singleflight, so a stampede of
// handlers asking for the same cold key results in one backend call:
//
//	p, err := c.GetOrLoad(ctx, "profile:42", func(ctx context.Context) (Profile, error) {
//		return backend.FetchProfile(ctx, "42")
//	})
//
// # Invalidation
//
// Delete removes a single key. InvalidatePattern removes every key matching a
// shell-style glob, which is how dependent caches cascade: invalidating a
// profile also clears the search results that may reference it.
//
//	n := c.InvalidatePattern("search:*")
//
// # Metrics
//
// Metrics returns a point-in-time snapshot of entry count, hit/miss counters,
// hit rate, a rough memory estimate, and the ages of the oldest and newest
// entries. The memory estimate is a heuristic for dashboards, never an input
// to eviction.
//
// # Testing
//
// Inject a mock clock to control time:
//
//	clk := clock.NewMock()
//	c, _ := cache.New[int](cache.WithClock[int](clk))
//	c.Set("k", 1)
//	clk.Add(time.Hour)      // TTL expired
//	_, ok := c.Get("k")     // ok == false
//
// # Thread Safety
//
// All methods are safe for concurrent use. A single mutex guards the entry map
// and the recency index; hit/miss counters are atomic.
package cache
