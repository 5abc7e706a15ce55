package cache

import "context"

// Loader fetches a value that was not in the cache.
type Loader[V any] func(ctx context.Context) (V, error)

// GetOrLoad retrieves a value, calling loader on miss and caching the result
// with the default TTL. Concurrent loads for the same key are deduplicated, so
// only one loader runs while the rest wait for its result. A loader error is
// returned as-is and nothing is cached.
func (c *Cache[V]) GetOrLoad(ctx context.Context, key string, loader Loader[V]) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	v, err, _ := c.flight.Do(key, func() (any, error) {
		// Another caller may have loaded the key while we waited our turn.
		if v, ok := c.Get(key); ok {
			return v, nil
		}
		v, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		c.Set(key, v)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return v.(V), nil
}
