package cache

import (
	"fmt"
	"path"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache is a generic, capacity-bounded in-memory cache with per-entry TTL.
type Cache[V any] struct {
	mu      sync.Mutex
	entries map[string]*entry[V]
	recency *recencyIndex
	memSize int
	cfg     config[V]
	stats   stats

	flight    singleflight.Group
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// New creates a Cache with the given options and starts its background sweep.
// It fails on a non-positive capacity, default TTL, or sweep interval rather
// than clamping, since a bad value is a caller bug.
func New[V any](opts ...Option[V]) (*Cache[V], error) {
	cfg := defaultConfig[V]()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.capacity < 1 {
		return nil, fmt.Errorf("cache: capacity must be at least 1, got %d", cfg.capacity)
	}
	if cfg.ttl <= 0 {
		return nil, fmt.Errorf("cache: default TTL must be positive, got %v", cfg.ttl)
	}
	if cfg.sweepInterval <= 0 {
		return nil, fmt.Errorf("cache: sweep interval must be positive, got %v", cfg.sweepInterval)
	}

	c := &Cache[V]{
		entries: make(map[string]*entry[V]),
		recency: newRecencyIndex(),
		cfg:     cfg,
		done:    make(chan struct{}),
	}

	c.wg.Add(1)
	go c.sweepLoop()

	return c, nil
}

// Set adds or overwrites a value using the default TTL.
func (c *Cache[V]) Set(key string, value V) {
	c.SetWithTTL(key, value, c.cfg.ttl)
}

// SetWithTTL adds or overwrites a value with a specific TTL. If the cache is
// full and key is new, the entry with the oldest last-access time is evicted
// first. Overwriting resets the entry's age and hit count. Set never fails.
func (c *Cache[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	now := c.cfg.clock.Now()

	var (
		victimKey string
		victimVal V
		evicted   bool
	)

	c.mu.Lock()
	if _, ok := c.entries[key]; !ok && len(c.entries) >= c.cfg.capacity {
		victimKey, victimVal, evicted = c.evictOldest()
	}
	c.insert(key, value, ttl, now)
	c.mu.Unlock()

	if evicted && c.cfg.onEvict != nil {
		c.cfg.onEvict(victimKey, victimVal)
	}
}

// insert writes an entry and refreshes the recency index. Caller holds the lock.
func (c *Cache[V]) insert(key string, value V, ttl time.Duration, now time.Time) {
	if old, ok := c.entries[key]; ok {
		c.memSize -= old.size
	}

	size := len(key) + entryOverhead
	if c.cfg.sizer != nil {
		size += c.cfg.sizer(value)
	} else {
		size += defaultValueSize
	}

	c.entries[key] = &entry[V]{
		value:          value,
		insertedAt:     now,
		ttl:            ttl,
		lastAccessedAt: now,
		size:           size,
	}
	c.memSize += size
	c.recency.touch(key)
}

// evictOldest removes the least recently accessed entry. Caller holds the lock.
func (c *Cache[V]) evictOldest() (string, V, bool) {
	var zero V

	key, ok := c.recency.oldest()
	if !ok {
		return "", zero, false
	}
	ent, ok := c.entries[key]
	if !ok {
		return "", zero, false
	}

	c.removeEntry(key, ent)
	c.stats.evict()
	return key, ent.value, true
}

// removeEntry drops an entry from the map, index, and memory estimate.
// Caller holds the lock.
func (c *Cache[V]) removeEntry(key string, ent *entry[V]) {
	delete(c.entries, key)
	c.recency.remove(key)
	c.memSize -= ent.size
}

// Get retrieves a value. A key that is missing or past its TTL is a miss; an
// expired entry is purged on the spot. A hit refreshes the entry's access
// metadata.
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V
	now := c.cfg.clock.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	ent, ok := c.entries[key]
	if !ok {
		c.recordMiss()
		return zero, false
	}

	if !ent.live(now) {
		c.removeEntry(key, ent)
		c.stats.expire()
		c.recordMiss()
		return zero, false
	}

	ent.hitCount++
	ent.lastAccessedAt = now
	c.recency.touch(key)
	c.recordHit()
	return ent.value, true
}

// Has reports whether key holds a live entry. Like Get it purges an expired
// entry, but it does not touch access metadata or hit/miss counters.
func (c *Cache[V]) Has(key string) bool {
	now := c.cfg.clock.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	ent, ok := c.entries[key]
	if !ok {
		return false
	}
	if !ent.live(now) {
		c.removeEntry(key, ent)
		c.stats.expire()
		return false
	}
	return true
}

// Delete removes a key and reports whether anything was removed.
func (c *Cache[V]) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	ent, ok := c.entries[key]
	if !ok {
		return false
	}
	c.removeEntry(key, ent)
	return true
}

// Clear removes all entries and resets the cache's counters.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*entry[V])
	c.recency.reset()
	c.memSize = 0
	c.stats.reset()
}

// InvalidatePattern removes every key matching a shell-style glob (path.Match
// syntax) and returns how many entries were removed. A malformed pattern
// matches nothing.
func (c *Cache[V]) InvalidatePattern(pattern string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, ent := range c.entries {
		ok, err := path.Match(pattern, key)
		if err != nil {
			return 0
		}
		if ok {
			c.removeEntry(key, ent)
			removed++
		}
	}
	return removed
}

// Len returns the number of physically present entries, which may include
// expired entries the sweep has not reached yet.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Metrics returns a snapshot of cache counters and entry ages.
func (c *Cache[V]) Metrics() Metrics {
	now := c.cfg.clock.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	m := Metrics{
		EntryCount:     len(c.entries),
		Hits:           c.stats.hits.Load(),
		Misses:         c.stats.misses.Load(),
		Evictions:      c.stats.evictions.Load(),
		Expirations:    c.stats.expirations.Load(),
		MemoryEstimate: c.memSize,
	}
	m.HitRate = hitRate(m.Hits, m.Misses)

	for _, ent := range c.entries {
		age := now.Sub(ent.insertedAt)
		if age > m.OldestEntryAge {
			m.OldestEntryAge = age
		}
		if m.NewestEntryAge == 0 || age < m.NewestEntryAge {
			m.NewestEntryAge = age
		}
	}
	return m
}

// Close stops the background sweep. It is safe to call more than once.
func (c *Cache[V]) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
	c.wg.Wait()
}

func (c *Cache[V]) recordHit() {
	if c.cfg.metrics {
		c.stats.hit()
	}
}

func (c *Cache[V]) recordMiss() {
	if c.cfg.metrics {
		c.stats.miss()
	}
}
