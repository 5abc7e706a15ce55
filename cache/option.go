package cache

import (
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
)

const (
	// DefaultCapacity is the default maximum number of entries.
	DefaultCapacity = 1000

	// DefaultTTL is the default time-to-live applied by Set.
	DefaultTTL = 5 * time.Minute

	// DefaultSweepInterval is how often the background sweep scans for
	// expired entries.
	DefaultSweepInterval = time.Minute

	// entryOverhead is the fixed per-entry bookkeeping charge used by the
	// memory estimate.
	entryOverhead = 96

	// defaultValueSize is charged per value when no sizer is configured.
	defaultValueSize = 64
)

type config[V any] struct {
	capacity      int
	ttl           time.Duration
	sweepInterval time.Duration
	metrics       bool
	clock         clock.Clock
	logger        *zap.Logger
	onEvict       func(string, V)
	sizer         func(V) int
}

func defaultConfig[V any]() config[V] {
	return config[V]{
		capacity:      DefaultCapacity,
		ttl:           DefaultTTL,
		sweepInterval: DefaultSweepInterval,
		metrics:       true,
		clock:         clock.New(),
		logger:        zap.NewNop(),
	}
}

// Option configures a Cache.
type Option[V any] func(*config[V])

// WithCapacity sets the maximum number of entries in the cache.
func WithCapacity[V any](n int) Option[V] {
	return func(c *config[V]) {
		c.capacity = n
	}
}

// WithTTL sets the default time-to-live applied by Set.
func WithTTL[V any](d time.Duration) Option[V] {
	return func(c *config[V]) {
		c.ttl = d
	}
}

// WithSweepInterval sets how often the background sweep runs.
func WithSweepInterval[V any](d time.Duration) Option[V] {
	return func(c *config[V]) {
		c.sweepInterval = d
	}
}

// WithMetrics enables or disables hit/miss accounting. Enabled by default.
func WithMetrics[V any](enabled bool) Option[V] {
	return func(c *config[V]) {
		c.metrics = enabled
	}
}

// WithClock sets a custom clock for time operations and the sweep ticker.
// Useful for testing TTL behavior.
func WithClock[V any](clk clock.Clock) Option[V] {
	return func(c *config[V]) {
		c.clock = clk
	}
}

// WithLogger sets the logger used by the background sweep. Defaults to a nop
// logger.
func WithLogger[V any](l *zap.Logger) Option[V] {
	return func(c *config[V]) {
		c.logger = l
	}
}

// OnEvict sets a callback invoked when an entry is evicted for capacity.
// It is called outside the cache lock.
func OnEvict[V any](fn func(key string, value V)) Option[V] {
	return func(c *config[V]) {
		c.onEvict = fn
	}
}

// WithSizer sets a function used to estimate the in-memory size of a value.
// Without one, every value is charged a fixed amount. The estimate feeds
// Metrics only; it never influences eviction.
func WithSizer[V any](fn func(V) int) Option[V] {
	return func(c *config[V]) {
		c.sizer = fn
	}
}
