package ratelimit

import (
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
)

const (
	// DefaultSweepInterval is how often the background sweep purges elapsed
	// windows.
	DefaultSweepInterval = time.Minute

	// windowOverhead is the fixed per-entry bookkeeping charge used by the
	// memory estimate.
	windowOverhead = 64
)

type config struct {
	sweepInterval time.Duration
	clock         clock.Clock
	logger        *zap.Logger
}

func defaultConfig() config {
	return config{
		sweepInterval: DefaultSweepInterval,
		clock:         clock.New(),
		logger:        zap.NewNop(),
	}
}

// Option configures a Limiter.
type Option func(*config)

// WithSweepInterval sets how often the background sweep runs.
func WithSweepInterval(d time.Duration) Option {
	return func(c *config) {
		c.sweepInterval = d
	}
}

// WithClock sets a custom clock for time operations and the sweep ticker.
// Useful for testing window behavior.
func WithClock(clk clock.Clock) Option {
	return func(c *config) {
		c.clock = clk
	}
}

// WithLogger sets the logger used by the background sweep. Defaults to a nop
// logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}
