// Package retry runs an operation with bounded exponential backoff.
//
// Do retries a failing operation up to a maximum attempt count, sleeping
// min(baseDelay * 2^(attempt-1), maxDelay) between attempts. It stops early
// when the error is classified non-retryable or the context is canceled, and
// always surfaces the last error. Total retry time is therefore bounded; Do
// never loops forever.
package retry

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
)

const (
	// DefaultMaxAttempts is the default number of attempts, the first
	// included.
	DefaultMaxAttempts = 3

	// DefaultBaseDelay is the default delay before the first retry.
	DefaultBaseDelay = 100 * time.Millisecond

	// DefaultMaxDelay caps the backoff between attempts.
	DefaultMaxDelay = 5 * time.Second
)

type config struct {
	maxAttempts int
	baseDelay   time.Duration
	maxDelay    time.Duration
	retryable   func(error) bool
	clock       clock.Clock
	logger      *zap.Logger
}

func defaultConfig() config {
	return config{
		maxAttempts: DefaultMaxAttempts,
		baseDelay:   DefaultBaseDelay,
		maxDelay:    DefaultMaxDelay,
		retryable:   func(error) bool { return true },
		clock:       clock.New(),
		logger:      zap.NewNop(),
	}
}

// Option configures Do.
type Option func(*config)

// WithMaxAttempts sets how many times the operation runs at most.
func WithMaxAttempts(n int) Option {
	return func(c *config) {
		c.maxAttempts = n
	}
}

// WithBaseDelay sets the delay before the first retry.
func WithBaseDelay(d time.Duration) Option {
	return func(c *config) {
		c.baseDelay = d
	}
}

// WithMaxDelay caps the backoff between attempts.
func WithMaxDelay(d time.Duration) Option {
	return func(c *config) {
		c.maxDelay = d
	}
}

// WithRetryable classifies which errors are worth retrying. Errors it rejects
// are surfaced immediately. By default every error is retryable.
func WithRetryable(fn func(error) bool) Option {
	return func(c *config) {
		c.retryable = fn
	}
}

// WithClock sets a custom clock for the backoff sleeps.
func WithClock(clk clock.Clock) Option {
	return func(c *config) {
		c.clock = clk
	}
}

// WithLogger sets a logger for per-attempt debug output. Defaults to a nop
// logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// Do runs op, retrying with exponential backoff until it succeeds, the error
// is non-retryable, attempts run out, or ctx is canceled during a backoff
// sleep.
func Do(ctx context.Context, op func() error, opts ...Option) error {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.maxAttempts < 1 {
		cfg.maxAttempts = 1
	}

	var err error
	for attempt := 1; attempt <= cfg.maxAttempts; attempt++ {
		if err = op(); err == nil {
			return nil
		}
		if !cfg.retryable(err) {
			return err
		}
		if attempt == cfg.maxAttempts {
			break
		}

		delay := backoffDelay(attempt, cfg.baseDelay, cfg.maxDelay)
		cfg.logger.Debug("retrying after failure",
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err),
		)

		timer := cfg.clock.Timer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return err
}

// backoffDelay returns min(base * 2^(attempt-1), limit), guarding against
// overflow for large attempt counts.
func backoffDelay(attempt int, base, limit time.Duration) time.Duration {
	d := base
	for i := 1; i < attempt; i++ {
		d *= 2
		if d >= limit || d <= 0 {
			return limit
		}
	}
	if d > limit {
		return limit
	}
	return d
}
