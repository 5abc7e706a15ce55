package ratelimit

import (
	"fmt"
	"sync"
	"time"
)

// window is one key's counter for the current fixed window.
type window struct {
	count          int
	resetAt        time.Time
	firstRequestAt time.Time
	size           int
}

// Decision is the outcome of a single Check.
type Decision struct {
	// Allowed reports whether the request may proceed.
	Allowed bool
	// Remaining is how many more requests the window admits.
	Remaining int
	// ResetAt is when the current window ends.
	ResetAt time.Time
	// RetryAfter is how long to wait before retrying. Meaningful only when
	// the request was denied.
	RetryAfter time.Duration
}

// Stats is a point-in-time snapshot of limiter state.
type Stats struct {
	// TotalEntries counts all tracked windows, elapsed ones included.
	TotalEntries int
	// ActiveWindows counts windows that have not yet ended.
	ActiveWindows int
	// MemoryEstimate is a rough footprint heuristic for reporting.
	MemoryEstimate int
}

// Limiter tracks fixed-window request counters per key.
type Limiter struct {
	mu      sync.Mutex
	windows map[string]*window
	memSize int
	cfg     config

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// New creates a Limiter and starts its background sweep.
func New(opts ...Option) (*Limiter, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.sweepInterval <= 0 {
		return nil, fmt.Errorf("ratelimit: sweep interval must be positive, got %v", cfg.sweepInterval)
	}

	l := &Limiter{
		windows: make(map[string]*window),
		cfg:     cfg,
		done:    make(chan struct{}),
	}

	l.wg.Add(1)
	go l.sweepLoop()

	return l, nil
}

// Check records a request against the rule's window for the identifier/action
// key and decides whether it may proceed. The check and the counter update are
// one atomic step, so concurrent calls for the last slot in a window admit
// exactly one request. Denied requests do not consume quota.
func (l *Limiter) Check(identifier, action string, rule Rule) Decision {
	key := rule.Key(identifier, action)
	now := l.cfg.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || !now.Before(w.resetAt) {
		// First request for this key, or the previous window has elapsed.
		resetAt := now.Add(rule.Window())
		l.setWindow(key, &window{
			count:          1,
			resetAt:        resetAt,
			firstRequestAt: now,
			size:           len(key) + windowOverhead,
		})
		return Decision{Allowed: true, Remaining: rule.MaxRequests() - 1, ResetAt: resetAt}
	}

	if w.count >= rule.MaxRequests() {
		return Decision{
			Allowed:    false,
			Remaining:  0,
			ResetAt:    w.resetAt,
			RetryAfter: w.resetAt.Sub(now),
		}
	}

	w.count++
	return Decision{Allowed: true, Remaining: rule.MaxRequests() - w.count, ResetAt: w.resetAt}
}

// setWindow installs a window for key, replacing any previous one.
// Caller holds the lock.
func (l *Limiter) setWindow(key string, w *window) {
	if old, ok := l.windows[key]; ok {
		l.memSize -= old.size
	}
	l.windows[key] = w
	l.memSize += w.size
}

// Reset deletes the window for an identifier/action pair resolved through the
// rule's key scheme, so the next Check starts a brand-new window. Used for
// administrative overrides such as unblocking a user.
func (l *Limiter) Reset(identifier, action string, rule Rule) {
	l.ResetKey(rule.Key(identifier, action))
}

// ResetKey deletes the window for an already-composed limiter key.
func (l *Limiter) ResetKey(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.removeWindow(key)
}

// removeWindow drops a window from the map and memory estimate.
// Caller holds the lock.
func (l *Limiter) removeWindow(key string) {
	if w, ok := l.windows[key]; ok {
		delete(l.windows, key)
		l.memSize -= w.size
	}
}

// Stats returns a snapshot of limiter state.
func (l *Limiter) Stats() Stats {
	now := l.cfg.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	s := Stats{
		TotalEntries:   len(l.windows),
		MemoryEstimate: l.memSize,
	}
	for _, w := range l.windows {
		if now.Before(w.resetAt) {
			s.ActiveWindows++
		}
	}
	return s
}

// Close stops the background sweep. It is safe to call more than once.
func (l *Limiter) Close() {
	l.closeOnce.Do(func() {
		close(l.done)
	})
	l.wg.Wait()
}
