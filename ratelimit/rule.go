package ratelimit

import (
	"fmt"
	"time"
)

// KeyFunc derives the limiter key for an identifier/action pair.
type KeyFunc func(identifier, action string) string

// DefaultKey is the key scheme used when a rule has no custom KeyFunc.
func DefaultKey(identifier, action string) string {
	return identifier + ":" + action
}

// Rule is an immutable fixed-window policy: how long a window lasts and how
// many requests it admits. Build rules with NewRule; the zero value is not
// usable.
type Rule struct {
	window time.Duration
	max    int
	keyFn  KeyFunc
}

// RuleOption configures a Rule.
type RuleOption func(*Rule)

// WithKeyFunc sets a custom key scheme for the rule.
func WithKeyFunc(fn KeyFunc) RuleOption {
	return func(r *Rule) {
		r.keyFn = fn
	}
}

// NewRule creates a Rule. It fails on a non-positive window or a maximum
// below 1 rather than clamping, since a bad value is a caller bug.
func NewRule(window time.Duration, maxRequests int, opts ...RuleOption) (Rule, error) {
	if window <= 0 {
		return Rule{}, fmt.Errorf("ratelimit: window must be positive, got %v", window)
	}
	if maxRequests < 1 {
		return Rule{}, fmt.Errorf("ratelimit: max requests must be at least 1, got %d", maxRequests)
	}

	r := Rule{
		window: window,
		max:    maxRequests,
		keyFn:  DefaultKey,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r, nil
}

// MustRule is NewRule that panics on error, for rules built from constants.
func MustRule(window time.Duration, maxRequests int, opts ...RuleOption) Rule {
	r, err := NewRule(window, maxRequests, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// Window returns the rule's window duration.
func (r Rule) Window() time.Duration { return r.window }

// MaxRequests returns how many requests one window admits.
func (r Rule) MaxRequests() int { return r.max }

// Key derives the limiter key for an identifier/action pair.
func (r Rule) Key(identifier, action string) string {
	return r.keyFn(identifier, action)
}
