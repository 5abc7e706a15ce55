// Package ratelimit provides a fixed-window, per-key request limiter.
//
// # Overview
//
// Each (identifier, action) pair gets a counter that lives for one window. The
// first request in a window starts it; requests increment the counter until it
// reaches the rule's maximum, after which requests are denied until the window
// ends. Denied requests do not consume quota. Counting restarts from scratch
// the first time a key is seen after its window elapses.
//
// # Basic Usage
//
//	lim, err := ratelimit.New()
//	if err != nil {
//		return err
//	}
//	defer lim.Close()
//
//	rule := ratelimit.MustRule(time.Minute, 30)
//
//	d := lim.Check(userID, "profile_search", rule)
//	if !d.Allowed {
//		return rate_limited(d.RetryAfter)
//	}
//
// A denial is an ordinary return value, not an error; callers branch on
// Decision.Allowed.
//
// # Rules
//
// Rules are immutable configuration built once at startup. A RuleSet maps
// action names to rules with a default fallback, so handlers can keep distinct
// windows for login attempts, searches, and uploads:
//
//	rules := ratelimit.NewRuleSet(ratelimit.MustRule(time.Minute, 60))
//	rules.Set("login", ratelimit.MustRule(15*time.Minute, 5))
//	rules.Set("photo_upload", ratelimit.MustRule(time.Hour, 10))
//
// By default a rule keys entries by identifier + ":" + action. WithKeyFunc
// substitutes a custom scheme, e.g. limiting by network address across all
// actions.
//
// # Combined Limiting
//
// Combine merges two Check outcomes into the more restrictive one, which is
// how per-user and per-address rules are enforced together:
//
//	d := ratelimit.Combine(
//		lim.Check(userID, "message", userRule),
//		lim.Check(remoteAddr, "message", addrRule),
//	)
//
// # Window Boundaries
//
// This is a fixed window, not a sliding one: a caller can spend a full quota
// at the tail of one window and another immediately after it rolls over,
// bursting up to twice the configured maximum in under one window duration.
// That is documented behavior of this limiter, not a defect.
//
// # Thread Safety
//
// All Limiter methods are safe for concurrent use; a single mutex makes each
// Check an atomic read-modify-write, so two racing calls for the last slot in
// a window admit exactly one request.
package ratelimit
