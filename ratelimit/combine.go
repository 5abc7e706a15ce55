package ratelimit

// Combine merges two Check outcomes into the more restrictive one: denied if
// either denies, the smaller remaining quota, the longer retry delay, and the
// later window end. It is pure composition over two decisions and holds no
// state, which is how per-user and per-address rules are enforced together.
func Combine(a, b Decision) Decision {
	d := Decision{
		Allowed:    a.Allowed && b.Allowed,
		Remaining:  a.Remaining,
		ResetAt:    a.ResetAt,
		RetryAfter: a.RetryAfter,
	}
	if b.Remaining < d.Remaining {
		d.Remaining = b.Remaining
	}
	if b.RetryAfter > d.RetryAfter {
		d.RetryAfter = b.RetryAfter
	}
	if b.ResetAt.After(d.ResetAt) {
		d.ResetAt = b.ResetAt
	}
	return d
}
