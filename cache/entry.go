package cache

import "time"

type entry[V any] struct {
	value          V
	insertedAt     time.Time
	ttl            time.Duration
	hitCount       int64
	lastAccessedAt time.Time
	size           int
}

// live reports whether the entry is still within its TTL. An entry that fails
// this check is semantically absent whether or not it has been purged yet.
func (e *entry[V]) live(now time.Time) bool {
	return now.Sub(e.insertedAt) <= e.ttl
}
