package cache

import (
	"sync/atomic"
	"time"
)

// stats holds cache counters using atomics for lock-free updates.
type stats struct {
	hits        atomic.Int64
	misses      atomic.Int64
	evictions   atomic.Int64
	expirations atomic.Int64
}

func (s *stats) hit()    { s.hits.Add(1) }
func (s *stats) miss()   { s.misses.Add(1) }
func (s *stats) evict()  { s.evictions.Add(1) }
func (s *stats) expire() { s.expirations.Add(1) }

func (s *stats) reset() {
	s.hits.Store(0)
	s.misses.Store(0)
	s.evictions.Store(0)
	s.expirations.Store(0)
}

// Metrics is a point-in-time snapshot of cache state and counters.
type Metrics struct {
	EntryCount     int
	Hits           int64
	Misses         int64
	Evictions      int64
	Expirations    int64
	HitRate        float64
	MemoryEstimate int
	OldestEntryAge time.Duration
	NewestEntryAge time.Duration
}

// hitRate returns hits/(hits+misses), or 0 when there have been no lookups.
func hitRate(hits, misses int64) float64 {
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}
