// Package metrics exposes cache and limiter counters to Prometheus.
//
// Reporter is a read-only consumer: every scrape takes fresh snapshots from
// the registered sources and emits them as gauge/counter families labeled by
// source name. Nothing here feeds back into either engine.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iamaanahmad/madhubani-nikah-core/cache"
	"github.com/iamaanahmad/madhubani-nikah-core/ratelimit"
)

// CacheSource is anything that can snapshot cache metrics. Every
// *cache.Cache[V] satisfies it.
type CacheSource interface {
	Metrics() cache.Metrics
}

// LimiterSource is anything that can snapshot limiter stats.
type LimiterSource interface {
	Stats() ratelimit.Stats
}

// Reporter aggregates metrics from caches and limiters for display.
type Reporter struct {
	mu       sync.RWMutex
	caches   map[string]CacheSource
	limiters map[string]LimiterSource
	registry *prometheus.Registry

	cacheEntries   *prometheus.Desc
	cacheHits      *prometheus.Desc
	cacheMisses    *prometheus.Desc
	cacheEvictions *prometheus.Desc
	cacheHitRate   *prometheus.Desc
	cacheMemory    *prometheus.Desc
	limiterEntries *prometheus.Desc
	limiterActive  *prometheus.Desc
	limiterMemory  *prometheus.Desc
}

// NewReporter creates a Reporter whose metric families share the given
// namespace.
func NewReporter(namespace string) *Reporter {
	r := &Reporter{
		caches:   make(map[string]CacheSource),
		limiters: make(map[string]LimiterSource),
		registry: prometheus.NewRegistry(),

		cacheEntries: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cache", "entries"),
			"Number of entries currently held by the cache.",
			[]string{"cache"}, nil,
		),
		cacheHits: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cache", "hits_total"),
			"Total number of cache hits.",
			[]string{"cache"}, nil,
		),
		cacheMisses: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cache", "misses_total"),
			"Total number of cache misses.",
			[]string{"cache"}, nil,
		),
		cacheEvictions: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cache", "evictions_total"),
			"Total number of entries evicted for capacity.",
			[]string{"cache"}, nil,
		),
		cacheHitRate: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cache", "hit_ratio"),
			"Cache hit ratio between 0 and 1.",
			[]string{"cache"}, nil,
		),
		cacheMemory: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cache", "memory_estimate_bytes"),
			"Rough in-memory footprint of the cache.",
			[]string{"cache"}, nil,
		),
		limiterEntries: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "ratelimit", "entries"),
			"Number of windows currently tracked by the limiter.",
			[]string{"limiter"}, nil,
		),
		limiterActive: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "ratelimit", "active_windows"),
			"Number of tracked windows that have not yet ended.",
			[]string{"limiter"}, nil,
		),
		limiterMemory: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "ratelimit", "memory_estimate_bytes"),
			"Rough in-memory footprint of the limiter.",
			[]string{"limiter"}, nil,
		),
	}
	r.registry.MustRegister(r)
	return r
}

// RegisterCache adds a cache under the given label, replacing any previous
// source with the same name.
func (r *Reporter) RegisterCache(name string, src CacheSource) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.caches[name] = src
}

// RegisterLimiter adds a limiter under the given label.
func (r *Reporter) RegisterLimiter(name string, src LimiterSource) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.limiters[name] = src
}

// Handler returns an HTTP handler serving the reporter's metrics in
// Prometheus exposition format.
func (r *Reporter) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Describe implements prometheus.Collector.
func (r *Reporter) Describe(ch chan<- *prometheus.Desc) {
	ch <- r.cacheEntries
	ch <- r.cacheHits
	ch <- r.cacheMisses
	ch <- r.cacheEvictions
	ch <- r.cacheHitRate
	ch <- r.cacheMemory
	ch <- r.limiterEntries
	ch <- r.limiterActive
	ch <- r.limiterMemory
}

// Collect implements prometheus.Collector by snapshotting every registered
// source.
func (r *Reporter) Collect(ch chan<- prometheus.Metric) {
	r.mu.RLock()
	caches := make(map[string]CacheSource, len(r.caches))
	for name, src := range r.caches {
		caches[name] = src
	}
	limiters := make(map[string]LimiterSource, len(r.limiters))
	for name, src := range r.limiters {
		limiters[name] = src
	}
	r.mu.RUnlock()

	for name, src := range caches {
		m := src.Metrics()
		ch <- prometheus.MustNewConstMetric(r.cacheEntries, prometheus.GaugeValue, float64(m.EntryCount), name)
		ch <- prometheus.MustNewConstMetric(r.cacheHits, prometheus.CounterValue, float64(m.Hits), name)
		ch <- prometheus.MustNewConstMetric(r.cacheMisses, prometheus.CounterValue, float64(m.Misses), name)
		ch <- prometheus.MustNewConstMetric(r.cacheEvictions, prometheus.CounterValue, float64(m.Evictions), name)
		ch <- prometheus.MustNewConstMetric(r.cacheHitRate, prometheus.GaugeValue, m.HitRate, name)
		ch <- prometheus.MustNewConstMetric(r.cacheMemory, prometheus.GaugeValue, float64(m.MemoryEstimate), name)
	}

	for name, src := range limiters {
		s := src.Stats()
		ch <- prometheus.MustNewConstMetric(r.limiterEntries, prometheus.GaugeValue, float64(s.TotalEntries), name)
		ch <- prometheus.MustNewConstMetric(r.limiterActive, prometheus.GaugeValue, float64(s.ActiveWindows), name)
		ch <- prometheus.MustNewConstMetric(r.limiterMemory, prometheus.GaugeValue, float64(s.MemoryEstimate), name)
	}
}
