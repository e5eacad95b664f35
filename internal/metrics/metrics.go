// Package metrics exposes Prometheus instrumentation for the generation
// pass and the page read path.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service's Prometheus collectors
type Metrics struct {
	PagesGenerated prometheus.Counter
	PagesSkipped   prometheus.Counter
	PagesFailed    prometheus.Counter
	PassDuration   prometheus.Histogram
	CacheHits      prometheus.Counter
	CacheMisses    prometheus.Counter
}

// New registers the collectors on the given registerer and returns them.
// Pass prometheus.DefaultRegisterer in production; tests can use a fresh
// registry to avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		PagesGenerated: factory.NewCounter(prometheus.CounterOpts{
			Name: "pagegen_pages_generated_total",
			Help: "Number of pages created by generation passes",
		}),
		PagesSkipped: factory.NewCounter(prometheus.CounterOpts{
			Name: "pagegen_pages_skipped_total",
			Help: "Number of (service, city) pairs skipped because a page already existed",
		}),
		PagesFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "pagegen_pages_failed_total",
			Help: "Number of (service, city) pairs that failed to persist",
		}),
		PassDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "pagegen_pass_duration_seconds",
			Help:    "Duration of full generation passes",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
		}),
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "pagegen_page_cache_hits_total",
			Help: "Page read-path cache hits",
		}),
		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "pagegen_page_cache_misses_total",
			Help: "Page read-path cache misses",
		}),
	}
}
