// Package stats collects prometheus metrics and serves them together with
// the pprof handlers.
package stats

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "changemonger_api_requests_total",
			Help: "Total number of OSM API requests",
		},
		[]string{"operation", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "changemonger_api_request_duration_seconds",
			Help:    "OSM API request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0},
		},
		[]string{"operation"},
	)

	RateLimitWait = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "changemonger_rate_limit_wait_duration_seconds",
			Help:    "Time spent waiting for the OSM API rate limit",
			Buckets: []float64{0.01, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		},
	)

	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "changemonger_cache_hits_total",
			Help: "Total number of OSM API response cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "changemonger_cache_misses_total",
			Help: "Total number of OSM API response cache misses",
		},
	)

	FetchErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "changemonger_reference_fetch_errors_total",
			Help: "Total number of failed parent reference fetches",
		},
		[]string{"kind"},
	)

	ResolvedElements = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "changemonger_resolved_elements_total",
			Help: "Elements added or removed by the reference resolver",
		},
		[]string{"result"},
	)

	Summaries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "changemonger_summaries_total",
			Help: "Total number of rendered changeset summaries",
		},
		[]string{"status"},
	)

	SummaryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "changemonger_summary_duration_seconds",
			Help:    "Time to resolve, classify and render a changeset",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0, 60.0},
		},
	)
)

func status(success bool) string {
	if success {
		return "success"
	}
	return "error"
}

func RecordAPIRequest(operation string, duration time.Duration, success bool) {
	APIRequests.WithLabelValues(operation, status(success)).Inc()
	APIRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func RecordRateLimitWait(duration time.Duration) {
	RateLimitWait.Observe(duration.Seconds())
}

func RecordCache(hit bool) {
	if hit {
		CacheHits.Inc()
	} else {
		CacheMisses.Inc()
	}
}

// RecordFetchError counts a failed ways or relations lookup.
func RecordFetchError(kind string) {
	FetchErrors.WithLabelValues(kind).Inc()
}

func RecordResolved(fetched, pruned, duplicates int) {
	ResolvedElements.WithLabelValues("fetched").Add(float64(fetched))
	ResolvedElements.WithLabelValues("pruned").Add(float64(pruned))
	ResolvedElements.WithLabelValues("duplicate").Add(float64(duplicates))
}

func RecordSummary(duration time.Duration, success bool) {
	Summaries.WithLabelValues(status(success)).Inc()
	SummaryDuration.Observe(duration.Seconds())
}
