package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Repository fetch latency per resource (projects, tasks, updates, documents).
	RepositoryFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "repository_fetch_duration_seconds",
			Help:    "Project repository fetch duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"resource", "status"},
	)

	// Dashboard assembly latency, end to end.
	DashboardAssembleDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dashboard_assemble_duration_seconds",
			Help:    "Dashboard view assembly duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"status"},
	)

	// HTTP request latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"method", "path", "status"},
	)

	// Dashboard view cache hits and misses.
	DashboardCacheCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_cache_count",
			Help: "Dashboard view cache lookups",
		},
		[]string{"result"}, // result: hit, miss, error
	)

	// Detail fetches that fell back to embedded project data.
	DetailFallbackCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_detail_fallback_count",
			Help: "Detail fetches that fell back to embedded project data",
		},
		[]string{"resource"},
	)
)

// RecordRepositoryFetch records a repository fetch observation.
func RecordRepositoryFetch(resource, status string, duration time.Duration) {
	RepositoryFetchDuration.WithLabelValues(resource, status).Observe(duration.Seconds())
}

// RecordDashboardAssemble records a dashboard assembly observation.
func RecordDashboardAssemble(status string, duration time.Duration) {
	DashboardAssembleDuration.WithLabelValues(status).Observe(duration.Seconds())
}

// RecordHTTPRequest records an HTTP request observation.
func RecordHTTPRequest(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}
