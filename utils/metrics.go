package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "Size of HTTP responses",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	ActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_requests",
			Help: "Current number of active HTTP requests",
		},
	)

	DBOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_operation_duration_seconds",
			Help:    "Duration of database operations",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation", "collection"},
	)

	ActivitiesRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eightify_activities_recorded_total",
			Help: "Activities recorded by stop events",
		},
		[]string{"category", "backend"},
	)

	RecordedSeconds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eightify_recorded_seconds_total",
			Help: "Seconds accumulated by stop events",
		},
		[]string{"category"},
	)

	DiscardedRuns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "eightify_discarded_runs_total",
			Help: "Timer runs discarded for being shorter than one second",
		},
	)

	StorageFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eightify_storage_failures_total",
			Help: "Swallowed storage failures by backend and operation",
		},
		[]string{"backend", "operation"},
	)

	DayRollovers = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "eightify_day_rollovers_total",
			Help: "Trackers reset because the calendar day advanced",
		},
	)

	GuestMigrations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eightify_guest_migrations_total",
			Help: "Guest snapshots handled at sign-in",
		},
		[]string{"result"}, // migrated, stale, corrupt, empty, failed
	)

	LiveTrackers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "eightify_live_trackers",
			Help: "Trackers currently held in memory",
		},
	)

	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "errors_total",
			Help: "Total number of errors by type",
		},
		[]string{"type"},
	)
)

// TrackDBOperation tracks database operation duration
func TrackDBOperation(operation, collection string) *prometheus.Timer {
	return prometheus.NewTimer(DBOperationDuration.WithLabelValues(operation, collection))
}

// TrackStorageFailure counts a failure that was logged and swallowed.
func TrackStorageFailure(backend, operation string) {
	StorageFailures.WithLabelValues(backend, operation).Inc()
}

// TrackError increments the error counter by type
func TrackError(errorType string) {
	ErrorsTotal.WithLabelValues(errorType).Inc()
}
