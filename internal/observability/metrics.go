// Package observability provides metrics and tracing for the application.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "heartbeat_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "heartbeat_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// LoginFailures counts failed login attempts. The counter deliberately
	// carries no reason label so metrics do not reveal whether the username
	// or the password was wrong.
	LoginFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "heartbeat_login_failures_total",
		Help: "Total number of failed login attempts",
	})

	// FeelingsRecorded counts journal entries created, labeled by stamp name.
	FeelingsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "heartbeat_feelings_recorded_total",
		Help: "Total number of feeling entries recorded by stamp",
	}, []string{"stamp"})

	// RegistrationsTotal counts successfully created accounts.
	RegistrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "heartbeat_registrations_total",
		Help: "Total number of accounts created",
	})
)

// DatabaseMetrics wraps DB access for recording query latency.
type DatabaseMetrics struct {
	db *gorm.DB
}

// NewDatabaseMetrics returns a new DatabaseMetrics instance.
func NewDatabaseMetrics(db *gorm.DB) *DatabaseMetrics {
	return &DatabaseMetrics{db: db}
}

// ObserveQuery records the latency of a database query.
func (m *DatabaseMetrics) ObserveQuery(operation, table string, start time.Time) {
	latency := time.Since(start).Seconds()
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(latency)
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func (m *DatabaseMetrics) TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		m.ObserveQuery(operation, table, start)
	}
}
