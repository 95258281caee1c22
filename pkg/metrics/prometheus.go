// Package metrics provides Prometheus metrics for the summit planner.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector exported by the planner.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Engine
	itinerariesGenerated prometheus.Counter
	sessionsScored       prometheus.Counter
	vipSessions          prometheus.Counter
	emptyDays            prometheus.Counter
	itineraryLatency     prometheus.Histogram
	sessionScore         prometheus.Histogram

	// Catalog
	catalogDays     prometheus.Gauge
	catalogSessions prometheus.Gauge

	// Community board
	communityShares     prometheus.Counter
	communityDuplicates prometheus.Counter
	communityEntries    prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorsByComponent *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Gauge
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // avoids default Go collectors

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "summit",
		subsystem:        "planner",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.itinerariesGenerated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "itineraries_generated_total",
		Help:      "Total number of itineraries generated",
	})
	m.sessionsScored = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sessions_scored_total",
		Help:      "Total number of sessions scored against a profile",
	})
	m.vipSessions = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "vip_sessions_total",
		Help:      "Total number of scored sessions flagged VIP",
	})
	m.emptyDays = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "empty_days_total",
		Help:      "Requested days that produced no sessions",
	})
	m.itineraryLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "itinerary_latency_milliseconds",
		Help:      "Time spent generating one itinerary in milliseconds",
		Buckets:   m.histogramBuckets,
	})
	m.sessionScore = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "session_score",
		Help:      "Distribution of relevance scores of sessions kept in itineraries",
		Buckets:   []float64{0, 3, 6, 9, 12, 15, 20, 30, 50},
	})

	m.catalogDays = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "catalog_days",
		Help:      "Number of days in the loaded catalog",
	})
	m.catalogSessions = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "catalog_sessions",
		Help:      "Number of sessions in the loaded catalog",
	})

	m.communityShares = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "community_shares_total",
		Help:      "Total number of itineraries shared to the community board",
	})
	m.communityDuplicates = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "community_duplicates_total",
		Help:      "Share submissions acknowledged as duplicates",
	})
	m.communityEntries = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "community_entries",
		Help:      "Number of itineraries on the community board",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorsByComponent = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_total",
			Help:      "Errors by component and type",
		},
		[]string{"component", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "memory_usage_bytes",
		Help:      "Heap bytes allocated",
	})
	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "goroutines",
		Help:      "Number of goroutines",
	})
	m.systemGCPauseTime = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "gc_pause_milliseconds",
		Help:      "Average GC pause in milliseconds",
	})
}

// RecordItinerary records one generated itinerary and its latency.
func RecordItinerary(latencyMs float64) {
	globalManager.itinerariesGenerated.Inc()
	globalManager.itineraryLatency.Observe(latencyMs)
}

// RecordSessionsScored adds n to the scored sessions counter.
func RecordSessionsScored(n int) {
	globalManager.sessionsScored.Add(float64(n))
}

// RecordVIPSession increments the VIP session counter.
func RecordVIPSession() {
	globalManager.vipSessions.Inc()
}

// RecordEmptyDay increments the empty day counter.
func RecordEmptyDay() {
	globalManager.emptyDays.Inc()
}

// ObserveSessionScore records the score of a session kept in an itinerary.
func ObserveSessionScore(score float64) {
	globalManager.sessionScore.Observe(score)
}

// UpdateCatalogSize publishes catalog dimensions.
func UpdateCatalogSize(days, sessions int) {
	globalManager.catalogDays.Set(float64(days))
	globalManager.catalogSessions.Set(float64(sessions))
}

// RecordCommunityShare increments the shares counter.
func RecordCommunityShare() {
	globalManager.communityShares.Inc()
}

// RecordCommunityDuplicate increments the duplicate share counter.
func RecordCommunityDuplicate() {
	globalManager.communityDuplicates.Inc()
}

// UpdateCommunityEntries sets the community board size.
func UpdateCommunityEntries(count int) {
	globalManager.communityEntries.Set(float64(count))
}

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent increments the error counter for a component.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the allocated heap size.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine count.
func UpdateSystemGoroutineCount(n int) {
	globalManager.systemGoroutineCount.Set(float64(n))
}

// RecordSystemGCPauseTime sets the average GC pause.
func RecordSystemGCPauseTime(ms float64) {
	globalManager.systemGCPauseTime.Set(ms)
}

// GetRegistry returns the registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
