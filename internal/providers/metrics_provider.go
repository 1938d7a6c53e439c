package providers

import (
	"elevate/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObservePersistenceDuration(duration time.Duration)
	IncStoreWrites(key string)
	IncStoreFallbacks(key string)
	IncNotifications(channel string)
	IncInvalidations(query string)
	SetRecordsTotal(key string, count int)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	persistenceDuration prometheus.Histogram
	storeWrites         *prometheus.CounterVec
	storeFallbacks      *prometheus.CounterVec
	notifications       *prometheus.CounterVec
	invalidations       *prometheus.CounterVec
	recordsTotal        *prometheus.GaugeVec
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncStoreWrites(key string) {
	m.storeWrites.WithLabelValues(key).Inc()
}

func (m *MetricsProvider) IncStoreFallbacks(key string) {
	m.storeFallbacks.WithLabelValues(key).Inc()
}

func (m *MetricsProvider) IncNotifications(channel string) {
	m.notifications.WithLabelValues(channel).Inc()
}

func (m *MetricsProvider) IncInvalidations(query string) {
	m.invalidations.WithLabelValues(query).Inc()
}

func (m *MetricsProvider) SetRecordsTotal(key string, count int) {
	m.recordsTotal.WithLabelValues(key).Set(float64(count))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "elevate_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "elevate_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "elevate_query_cache_hits_total",
			Help: "Total number of query cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "elevate_query_cache_misses_total",
			Help: "Total number of query cache misses",
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "elevate_persistence_duration_seconds",
			Help:    "Duration of snapshot flushes in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		storeWrites: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "elevate_store_writes_total",
			Help: "Total number of collection writes per storage key",
		}, []string{"key"}),

		storeFallbacks: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "elevate_store_fallbacks_total",
			Help: "Reads that fell back to the default because of missing or corrupt data",
		}, []string{"key"}),

		notifications: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "elevate_change_notifications_total",
			Help: "Change events delivered per channel",
		}, []string{"channel"}),

		invalidations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "elevate_query_invalidations_total",
			Help: "Named query invalidations",
		}, []string{"query"}),

		recordsTotal: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "elevate_records_total",
			Help: "Records in the last written collection per storage key",
		}, []string{"key"}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) IncStoreWrites(_ string)                          {}
func (n *noopMetrics) IncStoreFallbacks(_ string)                       {}
func (n *noopMetrics) IncNotifications(_ string)                        {}
func (n *noopMetrics) IncInvalidations(_ string)                        {}
func (n *noopMetrics) SetRecordsTotal(_ string, _ int)                  {}
