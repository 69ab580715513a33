package observability

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registerOnce        sync.Once
	apiRequestsTotal    *prometheus.CounterVec
	apiLatencySeconds   *prometheus.HistogramVec
	apiErrorsTotal      *prometheus.CounterVec
	tableCacheTotal     *prometheus.CounterVec
	storeLatencySeconds *prometheus.HistogramVec
	degradedTotal       *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used by the dashboard.
func RegisterMetrics() {
	registerOnce.Do(func() {
		apiRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "court_api_requests_total",
			Help: "Total number of dashboard API requests served.",
		}, []string{"method", "route", "status"})

		apiLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "court_api_latency_seconds",
			Help:    "Latency distribution for dashboard API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		apiErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "court_api_errors_total",
			Help: "Total number of error responses returned by the dashboard API.",
		}, []string{"method", "route", "status"})

		tableCacheTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "court_table_cache_total",
			Help: "Table reads served from the cache (hit) or the store (miss).",
		}, []string{"table", "result"})

		storeLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "court_store_latency_seconds",
			Help:    "Latency of tabular store operations.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
		}, []string{"operation", "table"})

		degradedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "court_api_degraded_responses_total",
			Help: "Responses served from empty stand-in tables because the store was unreachable.",
		}, []string{"route"})

		prometheus.MustRegister(apiRequestsTotal, apiLatencySeconds, apiErrorsTotal, tableCacheTotal, storeLatencySeconds, degradedTotal)
	})
}

// APIRequests exposes the counter for API requests.
func APIRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return apiRequestsTotal
}

// APILatency exposes the latency histogram for API requests.
func APILatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return apiLatencySeconds
}

// APIErrors exposes the counter for API error responses.
func APIErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return apiErrorsTotal
}

// TableCacheResults counts cache hits and misses per table.
func TableCacheResults() *prometheus.CounterVec {
	RegisterMetrics()
	return tableCacheTotal
}

// StoreLatency observes tabular store round trips.
func StoreLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return storeLatencySeconds
}

// DegradedResponses counts responses flagged as degraded.
func DegradedResponses() *prometheus.CounterVec {
	RegisterMetrics()
	return degradedTotal
}

// MetricsHandler serves the Prometheus scrape endpoint through fiber.
func MetricsHandler() fiber.Handler {
	RegisterMetrics()
	return adaptor.HTTPHandler(promhttp.Handler())
}
