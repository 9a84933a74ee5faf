package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's prometheus collectors.
type Metrics struct {
	requests  *prometheus.CounterVec
	errors    *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	heatmaps  prometheus.Counter
	cacheHits prometheus.Counter
}

// NewMetrics registers collectors on a fresh registry and returns both.
func NewMetrics() (*Metrics, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "staffing_tracker", Name: "http_requests_total",
			Help: "Handled HTTP requests",
		}, []string{"path", "method", "status"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "staffing_tracker", Name: "http_errors_total",
			Help: "Requests that ended in a domain error",
		}, []string{"path", "method", "code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "staffing_tracker", Name: "http_request_seconds",
			Help: "Request latency", Buckets: prometheus.DefBuckets,
		}, []string{"path", "method"}),
		heatmaps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "staffing_tracker", Name: "heatmap_builds_total",
			Help: "Staffing heatmap computations",
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "staffing_tracker", Name: "dashboard_cache_hits_total",
			Help: "Dashboard summary responses served from redis",
		}),
	}
	reg.MustRegister(m.requests, m.errors, m.latency, m.heatmaps, m.cacheHits)
	reg.MustRegister(prometheus.NewGoCollector())
	return m, reg
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(path, method).Observe(duration.Seconds())
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(path, method, code).Inc()
}

// RecordHeatmapBuild counts one heatmap computation.
func (m *Metrics) RecordHeatmapBuild() {
	if m == nil {
		return
	}
	m.heatmaps.Inc()
}

// RecordCacheHit counts one dashboard cache hit.
func (m *Metrics) RecordCacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}

// Handler exposes the registry for the /metrics endpoint.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
