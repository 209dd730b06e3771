package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so several routers can coexist in tests.
// All methods are safe on a nil receiver.
type Metrics struct {
	reg      *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	lookups  *prometheus.CounterVec
	cache    *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Metrics{
		reg: reg,
		requests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		duration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.3, 0.6, 1, 3},
		}, []string{"method", "route"}),
		lookups: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "event_lookups_total",
			Help: "Event lookups by kind (gallery, summary) and result.",
		}, []string{"kind", "result"}),
		cache: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "event_cache_requests_total",
			Help: "Event cache hits and misses.",
		}, []string{"result"}),
	}
}

// Handler exposes the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) Lookup(kind, result string) {
	if m == nil {
		return
	}
	m.lookups.WithLabelValues(kind, result).Inc()
}

func (m *Metrics) CacheResult(result string) {
	if m == nil {
		return
	}
	m.cache.WithLabelValues(result).Inc()
}

// Registry is exposed for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.reg
}
