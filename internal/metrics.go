package internal

import (
	"net/http"
	"time"

	"rfid-inventory-api/internal/reconcile"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics provides Prometheus metrics for HTTP traffic and the tag
// lifecycle.
type Metrics struct {
	reqTotal    *prometheus.CounterVec
	reqLatency  *prometheus.HistogramVec
	corrections *prometheus.CounterVec
	itemsSold   prometheus.Counter
	registry    *prometheus.Registry
}

// NewMetrics creates a Metrics instance with a private Prometheus registry
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	reqTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	reqLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	corrections := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tag_corrections_total",
			Help: "Tag state corrections persisted by the reconciler",
		},
		[]string{"to_status"},
	)

	itemsSold := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "items_sold_total",
			Help: "Resale tags marked sold",
		},
	)

	registry.MustRegister(reqTotal, reqLatency, corrections, itemsSold)

	return &Metrics{
		reqTotal:    reqTotal,
		reqLatency:  reqLatency,
		corrections: corrections,
		itemsSold:   itemsSold,
		registry:    registry,
	}
}

// ObserveCorrections counts persisted reconciliation transitions.
func (m *Metrics) ObserveCorrections(applied []reconcile.Correction) {
	for _, c := range applied {
		m.corrections.WithLabelValues(c.ToStatus).Inc()
	}
}

// ItemSold counts a successful sell mutation.
func (m *Metrics) ItemSold() {
	m.itemsSold.Inc()
}

// Middleware returns a Chi middleware that collects HTTP metrics
func (m *Metrics) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rw := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
			next.ServeHTTP(rw, r)

			// Use Chi's route pattern so tag ids don't explode the labels
			path := r.URL.Path
			if chiCtx := chi.RouteContext(r.Context()); chiCtx != nil && len(chiCtx.RoutePatterns) > 0 {
				path = chiCtx.RoutePatterns[len(chiCtx.RoutePatterns)-1]
			}

			status := http.StatusText(rw.code)
			m.reqTotal.WithLabelValues(r.Method, path, status).Inc()
			m.reqLatency.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
		})
	}
}

// Handler returns an http.Handler that serves Prometheus metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// statusRecorder captures the HTTP status code for metrics
type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.code = code
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	return sr.ResponseWriter.Write(b)
}
