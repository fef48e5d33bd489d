// Package metrics provides Prometheus instrumentation for the web console:
// the inbound HTTP metrics every service needs, plus counters for the
// outbound calls made against the SmartShop backend.
//
// Wire it once at bootstrap:
//
//	r.Use(metrics.Middleware())
//	r.HandleFunc("/metrics", metrics.Handler())
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestDuration tracks inbound request latency by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "smartshop",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts all inbound HTTP requests.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "smartshop",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	// RequestInFlight tracks requests currently being served.
	RequestInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "smartshop",
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "Number of HTTP requests currently being served.",
	})

	// BackendRequestDuration tracks latency of calls to the SmartShop
	// backend REST API, by resource operation and status code.
	BackendRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "smartshop",
			Subsystem: "backend",
			Name:      "request_duration_seconds",
			Help:      "Duration of outbound backend API calls in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "status"},
	)

	// BackendRequestTotal counts outbound backend API calls.
	BackendRequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "smartshop",
			Subsystem: "backend",
			Name:      "requests_total",
			Help:      "Total outbound backend API calls.",
		},
		[]string{"method", "status"},
	)

	// SessionsActive gauges live browser sessions (best effort; memory
	// driver only).
	SessionsActive = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "smartshop",
		Subsystem: "session",
		Name:      "active",
		Help:      "Approximate number of active browser sessions.",
	})
)

// DefaultRegistry is the Prometheus registry for the console.
var DefaultRegistry = prometheus.NewRegistry()

func init() {
	DefaultRegistry.MustRegister(collectors.NewGoCollector())
	DefaultRegistry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	DefaultRegistry.MustRegister(
		RequestDuration,
		RequestTotal,
		RequestInFlight,
		BackendRequestDuration,
		BackendRequestTotal,
		SessionsActive,
	)
}

// responseRecorder wraps http.ResponseWriter to capture the status code.
type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records duration, total and in-flight metrics per request.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			path := r.URL.Path

			RequestInFlight.Inc()
			defer RequestInFlight.Dec()

			rr := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rr, r)

			status := strconv.Itoa(rr.status)
			RequestDuration.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
			RequestTotal.WithLabelValues(r.Method, path, status).Inc()
		})
	}
}

// Handler exposes the metrics page; mount on /metrics.
func Handler() http.HandlerFunc {
	h := promhttp.HandlerFor(DefaultRegistry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
	return h.ServeHTTP
}

// ObserveBackendCall records one outbound backend API call.
func ObserveBackendCall(method string, statusCode int, start time.Time) {
	status := strconv.Itoa(statusCode)
	BackendRequestDuration.WithLabelValues(method, status).Observe(time.Since(start).Seconds())
	BackendRequestTotal.WithLabelValues(method, status).Inc()
}
