package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	dispositionsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dispositions_recorded_total",
			Help: "Total number of call dispositions recorded",
		},
		[]string{"stage", "disposition"},
	)

	callsAutoClosed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "calls_auto_closed_total",
			Help: "Total number of calls closed by the repetition limit",
		},
	)

	callsConverted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "calls_converted_total",
			Help: "Total number of calls converted",
		},
	)

	callsAssigned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "calls_assigned_total",
			Help: "Total number of calls assigned to executives",
		},
	)

	integrationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "integration_errors_total",
			Help: "Total number of integration errors",
		},
		[]string{"service"},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	})
}

func RecordDisposition(stage, disposition string) {
	dispositionsRecorded.WithLabelValues(stage, disposition).Inc()
}

func RecordAutoClose() {
	callsAutoClosed.Inc()
}

func RecordConversion() {
	callsConverted.Inc()
}

func RecordAssignments(n int) {
	callsAssigned.Add(float64(n))
}

func RecordIntegrationError(service string) {
	integrationErrors.WithLabelValues(service).Inc()
}
