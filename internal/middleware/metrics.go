package middleware

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics holds the request counters and latency histograms exposed at
// the /metrics endpoint.
type HTTPMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewHTTPMetrics creates the HTTP metric collectors and registers them with
// the given registerer.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	m := &HTTPMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests processed.",
		}, []string{"method", "path", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}
	reg.MustRegister(m.requestsTotal, m.requestDuration)
	return m
}

// Instrument records a request count and latency observation per request.
// The raw URL path would blow up label cardinality with UUID segments, so
// requests are labelled with the route pattern passed at registration time.
func (m *HTTPMetrics) Instrument(pattern string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		timer := prometheus.NewTimer(m.requestDuration.WithLabelValues(r.Method, pattern))
		next.ServeHTTP(rw, r)
		timer.ObserveDuration()

		m.requestsTotal.WithLabelValues(r.Method, pattern, strconv.Itoa(rw.statusCode)).Inc()
	})
}
