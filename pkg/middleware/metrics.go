package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTPMetrics conta as requisições e mede a latência por método e status
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewHTTPMetrics registra as métricas HTTP no registry informado. Registry nil não registra.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	factory := promauto.With(reg)

	return &HTTPMetrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "traffic_advisor_http_requests_total",
			Help: "HTTP requests by method and status code.",
		}, []string{"method", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "traffic_advisor_http_request_duration_seconds",
			Help:    "HTTP request latency by method.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
	}
}

// Middleware observa cada requisição
func (m *HTTPMetrics) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lrw := newLoggingResponseWriter(w)
			startTime := time.Now()

			next.ServeHTTP(lrw, r)

			m.requests.WithLabelValues(r.Method, strconv.Itoa(lrw.statusCode)).Inc()
			m.duration.WithLabelValues(r.Method).Observe(time.Since(startTime).Seconds())
		})
	}
}
