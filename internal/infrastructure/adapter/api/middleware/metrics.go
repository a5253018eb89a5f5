package middleware

import (
	"strconv"

	coreport "github.com/amirhossein-jamali/calendar-duration/internal/domain/port/core"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace prefixes every metric the API exports
const Namespace = "calendar_duration"

// Metrics holds the HTTP instruments
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	InFlight        prometheus.Gauge
}

// NewMetrics registers the HTTP instruments with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		InFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: Namespace,
				Name:      "http_requests_in_flight",
				Help:      "Number of HTTP requests being served",
			},
		),
	}
}

// Middleware records each request under its route template, e.g. /durations/:duration/span
func (m *Metrics) Middleware(timeProvider coreport.TimeProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		m.InFlight.Inc()
		start := timeProvider.Now()

		c.Next()

		m.InFlight.Dec()
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		m.RequestsTotal.WithLabelValues(c.Request.Method, endpoint, status).Inc()
		m.RequestDuration.WithLabelValues(c.Request.Method, endpoint).Observe(timeProvider.Since(start).Seconds())
	}
}
