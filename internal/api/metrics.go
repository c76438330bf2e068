package api

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the prometheus instruments exposed on /metrics.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates a self-contained metrics set backed by its own
// registry, so handlers in tests never collide on registration.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scoringd_requests_total",
				Help: "Total number of handled requests",
			},
			[]string{"path", "code"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "scoringd_request_duration_seconds",
				Help: "Duration of request handling",
			},
			[]string{"path"},
		),
	}
	m.registry.MustRegister(m.requests, m.duration)
	return m
}

// Observe records one handled request.
func (m *Metrics) Observe(path string, code int, elapsed time.Duration) {
	m.requests.WithLabelValues(path, strconv.Itoa(code)).Inc()
	m.duration.WithLabelValues(path).Observe(elapsed.Seconds())
}
