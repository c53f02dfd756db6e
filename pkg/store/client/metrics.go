package client

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records client round trips. A nil *Metrics is a no-op.
type Metrics struct {
	duration *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "boutique_reports",
		Subsystem: "client",
		Name:      "request_duration_seconds",
		Help:      "Duration of reports backend requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"path", "status"})

	if err := reg.Register(duration); err != nil {
		return nil, fmt.Errorf("failed to register client metrics: %w", err)
	}
	return &Metrics{duration: duration}, nil
}

func (m *Metrics) observe(path string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.duration.WithLabelValues(path, statusClass(status)).Observe(elapsed.Seconds())
}

func statusClass(status int) string {
	if status <= 0 {
		return "error"
	}
	return fmt.Sprintf("%dxx", status/100)
}
