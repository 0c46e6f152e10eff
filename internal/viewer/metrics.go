package viewer

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeLoaded    = "loaded"
	outcomeFailed    = "failed"
	outcomeDiscarded = "discarded"
)

type FetchMetrics struct {
	Fetches  *prometheus.CounterVec
	Duration prometheus.Histogram
}

func NewFetchMetrics(reg prometheus.Registerer) *FetchMetrics {
	m := &FetchMetrics{
		Fetches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_viewer_fetches_total",
				Help: "Catalog fetches by outcome",
			},
			[]string{"outcome"},
		),
		Duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "catalog_viewer_fetch_duration_seconds",
				Help:    "Time from mount to settle",
				Buckets: []float64{.05, .1, .25, .5, .75, 1, 2.5, 5, 10},
			},
		),
	}

	reg.MustRegister(m.Fetches, m.Duration)
	return m
}

func (m *FetchMetrics) observe(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.Fetches.WithLabelValues(outcome).Inc()
	m.Duration.Observe(d.Seconds())
}
