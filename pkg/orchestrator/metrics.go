package orchestrator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	batchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordlister_batches_total",
			Help: "Total batches dispatched by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	batchesInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "wordlister_batches_in_flight",
			Help: "Batches currently waiting on a provider or sink",
		},
	)

	runDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wordlister_run_duration_seconds",
			Help:    "Wall time of a complete run",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
		},
	)
)
