package provider

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for provider calls.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wordlister_provider_requests_total",
		Help: "Total provider requests by provider and status",
	}, []string{"provider", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wordlister_provider_request_duration_seconds",
		Help:    "Provider request duration in seconds",
		Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60},
	}, []string{"provider"})

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wordlister_provider_errors_total",
		Help: "Total provider failures by provider and kind",
	}, []string{"provider", "kind"})
)
