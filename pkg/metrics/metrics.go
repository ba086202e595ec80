// Package metrics provides the Prometheus registry reference for the wordlister.
// All metrics are defined in their respective packages (provider, orchestrator,
// sink, cache) to maintain modularity and avoid circular dependencies.
//
// This package documents every metric and exports them for batch runs.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the wordlister.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Gatherer is the source read by WriteTextfile.
var Gatherer prometheus.Gatherer = prometheus.DefaultGatherer

// ErrNoPath is returned by WriteTextfile for an empty path.
var ErrNoPath = errors.New("metrics file path is empty")

// WriteTextfile writes every gathered metric to path in the Prometheus text
// format, for the node-exporter textfile collector. The file is replaced
// atomically.
func WriteTextfile(path string) error {
	if path == "" {
		return ErrNoPath
	}
	return prometheus.WriteToTextfile(path, Gatherer)
}

// Metrics Documentation
//
// Provider Metrics (pkg/provider):
//   - wordlister_provider_requests_total{provider, status} (Counter): Provider calls by HTTP status
//   - wordlister_provider_request_duration_seconds{provider} (Histogram): Provider call duration
//   - wordlister_provider_errors_total{provider, kind} (Counter): Failed calls by kind (missing_credential, transport, parse)
//
// Orchestrator Metrics (pkg/orchestrator):
//   - wordlister_batches_total{provider, outcome} (Counter): Batches by outcome (ok, transport, parse, missing_credential, sink, canceled)
//   - wordlister_batches_in_flight (Gauge): Batches waiting on a provider or sink
//   - wordlister_run_duration_seconds (Histogram): Wall time of a complete run
//
// Sink Metrics (pkg/sink):
//   - wordlister_sink_lines_total{sink} (Counter): Lines appended by sink type
//   - wordlister_sink_errors_total{sink} (Counter): Failed appends by sink type
//
// Cache Metrics (pkg/cache):
//   - wordlister_cache_hits_total{provider} (Counter): Prompts answered from Redis
//   - wordlister_cache_misses_total{provider} (Counter): Prompts forwarded to the provider
//   - wordlister_cache_errors_total{operation} (Counter): Cache operation errors
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(wordlister_cache_hits_total[5m])) /
//   (sum(rate(wordlister_cache_hits_total[5m])) + sum(rate(wordlister_cache_misses_total[5m])))
//
//   # Failed batches per provider
//   sum by (provider) (wordlister_batches_total{outcome!="ok"})
//
//   # P95 Provider Latency
//   histogram_quantile(0.95, rate(wordlister_provider_request_duration_seconds_bucket[5m]))
