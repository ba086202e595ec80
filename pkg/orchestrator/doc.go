// Package orchestrator fans seed batches out to text-generation providers.
//
// A run splits the seed entries into fixed-size batches, assigns each batch
// a provider in round-robin order, and dispatches every batch concurrently.
// Each batch produces exactly one Outcome. Lines from a successful call are
// appended to the sink as one group; a failed batch never reaches the sink
// and never stops its siblings.
//
// Example usage:
//
//	orch := orchestrator.New(providers, out, orchestrator.Config{
//		BatchSize:      100,
//		Template:       orchestrator.SubdomainTemplate,
//		MaxConcurrency: 10,
//	}, logger)
//	report, err := orch.Run(ctx, entries)
//	if err != nil {
//		// *ConfigError: nothing was dispatched
//	}
//	for _, o := range report.Failed() {
//		log.Warn().Int("batch", o.BatchIndex).Err(o.Err).Msg("Batch failed")
//	}
//
// Run fails fast with a *ConfigError for a non-positive batch size, an
// empty provider set, a missing sink, or a negative concurrency limit.
// Provider and sink failures are reported per batch in the Report.
package orchestrator
