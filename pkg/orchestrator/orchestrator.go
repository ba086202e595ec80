package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Sternrassler/ai-wordlister/pkg/batch"
	"github.com/Sternrassler/ai-wordlister/pkg/provider"
	"github.com/Sternrassler/ai-wordlister/pkg/sink"
)

// Config holds orchestrator settings.
type Config struct {
	// BatchSize is the number of entries per prompt. Must be positive.
	BatchSize int

	// Template is the instruction text preceding each batch.
	// Empty selects SubdomainTemplate.
	Template string

	// MaxConcurrency caps in-flight batches. Zero means every batch is
	// started at once.
	MaxConcurrency int
}

// DefaultConfig returns the settings used by the CLI when nothing is
// configured.
func DefaultConfig() Config {
	return Config{
		BatchSize:      batch.DefaultSize,
		Template:       SubdomainTemplate,
		MaxConcurrency: 10,
	}
}

// Orchestrator runs batches against a fixed provider set.
type Orchestrator struct {
	providers []provider.Provider
	sink      sink.Sink
	config    Config
	logger    zerolog.Logger
}

// New creates an orchestrator. Providers are cycled in the given order.
// Configuration problems are reported by Run, before any dispatch.
func New(providers []provider.Provider, out sink.Sink, config Config, logger zerolog.Logger) *Orchestrator {
	if config.Template == "" {
		config.Template = SubdomainTemplate
	}

	ps := make([]provider.Provider, len(providers))
	copy(ps, providers)

	return &Orchestrator{
		providers: ps,
		sink:      out,
		config:    config,
		logger:    logger,
	}
}

// Run dispatches every batch of entries and waits for all of them.
//
// A non-nil error is always a *ConfigError and means no provider was
// called. Otherwise the Report carries one Outcome per batch; provider
// and sink failures are recorded there and never abort other batches.
func (o *Orchestrator) Run(ctx context.Context, entries []string) (*Report, error) {
	seq, err := batch.All(entries, o.config.BatchSize)
	if err != nil {
		return nil, &ConfigError{Err: err}
	}
	selector, err := provider.NewRoundRobin(o.providers)
	if err != nil {
		return nil, &ConfigError{Err: err}
	}
	if o.sink == nil {
		return nil, &ConfigError{Err: ErrNoSink}
	}
	if o.config.MaxConcurrency < 0 {
		return nil, &ConfigError{Err: fmt.Errorf("%w (got %d)", ErrInvalidConcurrency, o.config.MaxConcurrency)}
	}

	report := &Report{
		RunID:    uuid.NewString(),
		Started:  time.Now(),
		Outcomes: make([]Outcome, batch.Count(len(entries), o.config.BatchSize)),
	}

	logger := o.logger.With().Str("run_id", report.RunID).Logger()
	logger.Info().
		Int("entries", len(entries)).
		Int("batches", len(report.Outcomes)).
		Strs("providers", provider.Names(selector.Providers())).
		Int("max_concurrency", o.config.MaxConcurrency).
		Msg("Starting run")

	// Tasks never return an error, so siblings are never cancelled.
	var g errgroup.Group
	if o.config.MaxConcurrency > 0 {
		g.SetLimit(o.config.MaxConcurrency)
	}

	for b := range seq {
		p := selector.Select(b.Index)
		g.Go(func() error {
			report.Outcomes[b.Index] = o.dispatch(ctx, logger, b, p)
			return nil
		})
	}
	_ = g.Wait()

	report.Duration = time.Since(report.Started)
	runDuration.Observe(report.Duration.Seconds())

	logger.Info().
		Str("status", string(report.Status())).
		Int("succeeded", report.Succeeded()).
		Int("failed", len(report.Outcomes)-report.Succeeded()).
		Int("lines", report.Lines()).
		Dur("duration", report.Duration).
		Msg("Run complete")

	return report, nil
}

// dispatch runs one batch: prompt, provider call, sink append.
func (o *Orchestrator) dispatch(ctx context.Context, logger zerolog.Logger, b batch.Batch, p provider.Provider) Outcome {
	batchesInFlight.Inc()
	defer batchesInFlight.Dec()

	start := time.Now()
	out := Outcome{BatchIndex: b.Index, Provider: p.Name(), Entries: b.Len()}

	log := logger.With().
		Int("batch", b.Index).
		Str("provider", out.Provider).
		Int("entries", out.Entries).
		Logger()

	lines, err := p.Invoke(ctx, BuildPrompt(o.config.Template, b.Entries))
	if err != nil {
		out.Err = err
	} else if err := o.sink.Append(ctx, sink.Origin{Batch: b.Index, Provider: out.Provider}, lines); err != nil {
		out.Err = fmt.Errorf("%w: %w", ErrSink, err)
	} else {
		out.Lines = lines
	}

	out.Duration = time.Since(start)
	batchesTotal.WithLabelValues(out.Provider, out.Kind()).Inc()

	if out.Err != nil {
		event := log.Warn()
		if out.Kind() == KindSink {
			event = log.Error()
		}
		event.
			Err(out.Err).
			Str("kind", out.Kind()).
			Dur("duration", out.Duration).
			Msg("Batch failed")
		return out
	}

	log.Info().
		Int("lines", len(out.Lines)).
		Dur("duration", out.Duration).
		Msg("Batch complete")
	return out
}
