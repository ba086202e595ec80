package orchestrator

import (
	"context"
	"errors"
	"time"

	"github.com/Sternrassler/ai-wordlister/pkg/provider"
)

// Status summarizes a completed run.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusPartial   Status = "partial"
	StatusFailed    Status = "failed"
)

// Outcome kinds, used as the metrics outcome label.
const (
	KindOK       = "ok"
	KindSink     = "sink"
	KindCanceled = "canceled"
	KindUnknown  = "unknown"
)

// Outcome is the result of one batch. Exactly one of Lines or Err is
// meaningful: Lines is nil whenever Err is set.
type Outcome struct {
	BatchIndex int
	Provider   string
	Entries    int
	Lines      []string
	Err        error
	Duration   time.Duration
}

// Succeeded reports whether the batch's lines reached the sink.
func (o Outcome) Succeeded() bool {
	return o.Err == nil
}

// Kind classifies the outcome: ok, sink, canceled, or the provider error
// kind (missing_credential, transport, parse).
func (o Outcome) Kind() string {
	if o.Err == nil {
		return KindOK
	}
	if errors.Is(o.Err, ErrSink) {
		return KindSink
	}
	// Adapters wrap a canceled request in a transport ProviderError.
	if errors.Is(o.Err, context.Canceled) {
		return KindCanceled
	}

	var pe *provider.ProviderError
	if errors.As(o.Err, &pe) {
		return string(pe.Kind)
	}
	return KindUnknown
}

// Report holds one Outcome per batch, indexed by batch index.
type Report struct {
	RunID    string
	Started  time.Time
	Duration time.Duration
	Outcomes []Outcome
}

// Status returns succeeded when every batch succeeded (including a run
// with no batches), failed when none did, and partial otherwise.
func (r *Report) Status() Status {
	ok := r.Succeeded()
	switch {
	case ok == len(r.Outcomes):
		return StatusSucceeded
	case ok == 0:
		return StatusFailed
	default:
		return StatusPartial
	}
}

// Succeeded returns the number of successful batches.
func (r *Report) Succeeded() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Succeeded() {
			n++
		}
	}
	return n
}

// Failed returns the failed outcomes in batch order.
func (r *Report) Failed() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if !o.Succeeded() {
			out = append(out, o)
		}
	}
	return out
}

// Lines returns the total number of generated lines.
func (r *Report) Lines() int {
	n := 0
	for _, o := range r.Outcomes {
		n += len(o.Lines)
	}
	return n
}
