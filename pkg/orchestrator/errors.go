package orchestrator

import (
	"errors"
	"fmt"

	"github.com/Sternrassler/ai-wordlister/pkg/batch"
	"github.com/Sternrassler/ai-wordlister/pkg/provider"
)

var (
	// ErrInvalidBatchSize is wrapped by a *ConfigError for batch sizes <= 0.
	ErrInvalidBatchSize = batch.ErrInvalidSize

	// ErrNoProviders is wrapped by a *ConfigError when no provider is usable.
	ErrNoProviders = provider.ErrNoProviders

	// ErrNoSink is wrapped by a *ConfigError when the sink is nil.
	ErrNoSink = errors.New("no sink configured")

	// ErrInvalidConcurrency is wrapped by a *ConfigError for a negative limit.
	ErrInvalidConcurrency = errors.New("max concurrency must not be negative")

	// ErrSink marks a batch whose provider call succeeded but whose lines
	// could not be appended.
	ErrSink = errors.New("sink append failed")
)

// ConfigError means the run was aborted before any batch was dispatched.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// IsConfigError reports whether err aborted a run before dispatch.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
