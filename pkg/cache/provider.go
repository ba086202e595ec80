package cache

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// Invoker is the provider capability the cache decorates.
type Invoker interface {
	Name() string
	Invoke(ctx context.Context, prompt string) ([]string, error)
}

// CachedProvider serves repeated prompts from Redis and forwards misses
// to the wrapped provider. It satisfies provider.Provider.
type CachedProvider struct {
	next    Invoker
	manager *Manager
	ttl     time.Duration
	logger  zerolog.Logger
}

// Wrap decorates next with the cache.
func Wrap(next Invoker, manager *Manager, ttl time.Duration, logger zerolog.Logger) *CachedProvider {
	return &CachedProvider{
		next:    next,
		manager: manager,
		ttl:     ttl,
		logger:  logger.With().Str("provider", next.Name()).Logger(),
	}
}

func (c *CachedProvider) Name() string { return c.next.Name() }

// Invoke returns cached lines when present. Failures are never cached and
// cache errors fall through to the wrapped provider.
func (c *CachedProvider) Invoke(ctx context.Context, prompt string) ([]string, error) {
	key := Key{Provider: c.next.Name(), Prompt: prompt}

	entry, err := c.manager.Get(ctx, key)
	switch {
	case err == nil:
		CacheHits.WithLabelValues(key.Provider).Inc()
		c.logger.Debug().Int("lines", len(entry.Lines)).Msg("Cache hit")
		lines := make([]string, len(entry.Lines))
		copy(lines, entry.Lines)
		return lines, nil
	case errors.Is(err, ErrCacheMiss):
		CacheMisses.WithLabelValues(key.Provider).Inc()
	default:
		CacheMisses.WithLabelValues(key.Provider).Inc()
		c.logger.Warn().Err(err).Msg("Cache get error")
	}

	lines, err := c.next.Invoke(ctx, prompt)
	if err != nil {
		return nil, err
	}

	if err := c.manager.Set(ctx, key, NewEntry(key.Provider, lines, c.ttl)); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to cache response")
	}

	return lines, nil
}
