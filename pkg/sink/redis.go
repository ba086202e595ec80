package sink

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Redis appends lines to a Redis list. One RPUSH per batch keeps a
// batch's lines contiguous in the list.
type Redis struct {
	rdb    *redis.Client
	key    string
	logger zerolog.Logger
}

// NewRedis creates a sink pushing onto list key.
func NewRedis(rdb *redis.Client, key string, logger zerolog.Logger) *Redis {
	return &Redis{
		rdb:    rdb,
		key:    key,
		logger: logger.With().Str("sink", "redis").Str("key", key).Logger(),
	}
}

func (s *Redis) Append(ctx context.Context, origin Origin, lines []string) error {
	if len(lines) == 0 {
		return nil
	}

	values := make([]any, len(lines))
	for i, l := range lines {
		values[i] = l
	}

	if err := s.rdb.RPush(ctx, s.key, values...).Err(); err != nil {
		appendErrors.WithLabelValues("redis").Inc()
		return fmt.Errorf("redis rpush %s: %w", s.key, err)
	}

	linesWritten.WithLabelValues("redis").Add(float64(len(lines)))
	s.logger.Debug().
		Int("batch", origin.Batch).
		Str("provider", origin.Provider).
		Int("lines", len(lines)).
		Msg("Lines pushed")

	return nil
}

// Close is a no-op; the Redis client is owned by the caller.
func (s *Redis) Close() error { return nil }
