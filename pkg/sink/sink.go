// Package sink persists and surfaces generated lines.
//
// Every sink writes one batch's lines as a single group: lines from
// concurrent appends are never interleaved. Sinks only append; prior
// content is never rewritten.
package sink

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RedisPrefix marks a destination that is a Redis list key.
const RedisPrefix = "redis:"

var (
	// ErrClosed is returned by Append after Close.
	ErrClosed = errors.New("sink closed")

	linesWritten = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wordlister_sink_lines_total",
		Help: "Total generated lines appended by sink type",
	}, []string{"sink"})

	appendErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wordlister_sink_errors_total",
		Help: "Total failed sink appends by sink type",
	}, []string{"sink"})
)

// Origin identifies the batch a group of lines came from.
// Sinks use it for diagnostics only.
type Origin struct {
	Batch    int
	Provider string
}

// Sink receives the lines of each successful batch.
type Sink interface {
	Append(ctx context.Context, origin Origin, lines []string) error
	Close() error
}

// Open resolves a destination string.
//
//	""             no persistence (Discard)
//	"redis:<key>"  RPUSH onto list <key>; needs rdb
//	anything else  file path opened for append
func Open(dest string, rdb *redis.Client, logger zerolog.Logger) (Sink, error) {
	switch {
	case dest == "":
		return Discard{}, nil
	case strings.HasPrefix(dest, RedisPrefix):
		key := strings.TrimPrefix(dest, RedisPrefix)
		if key == "" {
			return nil, fmt.Errorf("redis destination needs a list key")
		}
		if rdb == nil {
			return nil, fmt.Errorf("redis destination %q needs a redis address", dest)
		}
		return NewRedis(rdb, key, logger), nil
	default:
		return OpenFile(dest, logger)
	}
}

// Discard drops every line.
type Discard struct{}

func (Discard) Append(context.Context, Origin, []string) error { return nil }

func (Discard) Close() error { return nil }

// Console writes each line to an io.Writer, one line per record.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsole creates a console sink writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Append(_ context.Context, _ Origin, lines []string) error {
	if len(lines) == 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := io.WriteString(c.w, joinLines(lines)); err != nil {
		appendErrors.WithLabelValues("console").Inc()
		return fmt.Errorf("write console: %w", err)
	}
	linesWritten.WithLabelValues("console").Add(float64(len(lines)))
	return nil
}

func (c *Console) Close() error { return nil }

// Tee forwards each append to all sinks in order and stops at the first error.
type Tee []Sink

func (t Tee) Append(ctx context.Context, origin Origin, lines []string) error {
	for _, s := range t {
		if err := s.Append(ctx, origin, lines); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every sink and joins their errors.
func (t Tee) Close() error {
	var errs []error
	for _, s := range t {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// joinLines renders lines as newline-terminated records.
func joinLines(lines []string) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return b.String()
}
