package sink

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// File appends lines to a file on disk.
type File struct {
	mu     sync.Mutex
	f      *os.File
	path   string
	closed bool
	logger zerolog.Logger
}

// OpenFile opens path for appending, creating it if needed.
// Existing content is kept.
func OpenFile(path string, logger zerolog.Logger) (*File, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open output %s: %w", path, err)
	}
	return &File{
		f:      f,
		path:   path,
		logger: logger.With().Str("sink", "file").Str("path", path).Logger(),
	}, nil
}

// Append writes all lines of one batch with a single write under the lock.
func (s *File) Append(_ context.Context, origin Origin, lines []string) error {
	if len(lines) == 0 {
		return nil
	}
	data := joinLines(lines)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	if _, err := s.f.WriteString(data); err != nil {
		appendErrors.WithLabelValues("file").Inc()
		return fmt.Errorf("append to %s: %w", s.path, err)
	}

	linesWritten.WithLabelValues("file").Add(float64(len(lines)))
	s.logger.Debug().
		Int("batch", origin.Batch).
		Str("provider", origin.Provider).
		Int("lines", len(lines)).
		Msg("Lines appended")

	return nil
}

// Close syncs and closes the file. Further appends fail with ErrClosed.
func (s *File) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if err := s.f.Sync(); err != nil {
		s.f.Close()
		return fmt.Errorf("sync %s: %w", s.path, err)
	}
	return s.f.Close()
}
