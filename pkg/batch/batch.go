// Package batch partitions an ordered list of seed entries into fixed-size batches.
package batch

import (
	"errors"
	"fmt"
	"iter"
)

// DefaultSize is the batch size used when none is configured.
const DefaultSize = 100

// ErrInvalidSize is returned for a batch size below 1.
var ErrInvalidSize = errors.New("batch size must be positive")

// Batch is one contiguous, non-empty slice of the input.
type Batch struct {
	// Index is the zero-based position of the batch in the run.
	Index int

	// Entries are the seed entries in input order.
	Entries []string
}

// Len returns the number of entries in the batch.
func (b Batch) Len() int {
	return len(b.Entries)
}

// ValidateSize reports whether size can be used to batch input.
func ValidateSize(size int) error {
	if size <= 0 {
		return fmt.Errorf("%w (got %d)", ErrInvalidSize, size)
	}
	return nil
}

// Count returns the number of batches n entries produce at the given size.
func Count(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// All returns a lazy sequence over the batches of entries.
// Every batch holds size entries except possibly the last one.
// The sequence can be ranged over any number of times.
//
// Batches share the backing array of entries; each batch's capacity is
// clipped so appending to it never overwrites the following batch.
func All(entries []string, size int) (iter.Seq[Batch], error) {
	if err := ValidateSize(size); err != nil {
		return nil, err
	}

	return func(yield func(Batch) bool) {
		for i, start := 0, 0; start < len(entries); i, start = i+1, start+size {
			end := min(start+size, len(entries))
			if !yield(Batch{Index: i, Entries: entries[start:end:end]}) {
				return
			}
		}
	}, nil
}

// Split returns every batch of entries at once.
func Split(entries []string, size int) ([]Batch, error) {
	seq, err := All(entries, size)
	if err != nil {
		return nil, err
	}

	batches := make([]Batch, 0, Count(len(entries), size))
	for b := range seq {
		batches = append(batches, b)
	}
	return batches, nil
}
