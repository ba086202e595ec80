package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrCacheMiss indicates no usable response is stored for the key:
	// it was never set, Redis evicted it, or it outlived Entry.Expires.
	ErrCacheMiss = errors.New("cache miss")

	// ErrInvalidEntry indicates the stored value does not decode as an
	// Entry. Callers treat it like a miss and overwrite the key.
	ErrInvalidEntry = errors.New("invalid cache entry")
)

// Manager stores provider responses in Redis, one JSON-encoded Entry per
// Key. Redis expiry is set from Entry.Expires, so stale entries normally
// disappear on their own; Get still checks Expires in case the key was
// written without a TTL.
//
// Manager is safe for concurrent use by the batches of one run.
type Manager struct {
	redis *redis.Client
}

// NewManager creates a cache manager on top of an existing client. The
// manager does not own the client and never closes it.
func NewManager(redisClient *redis.Client) *Manager {
	if redisClient == nil {
		panic("redis client cannot be nil")
	}
	return &Manager{
		redis: redisClient,
	}
}

// Get retrieves the entry for key.
//
// Returns ErrCacheMiss if the key doesn't exist or the entry is expired,
// ErrInvalidEntry if the stored value is corrupt, and a wrapped Redis
// error otherwise. Expired entries are deleted on read.
func (m *Manager) Get(ctx context.Context, key Key) (*Entry, error) {
	data, err := m.redis.Get(ctx, key.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		CacheErrors.WithLabelValues("get").Inc()
		return nil, fmt.Errorf("redis get: %w", err)
	}

	// Entries are written by Set only; anything else under the prefix is corrupt.
	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		CacheErrors.WithLabelValues("get").Inc()
		return nil, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}

	if entry.IsExpired() {
		_ = m.Delete(ctx, key)
		return nil, ErrCacheMiss
	}

	return &entry, nil
}

// Set stores entry under key with a Redis TTL derived from
// entry.Expires. Entries that are already expired are not stored and
// Set returns nil. A nil entry is an error.
func (m *Manager) Set(ctx context.Context, key Key, entry *Entry) error {
	if entry == nil {
		return fmt.Errorf("cache entry cannot be nil")
	}

	ttl := entry.TTL()
	if ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(entry)
	if err != nil {
		CacheErrors.WithLabelValues("set").Inc()
		return fmt.Errorf("marshal cache entry: %w", err)
	}

	if err := m.redis.Set(ctx, key.String(), data, ttl).Err(); err != nil {
		CacheErrors.WithLabelValues("set").Inc()
		return fmt.Errorf("redis set: %w", err)
	}

	return nil
}

// Delete removes the entry for key. Deleting a missing key is not an
// error.
func (m *Manager) Delete(ctx context.Context, key Key) error {
	if err := m.redis.Del(ctx, key.String()).Err(); err != nil {
		CacheErrors.WithLabelValues("delete").Inc()
		return fmt.Errorf("redis del: %w", err)
	}

	return nil
}
