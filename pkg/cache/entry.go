package cache

import (
	"time"
)

// Entry is a cached provider response.
type Entry struct {
	// Provider that generated the lines
	Provider string `json:"provider"`

	// Lines are the generated lines in response order
	Lines []string `json:"lines"`

	// CachedAt is when the response was stored
	CachedAt time.Time `json:"cached_at"`

	// Expires is when the entry stops being served
	Expires time.Time `json:"expires"`
}

// NewEntry creates an entry that expires ttl from now.
func NewEntry(provider string, lines []string, ttl time.Duration) *Entry {
	now := time.Now()
	return &Entry{
		Provider: provider,
		Lines:    lines,
		CachedAt: now,
		Expires:  now.Add(ttl),
	}
}

// IsExpired returns true if the cache entry has expired.
func (e *Entry) IsExpired() bool {
	return time.Now().After(e.Expires)
}

// TTL returns the time until expiration.
// Returns 0 if already expired.
func (e *Entry) TTL() time.Duration {
	ttl := time.Until(e.Expires)
	if ttl < 0 {
		return 0
	}
	return ttl
}
