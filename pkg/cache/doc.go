// Package cache stores provider responses in Redis so repeated runs over
// the same seeds do not pay for the same generation twice.
//
// Entries are keyed by provider name and a SHA-256 of the full prompt, and
// expire after a configured TTL. Only successful responses are stored.
//
// # Basic Usage
//
//	redisClient := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//	manager := cache.NewManager(redisClient)
//
//	// Wrap any provider; the result is itself a provider.
//	cached := cache.Wrap(gemini, manager, 24*time.Hour, logger)
//	lines, err := cached.Invoke(ctx, prompt)
//
// A cache that cannot be reached never fails a call: the error is logged
// and the wrapped provider is invoked directly.
//
// # Metrics
//
//   - wordlister_cache_hits_total{provider}
//   - wordlister_cache_misses_total{provider}
//   - wordlister_cache_errors_total{operation}
package cache
