// Package cache provides the result cache for solved labelings.
//
// Solving is expensive and deterministic for the exact solvers, so completed
// results are cached keyed by the full solve request (graph kind, parameters,
// solver, and tuning). Only final results are ever cached — never in-flight
// search state.
//
// Three backends are provided:
//   - FileCache: directory of JSON entries for CLI usage
//   - RedisCache: shared cache for server deployments
//   - NullCache: disables caching
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys with optional expiry.
// A zero ttl means the entry never expires.
type Cache interface {
	// Get retrieves the value for key. The second return value reports
	// whether the key was present; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores the value under key with the given ttl.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes the key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// NullCache is a no-op cache that never stores anything.
// Useful for testing or when caching should be disabled.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache {
	return &NullCache{}
}

// Get always returns a cache miss.
func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set does nothing.
func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

// Delete does nothing.
func (c *NullCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Close does nothing.
func (c *NullCache) Close() error {
	return nil
}

// Ensure NullCache implements Cache.
var _ Cache = (*NullCache)(nil)
