package cache

import (
	"context"
	"time"
)

// Cache is the claim store behind notification dedupe.
// This is a port that can be implemented by different cache providers (Redis, Memcached, etc.).
type Cache interface {
	// SetNX stores the value only if the key is absent.
	// It reports whether this call created the key.
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)

	// Delete removes a value from the cache by key.
	Delete(ctx context.Context, key string) error
}
