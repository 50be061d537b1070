package shared

import (
	"context"
	"time"
)

// Cache is an injected key/value cache used to memoize read queries.
// Implementations must be safe for concurrent use. Lookups that miss return
// (nil, false, nil); errors are reserved for backend failures.
type Cache interface {
	// Get retrieves the raw value stored under key
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores a value under key with a time-to-live
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes a single key
	Delete(ctx context.Context, key string) error
	// InvalidatePrefix removes all keys under the given prefix
	InvalidatePrefix(ctx context.Context, prefix string) error
}
