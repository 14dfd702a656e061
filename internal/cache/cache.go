// Handles file-backed caching of serialized values with time-based expiration
package cache

import (
	"errors"
	"time"
)

// Sentinel errors returned by cache operations. Per-key lookup faults never
// surface as errors; they degrade to a cache miss.
var (
	// ErrDirectory means the cache directory could not be created. Fatal to
	// construction; callers decide their own startup policy.
	ErrDirectory = errors.New("cache directory unavailable")
	// ErrWriteFailed means an entry could not be persisted. Recoverable:
	// callers may retry or proceed without caching.
	ErrWriteFailed = errors.New("cache write failed")
	// ErrEmptyKey is returned when an operation is given an empty key.
	ErrEmptyKey = errors.New("cache key is empty")
)

// Store is the byte-level cache interface
type Store interface {
	// stores a payload under the key, expiring after ttl (ttl <= 0 uses the
	// store's default TTL)
	Put(key string, payload []byte, ttl time.Duration) error
	// retrieves the payload for the key if it exists and is not expired.
	// returns false on miss; never returns an error
	Get(key string) ([]byte, bool)
	// removes the entry for the key; removing an absent entry is a no-op
	Delete(key string)
	// scans the whole cache and removes entries whose expiry has passed
	Sweep()
}
