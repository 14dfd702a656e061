package fetch

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/BhushanMisal/apicache/internal/cache"
)

// Memoizer serves fetches through a file-backed cache: a cached response
// wins, a miss falls through to the client and the result is stored for
// next time. A cache fault only ever costs a fallback fetch, never an
// error for the caller.
type Memoizer struct {
	client Fetcher
	cache  *cache.Typed[Response]
}

// NewMemoizer creates a memoizer over the given client and store
func NewMemoizer(client Fetcher, store cache.Store) *Memoizer {
	return &Memoizer{
		client: client,
		cache:  cache.NewTyped[Response](store),
	}
}

// GetOrFetch returns the cached response for the URL, or fetches and
// caches it with the given ttl (ttl <= 0 uses the store's default)
func (m *Memoizer) GetOrFetch(rawURL string, ttl time.Duration) (*Response, error) {
	if resp, found := m.cache.Get(rawURL); found {
		logrus.Debugf("Cache hit for %s", rawURL)
		return &resp, nil
	}
	logrus.Debugf("No cached response for %s", rawURL)

	resp, err := m.client.Fetch(rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", rawURL, err)
	}

	// A failed write is not fatal: serve the fresh response uncached
	if err := m.cache.Put(rawURL, *resp, ttl); err != nil {
		logrus.Errorf("Failed to cache response for %s: %v", rawURL, err)
	}

	return resp, nil
}

// Sweep runs one maintenance pass over the cache. The caller picks the
// cadence; the memoizer never schedules sweeps itself.
func (m *Memoizer) Sweep() {
	m.cache.Sweep()
}
