package cache

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Typed adapts a byte-level Store to a concrete value type, using JSON as
// the payload serialization. A payload that no longer decodes into T is
// treated like any other corrupt entry: removed and reported as a miss.
type Typed[T any] struct {
	store Store
}

func NewTyped[T any](store Store) *Typed[T] {
	return &Typed[T]{
		store: store,
	}
}

// Put serializes the value and stores it under the key
func (c *Typed[T]) Put(key string, value T, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	return c.store.Put(key, data, ttl)
}

// Get retrieves and deserializes the value for the key. Returns false on
// miss, expiry, or an undecodable payload.
func (c *Typed[T]) Get(key string) (T, bool) {
	var value T

	data, ok := c.store.Get(key)
	if !ok {
		return value, false
	}

	if err := json.Unmarshal(data, &value); err != nil {
		logrus.Warnf("Removing undecodable cache entry for key %q: %v", key, err)
		c.store.Delete(key)
		var zero T
		return zero, false
	}

	return value, true
}

// Delete removes the entry for the key
func (c *Typed[T]) Delete(key string) {
	c.store.Delete(key)
}

// Sweep runs a maintenance pass on the underlying store
func (c *Typed[T]) Sweep() {
	c.store.Sweep()
}
