package cache

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResponse struct {
	Status int    `json:"status"`
	Body   string `json:"body"`
}

func TestTypedRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), time.Hour)
	require.NoError(t, err)

	cache := NewTyped[fakeResponse](store)

	want := fakeResponse{Status: 200, Body: `{"message":"hello"}`}
	require.NoError(t, cache.Put("key", want, 0))

	got, found := cache.Get("key")
	require.True(t, found)
	assert.Equal(t, want, got)
}

func TestTypedMiss(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), time.Hour)
	require.NoError(t, err)

	cache := NewTyped[fakeResponse](store)

	_, found := cache.Get("never-put")
	assert.False(t, found)
}

func TestTypedUndecodablePayload(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), time.Hour)
	require.NoError(t, err)

	// A valid envelope whose payload is not a fakeResponse
	require.NoError(t, store.Put("key", []byte(`"just a string"`), time.Hour))

	cache := NewTyped[fakeResponse](store)

	_, found := cache.Get("key")
	assert.False(t, found)

	// The entry is removed like any other corrupt one
	_, err = os.Stat(store.keyPath("key"))
	assert.True(t, os.IsNotExist(err))
}

func TestTypedSweep(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), time.Hour)
	require.NoError(t, err)

	cache := NewTyped[fakeResponse](store)
	require.NoError(t, cache.Put("expired", fakeResponse{Status: 200}, time.Minute))

	store.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	cache.Sweep()

	_, err = os.Stat(store.keyPath("expired"))
	assert.True(t, os.IsNotExist(err))
}
