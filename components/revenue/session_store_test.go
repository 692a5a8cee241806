package revenue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storeSession(t *testing.T, id string, seen time.Time) *Session {
	t.Helper()
	s, err := newSession(id, MustDefaultDataset(), "", seen)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func TestInMemorySessionStorePutGetDelete(t *testing.T) {
	store := NewInMemorySessionStore()
	s := storeSession(t, "a", providerClock)

	require.NoError(t, store.Put(s))
	assert.Equal(t, 1, store.Len())

	got, ok := store.Get("a")
	require.True(t, ok)
	assert.Same(t, s, got)

	removed, ok := store.Delete("a")
	require.True(t, ok)
	assert.Same(t, s, removed)
	assert.Zero(t, store.Len())

	_, ok = store.Delete("a")
	assert.False(t, ok)
}

func TestInMemorySessionStoreRejectsNil(t *testing.T) {
	store := NewInMemorySessionStore()
	require.ErrorIs(t, store.Put(nil), errMissingSessionID)
}

func TestInMemorySessionStoreSweep(t *testing.T) {
	store := NewInMemorySessionStore()
	old := providerClock.Add(-time.Hour)
	for _, id := range []string{"c", "a"} {
		require.NoError(t, store.Put(storeSession(t, id, old)))
	}
	require.NoError(t, store.Put(storeSession(t, "b", providerClock)))

	expired := store.Sweep(providerClock.Add(-30 * time.Minute))
	require.Len(t, expired, 2)
	assert.Equal(t, "a", expired[0].ID())
	assert.Equal(t, "c", expired[1].ID())
	assert.Equal(t, 1, store.Len())

	_, ok := store.Get("b")
	assert.True(t, ok)
	assert.Empty(t, store.Sweep(providerClock.Add(-30*time.Minute)))
}
