package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	rec := Record{
		ID:            "s1",
		Email:         "admin@aussiemate.au",
		UpstreamToken: "tok",
		Remember:      true,
		CreatedAt:     time.Now(),
	}
	require.NoError(t, store.Set(ctx, rec, time.Hour))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "admin@aussiemate.au", got.Email)
	assert.Equal(t, "tok", got.UpstreamToken)
	assert.True(t, got.Remember)
	assert.False(t, got.LastSeenAt.IsZero())
}

func TestMemoryStoreMissingSession(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreClear(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, Record{ID: "s1"}, time.Hour))
	require.NoError(t, store.Clear(ctx, "s1"))
	_, err := store.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)

	// Clearing an absent session is a no-op, not an error.
	assert.NoError(t, store.Clear(ctx, "s1"))
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, Record{ID: "s1"}, 10*time.Millisecond))
	time.Sleep(25 * time.Millisecond)
	_, err := store.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionIDContext(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, IDFromContext(ctx))
	ctx = WithID(ctx, "s9")
	assert.Equal(t, "s9", IDFromContext(ctx))
}
