package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zankoclinic/clinic-api/internal/model"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(time.Hour)

	sess := &model.Session{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Name:   "Zanko",
		Email:  "admin@clinic.test",
		Role:   model.RoleAdmin,
	}
	require.NoError(t, store.Create(context.Background(), sess))
	assert.False(t, sess.ExpiresAt.IsZero())

	got, err := store.Get(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.UserID, got.UserID)
	assert.Equal(t, model.RoleAdmin, got.Role)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(10 * time.Millisecond)

	sess := &model.Session{ID: uuid.New(), UserID: uuid.New()}
	require.NoError(t, store.Create(context.Background(), sess))

	time.Sleep(30 * time.Millisecond)

	_, err := store.Get(context.Background(), sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreRollingExpiry(t *testing.T) {
	store := NewMemoryStore(50 * time.Millisecond)

	sess := &model.Session{ID: uuid.New(), UserID: uuid.New()}
	require.NoError(t, store.Create(context.Background(), sess))

	// Keep touching the session; each Get renews the TTL, so it must
	// outlive the original window.
	deadline := time.Now().Add(150 * time.Millisecond)
	for time.Now().Before(deadline) {
		_, err := store.Get(context.Background(), sess.ID)
		require.NoError(t, err)
		time.Sleep(20 * time.Millisecond)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore(time.Hour)

	sess := &model.Session{ID: uuid.New(), UserID: uuid.New()}
	require.NoError(t, store.Create(context.Background(), sess))
	require.NoError(t, store.Delete(context.Background(), sess.ID))

	_, err := store.Get(context.Background(), sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting twice is fine.
	assert.NoError(t, store.Delete(context.Background(), sess.ID))
}
