// Package session holds the server side of the cookie sessions: an opaque
// record keyed by session id with a rolling expiry. The cookie itself only
// carries a signed reference to the record, so logout and expiry are always
// decided here, never by the client.
package session

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/zankoclinic/clinic-api/internal/model"
)

// ErrNotFound is returned when a session does not exist or has expired.
var ErrNotFound = errors.New("session not found")

type Store interface {
	// Create persists the session with the store's TTL.
	Create(ctx context.Context, sess *model.Session) error
	// Get returns the session and renews its TTL (rolling expiry).
	Get(ctx context.Context, id uuid.UUID) (*model.Session, error)
	// Delete destroys the session. Deleting an absent session is not an error.
	Delete(ctx context.Context, id uuid.UUID) error
}
