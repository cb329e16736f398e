package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/zankoclinic/clinic-api/internal/model"
)

type memoryStore struct {
	cache *cache.Cache
	ttl   time.Duration
}

// NewMemoryStore is the single-process fallback when Redis is not
// configured. Sessions do not survive a restart.
func NewMemoryStore(ttl time.Duration) Store {
	return &memoryStore{
		cache: cache.New(ttl, 10*time.Minute),
		ttl:   ttl,
	}
}

func (s *memoryStore) Create(_ context.Context, sess *model.Session) error {
	sess.ExpiresAt = time.Now().Add(s.ttl)
	s.cache.Set(sess.ID.String(), *sess, s.ttl)
	return nil
}

func (s *memoryStore) Get(_ context.Context, id uuid.UUID) (*model.Session, error) {
	v, ok := s.cache.Get(id.String())
	if !ok {
		return nil, ErrNotFound
	}
	sess := v.(model.Session)

	sess.ExpiresAt = time.Now().Add(s.ttl)
	s.cache.Set(id.String(), sess, s.ttl)
	return &sess, nil
}

func (s *memoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.cache.Delete(id.String())
	return nil
}
