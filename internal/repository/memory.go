package repository

import (
	"context"
	"sync"
	"time"

	"frontdesk/internal/models"
)

// MemorySessionRepository keeps sessions in process memory. It is the
// default backend and the failover target when Redis is unreachable.
type MemorySessionRepository struct {
	sessions sync.Map
	ttl      time.Duration
}

func NewMemorySessionRepository(ttl time.Duration) *MemorySessionRepository {
	return &MemorySessionRepository{ttl: ttl}
}

func (r *MemorySessionRepository) Get(ctx context.Context, id string) (*models.Session, error) {
	val, ok := r.sessions.Load(id)
	if !ok {
		return nil, nil
	}
	session := val.(*models.Session)
	if !session.ExpiresAt.IsZero() && time.Now().After(session.ExpiresAt) {
		r.sessions.Delete(id)
		return nil, nil
	}
	return session, nil
}

func (r *MemorySessionRepository) Set(ctx context.Context, session *models.Session) error {
	if session.ExpiresAt.IsZero() && r.ttl > 0 {
		session.ExpiresAt = time.Now().Add(r.ttl)
	}
	r.sessions.Store(session.ID, session)
	return nil
}

func (r *MemorySessionRepository) Delete(ctx context.Context, id string) error {
	r.sessions.Delete(id)
	return nil
}
