package repository

import (
	"context"
	"sync"
	"time"

	"frontdesk/internal/domain"
	"frontdesk/internal/models"

	"github.com/rs/zerolog"
)

const recoveryInterval = time.Minute

// FailoverSessionRepository prefers the primary backend and falls back
// to the secondary when the primary errors, probing the primary again
// after a recovery interval.
type FailoverSessionRepository struct {
	primary  domain.SessionRepository
	fallback domain.SessionRepository
	logger   *zerolog.Logger

	mu        sync.Mutex
	down      bool
	lastCheck time.Time
}

func NewFailoverSessionRepository(primary, fallback domain.SessionRepository, logger *zerolog.Logger) *FailoverSessionRepository {
	return &FailoverSessionRepository{primary: primary, fallback: fallback, logger: logger}
}

// usePrimary reports whether the next call should go to the primary.
func (r *FailoverSessionRepository) usePrimary() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.down {
		return true
	}
	if time.Since(r.lastCheck) > recoveryInterval {
		r.lastCheck = time.Now()
		return true // probe
	}
	return false
}

func (r *FailoverSessionRepository) markDown(err error) {
	r.mu.Lock()
	r.down = true
	r.lastCheck = time.Now()
	r.mu.Unlock()
	if r.logger != nil {
		r.logger.Error().Err(err).Msg("primary session repository failed, falling back to memory")
	}
}

func (r *FailoverSessionRepository) markUp() {
	r.mu.Lock()
	r.down = false
	r.mu.Unlock()
}

func (r *FailoverSessionRepository) Get(ctx context.Context, id string) (*models.Session, error) {
	if r.usePrimary() {
		session, err := r.primary.Get(ctx, id)
		if err == nil {
			r.markUp()
			return session, nil
		}
		r.markDown(err)
	}
	return r.fallback.Get(ctx, id)
}

func (r *FailoverSessionRepository) Set(ctx context.Context, session *models.Session) error {
	if r.usePrimary() {
		err := r.primary.Set(ctx, session)
		if err == nil {
			r.markUp()
			// mirror into the fallback so a later failover still sees it
			_ = r.fallback.Set(ctx, session)
			return nil
		}
		r.markDown(err)
	}
	return r.fallback.Set(ctx, session)
}

func (r *FailoverSessionRepository) Delete(ctx context.Context, id string) error {
	var primaryErr error
	if r.usePrimary() {
		primaryErr = r.primary.Delete(ctx, id)
		if primaryErr == nil {
			r.markUp()
		} else {
			r.markDown(primaryErr)
		}
	}
	return r.fallback.Delete(ctx, id)
}
