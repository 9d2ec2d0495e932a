// Package store holds the authoritative in-memory reservation set.
// It is created at process start and discarded at shutdown; there is
// deliberately no persistence behind it.
package store

import (
	"errors"
	"sync"
	"time"

	"frontdesk/internal/models"

	"github.com/rs/zerolog"
)

var ErrNotFound = errors.New("booking not found")

// Store owns the reservation list. A single mutex serializes every
// mutation so that multi-threaded HTTP handling observes each
// mutation atomically, insertion order preserved.
type Store struct {
	mu           sync.RWMutex
	reservations []models.Reservation
	refs         *ReferenceGenerator
	now          func() time.Time
	logger       *zerolog.Logger
}

// Option customizes a Store, mainly for tests.
type Option func(*Store)

// WithClock overrides the time source used for createdAt stamps and
// reference dates.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithReferenceGenerator swaps the booking-reference generator.
func WithReferenceGenerator(g *ReferenceGenerator) Option {
	return func(s *Store) { s.refs = g }
}

func New(logger *zerolog.Logger, opts ...Option) *Store {
	s := &Store{
		refs:   NewReferenceGenerator(),
		now:    time.Now,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns a snapshot of the full reservation set in insertion order.
func (s *Store) List() []models.Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Reservation, len(s.reservations))
	copy(out, s.reservations)
	return out
}

// Get returns the reservation with the given id.
func (s *Store) Get(id int64) (models.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.reservations {
		if s.reservations[i].ID == id {
			return s.reservations[i], nil
		}
	}
	return models.Reservation{}, ErrNotFound
}

// Create assigns id, reference and createdAt, merges the caller patch
// over those defaults and appends the record. The id is recomputed as
// max(existing)+1 on every call so it tolerates out-of-order deletes.
func (s *Store) Create(patch models.ReservationPatch) models.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	r := models.Reservation{
		ID:        s.nextIDLocked(),
		Reference: s.refs.Generate(now),
		Status:    models.StatusPending,
		CreatedAt: now,
	}
	patch.ApplyTo(&r)

	s.reservations = append(s.reservations, r)
	if s.logger != nil {
		s.logger.Info().
			Int64("booking_id", r.ID).
			Str("reference", r.Reference).
			Str("guest", r.GuestName).
			Msg("booking created")
	}
	return r
}

// Update shallow-merges the patch over the stored record; fields absent
// from the patch are untouched and id/reference/createdAt never change.
func (s *Store) Update(id int64, patch models.ReservationPatch) (models.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.reservations {
		if s.reservations[i].ID != id {
			continue
		}
		patch.ApplyTo(&s.reservations[i])
		if s.logger != nil {
			s.logger.Info().Int64("booking_id", id).Msg("booking updated")
		}
		return s.reservations[i], nil
	}
	return models.Reservation{}, ErrNotFound
}

// Delete removes the record by id and returns it.
func (s *Store) Delete(id int64) (models.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.reservations {
		if s.reservations[i].ID != id {
			continue
		}
		removed := s.reservations[i]
		s.reservations = append(s.reservations[:i], s.reservations[i+1:]...)
		if s.logger != nil {
			s.logger.Info().Int64("booking_id", id).Msg("booking deleted")
		}
		return removed, nil
	}
	return models.Reservation{}, ErrNotFound
}

// Len reports the number of stored reservations.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reservations)
}

func (s *Store) nextIDLocked() int64 {
	var max int64
	for i := range s.reservations {
		if s.reservations[i].ID > max {
			max = s.reservations[i].ID
		}
	}
	return max + 1
}
