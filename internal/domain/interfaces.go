// Package domain defines the seams between services and their
// infrastructure implementations.
package domain

import (
	"context"

	"frontdesk/internal/models"
)

// SessionRepository stores auth sessions and password-reset tokens
// with a TTL. Get returns (nil, nil) for missing or expired entries.
type SessionRepository interface {
	Get(ctx context.Context, id string) (*models.Session, error)
	Set(ctx context.Context, session *models.Session) error
	Delete(ctx context.Context, id string) error
}

// EventPublisher publishes a typed event with a JSON payload.
type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// ReservationStore is the mutation surface the HTTP handlers need.
type ReservationStore interface {
	List() []models.Reservation
	Get(id int64) (models.Reservation, error)
	Create(patch models.ReservationPatch) models.Reservation
	Update(id int64, patch models.ReservationPatch) (models.Reservation, error)
	Delete(id int64) (models.Reservation, error)
}
