package events

import (
	"sync"
	"time"

	"frontdesk/internal/metrics"
	"frontdesk/internal/models"

	"github.com/rs/zerolog"
)

// Emitter turns store mutations into Notifications and publishes them
// on the bus. Emission runs inside the mutation handler, so every
// subscriber registered at mutation time observes the event.
type Emitter struct {
	bus    *Bus
	logger *zerolog.Logger
	now    func() time.Time

	mu     sync.Mutex
	lastID int64
}

func NewEmitter(bus *Bus, logger *zerolog.Logger) *Emitter {
	return &Emitter{bus: bus, logger: logger, now: time.Now}
}

// BookingCreated emits a Reservation notification for a new booking.
func (e *Emitter) BookingCreated(r models.Reservation) {
	e.emit(EventBookingCreated, models.NotificationReservation, r)
}

// BookingUpdated emits an Update notification for a merged booking.
func (e *Emitter) BookingUpdated(r models.Reservation) {
	e.emit(EventBookingUpdated, models.NotificationUpdate, r)
}

// BookingCancelled emits a Cancellation notification for a removed booking.
func (e *Emitter) BookingCancelled(r models.Reservation) {
	e.emit(EventBookingCancelled, models.NotificationCancellation, r)
}

func (e *Emitter) emit(eventType, kind string, r models.Reservation) {
	n := models.Notification{
		ID:        e.nextID(),
		Type:      kind,
		User:      r.GuestName,
		Date:      e.now(),
		BookingID: r.ID,
	}

	if err := e.bus.PublishJSON(eventType, n); err != nil {
		if e.logger != nil {
			e.logger.Error().Err(err).Str("event", eventType).Msg("publish notification")
		}
		return
	}

	metrics.IncEvent(eventType)
	if e.logger != nil {
		e.logger.Debug().
			Str("event", eventType).
			Int64("booking_id", r.ID).
			Int64("notification_id", n.ID).
			Msg("notification emitted")
	}
}

// nextID derives a millisecond-timestamp id, bumped when two emissions
// land on the same millisecond so ids stay unique within the process.
func (e *Emitter) nextID() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.now().UnixMilli()
	if id <= e.lastID {
		id = e.lastID + 1
	}
	e.lastID = id
	return id
}
