package events

import (
	"encoding/json"
	"testing"
	"time"

	"frontdesk/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitterBuildsNotification(t *testing.T) {
	bus := NewBus()
	emitter := NewEmitter(bus, nil)
	at := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	emitter.now = func() time.Time { return at }

	var got []*Event
	for _, evt := range []string{EventBookingCreated, EventBookingUpdated, EventBookingCancelled} {
		bus.Subscribe(evt, func(e *Event) error { got = append(got, e); return nil })
	}

	r := models.Reservation{ID: 12, GuestName: "John Smith"}
	emitter.BookingCreated(r)
	emitter.BookingUpdated(r)
	emitter.BookingCancelled(r)

	require.Len(t, got, 3)
	assert.Equal(t, EventBookingCreated, got[0].Type)
	assert.Equal(t, EventBookingUpdated, got[1].Type)
	assert.Equal(t, EventBookingCancelled, got[2].Type)

	var n models.Notification
	require.NoError(t, json.Unmarshal(got[0].Payload, &n))
	assert.Equal(t, models.NotificationReservation, n.Type)
	assert.Equal(t, "John Smith", n.User)
	assert.Equal(t, int64(12), n.BookingID)
	assert.Equal(t, at, n.Date)

	var upd models.Notification
	require.NoError(t, json.Unmarshal(got[1].Payload, &upd))
	assert.Equal(t, models.NotificationUpdate, upd.Type)

	var del models.Notification
	require.NoError(t, json.Unmarshal(got[2].Payload, &del))
	assert.Equal(t, models.NotificationCancellation, del.Type)
}

func TestEmitterIDsUniqueWithinSameMillisecond(t *testing.T) {
	bus := NewBus()
	emitter := NewEmitter(bus, nil)
	at := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	emitter.now = func() time.Time { return at }

	var ids []int64
	bus.Subscribe(EventBookingCreated, func(e *Event) error {
		var n models.Notification
		if err := json.Unmarshal(e.Payload, &n); err != nil {
			return err
		}
		ids = append(ids, n.ID)
		return nil
	})

	for i := 0; i < 5; i++ {
		emitter.BookingCreated(models.Reservation{ID: int64(i)})
	}

	require.Len(t, ids, 5)
	seen := make(map[int64]bool)
	for i, id := range ids {
		assert.False(t, seen[id], "duplicate notification id %d", id)
		seen[id] = true
		if i > 0 {
			assert.Greater(t, id, ids[i-1])
		}
	}
}
