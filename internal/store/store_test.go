package store

import (
	"testing"
	"time"

	"frontdesk/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(nil, WithClock(func() time.Time {
		return time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	}))
}

func TestCreateAssignsSequentialIDs(t *testing.T) {
	s := newTestStore(t)

	first := s.Create(models.ReservationPatch{GuestName: strPtr("John Smith")})
	second := s.Create(models.ReservationPatch{GuestName: strPtr("Jane Doe")})

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	assert.Equal(t, "John Smith", first.GuestName)
	assert.False(t, first.CreatedAt.IsZero())
}

func TestCreateRecomputesMaxAfterDelete(t *testing.T) {
	s := newTestStore(t)

	s.Create(models.ReservationPatch{})          // id 1
	s.Create(models.ReservationPatch{})          // id 2
	third := s.Create(models.ReservationPatch{}) // id 3
	_, err := s.Delete(third.ID)
	require.NoError(t, err)

	// max is now 2, so the next id is 3 again
	again := s.Create(models.ReservationPatch{})
	assert.Equal(t, int64(3), again.ID)

	// deleting from the middle leaves max intact
	_, err = s.Delete(1)
	require.NoError(t, err)
	next := s.Create(models.ReservationPatch{})
	assert.Equal(t, int64(4), next.ID)
}

func TestCreateOnEmptyStoreStartsAtOne(t *testing.T) {
	s := newTestStore(t)
	r := s.Create(models.ReservationPatch{})
	assert.Equal(t, int64(1), r.ID)

	_, err := s.Delete(r.ID)
	require.NoError(t, err)
	r = s.Create(models.ReservationPatch{})
	assert.Equal(t, int64(1), r.ID)
}

func TestUpdateShallowMerge(t *testing.T) {
	s := newTestStore(t)
	created := s.Create(models.ReservationPatch{
		GuestName: strPtr("John Smith"),
		RoomType:  strPtr("Suite"),
		CheckIn:   strPtr("2026-08-29"),
		CheckOut:  strPtr("2026-09-02"),
		Status:    strPtr(models.StatusConfirmed),
	})

	merged, err := s.Update(created.ID, models.ReservationPatch{
		Status:      strPtr(models.StatusCheckedIn),
		RoomNumber:  strPtr("312"),
		CheckInTime: strPtr("14:05"),
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusCheckedIn, merged.Status)
	assert.Equal(t, "312", merged.RoomNumber)
	assert.Equal(t, "14:05", merged.CheckInTime)
	// untouched fields preserved
	assert.Equal(t, "John Smith", merged.GuestName)
	assert.Equal(t, "Suite", merged.RoomType)
	assert.Equal(t, "2026-08-29", merged.CheckIn)
	// immutables preserved
	assert.Equal(t, created.ID, merged.ID)
	assert.Equal(t, created.Reference, merged.Reference)
	assert.Equal(t, created.CreatedAt, merged.CreatedAt)

	stored, err := s.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, merged, stored)
}

func TestUpdateNotFoundLeavesStoreUnchanged(t *testing.T) {
	s := newTestStore(t)
	s.Create(models.ReservationPatch{GuestName: strPtr("John Smith")})
	before := s.List()

	_, err := s.Update(99, models.ReservationPatch{GuestName: strPtr("Intruder")})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, before, s.List())
}

func TestDeleteReturnsRemovedRecord(t *testing.T) {
	s := newTestStore(t)
	r := s.Create(models.ReservationPatch{GuestName: strPtr("Jane Doe")})

	removed, err := s.Delete(r.ID)
	require.NoError(t, err)
	assert.Equal(t, r, removed)
	assert.Zero(t, s.Len())

	_, err = s.Delete(r.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListReturnsSnapshotInInsertionOrder(t *testing.T) {
	s := newTestStore(t)
	a := s.Create(models.ReservationPatch{GuestName: strPtr("A")})
	b := s.Create(models.ReservationPatch{GuestName: strPtr("B")})

	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, a.ID, list[0].ID)
	assert.Equal(t, b.ID, list[1].ID)

	// mutating the snapshot must not leak into the store
	list[0].GuestName = "mutated"
	stored, err := s.Get(a.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", stored.GuestName)
}
