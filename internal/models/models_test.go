package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatchApplyTo(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	r := Reservation{
		ID:        7,
		Reference: "HLP260301-A1B2",
		GuestName: "John Smith",
		RoomType:  "Deluxe",
		Status:    StatusConfirmed,
		CheckIn:   "2026-03-05",
		CheckOut:  "2026-03-08",
		CreatedAt: created,
	}

	status := StatusCheckedIn
	room := "204"
	p := ReservationPatch{Status: &status, RoomNumber: &room}
	p.ApplyTo(&r)

	assert.Equal(t, StatusCheckedIn, r.Status)
	assert.Equal(t, "204", r.RoomNumber)
	// untouched fields survive the merge
	assert.Equal(t, "John Smith", r.GuestName)
	assert.Equal(t, "Deluxe", r.RoomType)
	assert.Equal(t, "2026-03-05", r.CheckIn)
	assert.Equal(t, created, r.CreatedAt)
	assert.Equal(t, int64(7), r.ID)
}

func TestPatchApplyToEmpty(t *testing.T) {
	r := Reservation{ID: 1, GuestName: "Jane Doe", Status: StatusPending}
	before := r
	ReservationPatch{}.ApplyTo(&r)
	assert.Equal(t, before, r)
}

func TestParseDay(t *testing.T) {
	d, ok := ParseDay("2026-08-29")
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC), d)

	_, ok = ParseDay("")
	assert.False(t, ok)
	_, ok = ParseDay("29/08/2026")
	assert.False(t, ok)
}

func TestDayOffset(t *testing.T) {
	ref := time.Date(2026, 8, 29, 15, 42, 0, 0, time.FixedZone("CET", 3600))

	tests := []struct {
		day    string
		offset int
	}{
		{"2026-08-29", 0},
		{"2026-08-30", 1},
		{"2026-08-28", -1},
		{"2026-09-04", 6},
	}
	for _, tt := range tests {
		got, ok := DayOffset(tt.day, ref)
		require.True(t, ok, tt.day)
		assert.Equal(t, tt.offset, got, tt.day)
	}

	_, ok := DayOffset("not-a-date", ref)
	assert.False(t, ok)
}
