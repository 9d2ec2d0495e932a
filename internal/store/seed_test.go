package store

import (
	"os"
	"path/filepath"
	"testing"

	"frontdesk/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedYAML = `reservations:
  - guest_name: "John Smith"
    room_type: "Deluxe"
    room_number: "101"
    check_in: "2026-08-29"
    check_out: "2026-09-01"
    status: "CONFIRMED"
    payment_status: "Paid"
    balance: 120.50
  - guest_name: "Jane Doe"
    room_type: "Standard"
    check_in: "2026-08-30"
    check_out: "2026-08-31"
`

func TestLoadSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seedYAML), 0o644))

	s := newTestStore(t)
	n, err := s.LoadSeed(path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	list := s.List()
	require.Len(t, list, 2)

	first := list[0]
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, "John Smith", first.GuestName)
	assert.Equal(t, models.StatusConfirmed, first.Status)
	assert.NotEmpty(t, first.Reference)
	require.NotNil(t, first.Balance)
	assert.InDelta(t, 120.50, *first.Balance, 0.001)

	// entry without a status falls back to the create default
	assert.Equal(t, models.StatusPending, list[1].Status)
}

func TestLoadSeedMissingFile(t *testing.T) {
	s := newTestStore(t)
	n, err := s.LoadSeed(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, s.Len())
}

func TestLoadSeedMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("reservations: {nope"), 0o644))

	s := newTestStore(t)
	_, err := s.LoadSeed(path)
	assert.Error(t, err)
}
