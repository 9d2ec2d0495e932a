package store

import (
	"fmt"
	"os"

	"frontdesk/internal/models"

	"gopkg.in/yaml.v2"
)

type seedEntry struct {
	GuestName     string  `yaml:"guest_name"`
	RoomType      string  `yaml:"room_type"`
	RoomNumber    string  `yaml:"room_number"`
	CheckIn       string  `yaml:"check_in"`
	CheckOut      string  `yaml:"check_out"`
	Status        string  `yaml:"status"`
	PaymentStatus string  `yaml:"payment_status"`
	Notes         string  `yaml:"notes"`
	Balance       float64 `yaml:"balance"`
}

type seedFile struct {
	Reservations []seedEntry `yaml:"reservations"`
}

// LoadSeed reads a YAML seed file and creates its reservations through
// the normal create path, so ids and references are assigned as usual.
// A missing path is not an error; the store simply starts empty.
func (s *Store) LoadSeed(path string) (int, error) {
	if path == "" {
		return 0, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("read seed file: %w", err)
	}

	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return 0, fmt.Errorf("parse seed file: %w", err)
	}

	for _, e := range file.Reservations {
		s.Create(e.patch())
	}

	if s.logger != nil {
		s.logger.Info().Int("count", len(file.Reservations)).Str("path", path).Msg("seed reservations loaded")
	}
	return len(file.Reservations), nil
}

func (e seedEntry) patch() models.ReservationPatch {
	p := models.ReservationPatch{
		GuestName:     &e.GuestName,
		RoomType:      &e.RoomType,
		RoomNumber:    &e.RoomNumber,
		CheckIn:       &e.CheckIn,
		CheckOut:      &e.CheckOut,
		PaymentStatus: &e.PaymentStatus,
		Notes:         &e.Notes,
	}
	if e.Status != "" {
		p.Status = &e.Status
	}
	if e.Balance != 0 {
		p.Balance = &e.Balance
	}
	return p
}
