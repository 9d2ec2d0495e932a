// Package filter derives per-tab operator views from the full
// reservation list. Apply is deterministic: day comparisons use the
// caller-supplied reference date, never the system clock.
package filter

import (
	"strings"
	"time"

	"frontdesk/internal/models"

	"github.com/rs/zerolog"
)

// Tab names as the UI sends them. "Pending" is capitalized on the wire
// while the other tabs are not; preserved as-is.
const (
	TabPending    = "Pending"
	TabArrivals   = "arrivals"
	TabInHouse    = "in-house"
	TabDepartures = "departures"
	TabUpcoming   = "upcoming"
	TabPast       = "past"
	TabCancelled  = "cancelled"
	TabAll        = "all"
)

// Criteria selects the view to compute.
type Criteria struct {
	ActiveTab     string
	FilterStatus  string // status dropdown; honored on the "all" tab only
	SearchTerm    string
	ReferenceDate time.Time // "today" for day-granularity comparisons
}

// Engine applies view criteria to reservation lists. It has no mutable
// state; the logger only carries the unknown-tab warning.
type Engine struct {
	logger *zerolog.Logger
}

func New(logger *zerolog.Logger) *Engine {
	return &Engine{logger: logger}
}

// Apply returns the reservations visible under the criteria, in input
// order. A nil input yields an empty, non-nil result.
func (e *Engine) Apply(reservations []models.Reservation, c Criteria) []models.Reservation {
	out := make([]models.Reservation, 0, len(reservations))
	if len(reservations) == 0 {
		return out
	}

	tab := c.ActiveTab
	if !knownTab(tab) {
		if e.logger != nil {
			e.logger.Warn().Str("tab", tab).Msg("unknown tab, showing all reservations")
		}
		tab = TabAll
	}

	term := strings.ToLower(strings.TrimSpace(c.SearchTerm))

	for _, r := range reservations {
		if !e.tabMatch(r, tab, c.ReferenceDate) {
			continue
		}
		if tab == TabAll && !statusMatch(r, c.FilterStatus) {
			continue
		}
		if term != "" && !searchMatch(r, term) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func knownTab(tab string) bool {
	switch tab {
	case TabPending, TabArrivals, TabInHouse, TabDepartures, TabUpcoming, TabPast, TabCancelled, TabAll:
		return true
	}
	return false
}

func (e *Engine) tabMatch(r models.Reservation, tab string, ref time.Time) bool {
	switch tab {
	case TabPending:
		return r.Status == models.StatusPending
	case TabArrivals:
		if r.Status != models.StatusConfirmed {
			return false
		}
		offset, ok := models.DayOffset(r.CheckIn, ref)
		return ok && (offset == 0 || offset == 1)
	case TabInHouse:
		return r.Status == models.StatusCheckedIn
	case TabDepartures:
		if r.Status != models.StatusCheckedIn {
			return false
		}
		offset, ok := models.DayOffset(r.CheckOut, ref)
		return ok && offset == 0
	case TabUpcoming:
		if r.Status != models.StatusConfirmed {
			return false
		}
		offset, ok := models.DayOffset(r.CheckIn, ref)
		return ok && offset > 1
	case TabPast:
		return r.Status == models.StatusCheckedOut
	case TabCancelled:
		return r.Status == models.StatusCancelled
	default: // TabAll
		return true
	}
}

func statusMatch(r models.Reservation, status string) bool {
	if status == "" || strings.EqualFold(status, "all") {
		return true
	}
	return r.Status == status
}

// searchMatch is a case-insensitive substring check over the guest
// name, reference, room number and room type; any field may match.
func searchMatch(r models.Reservation, term string) bool {
	for _, field := range []string{r.GuestName, r.Reference, r.RoomNumber, r.RoomType} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}
