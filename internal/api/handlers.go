package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"frontdesk/internal/filter"
	"frontdesk/internal/metrics"
	"frontdesk/internal/models"
	"frontdesk/internal/store"
)

const bookingNotFound = "Booking not found"

func (s *HTTPServer) handleBookings(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("bookings")

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.listBookings(r))

	case http.MethodPost:
		patch, ok := decodePatch(w, r)
		if !ok {
			return
		}
		created := s.store.Create(patch)
		s.emitter.BookingCreated(created)
		writeJSON(w, http.StatusCreated, created)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleBookingByID(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("bookings_by_id")

	id, ok := bookingID(r.URL.Path)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid booking id")
		return
	}

	switch r.Method {
	case http.MethodGet:
		record, err := s.store.Get(id)
		if err != nil {
			writeError(w, http.StatusNotFound, bookingNotFound)
			return
		}
		writeJSON(w, http.StatusOK, record)

	case http.MethodPut:
		patch, ok := decodePatch(w, r)
		if !ok {
			return
		}
		merged, err := s.store.Update(id, patch)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				writeError(w, http.StatusNotFound, bookingNotFound)
				return
			}
			writeError(w, http.StatusInternalServerError, "update failed")
			return
		}
		s.emitter.BookingUpdated(merged)
		writeJSON(w, http.StatusOK, merged)

	case http.MethodDelete:
		removed, err := s.store.Delete(id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				writeError(w, http.StatusNotFound, bookingNotFound)
				return
			}
			writeError(w, http.StatusInternalServerError, "delete failed")
			return
		}
		s.emitter.BookingCancelled(removed)
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleExport(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("bookings_export")

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	f, err := s.exporter.Workbook(s.store.List())
	if err != nil {
		s.log.Error().Err(err).Msg("build export workbook")
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}
	defer f.Close()

	fileName := "reservations_" + time.Now().Format("2006-01-02") + ".xlsx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+fileName+`"`)
	if err := f.Write(w); err != nil {
		s.log.Error().Err(err).Msg("stream export workbook")
	}
}

// listBookings narrows the full list with the same tab, status and
// search semantics the operator UI uses. Without query parameters it is
// the plain full list in creation order.
func (s *HTTPServer) listBookings(r *http.Request) []models.Reservation {
	query := r.URL.Query()

	criteria := filter.Criteria{
		ActiveTab:     query.Get("tab"),
		FilterStatus:  query.Get("status"),
		SearchTerm:    query.Get("search"),
		ReferenceDate: time.Now(),
	}
	if criteria.ActiveTab == "" {
		criteria.ActiveTab = filter.TabAll
	}
	if raw := query.Get("date"); raw != "" {
		if day, ok := models.ParseDay(raw); ok {
			criteria.ReferenceDate = day
		}
	}

	return s.filter.Apply(s.store.List(), criteria)
}

func decodePatch(w http.ResponseWriter, r *http.Request) (models.ReservationPatch, bool) {
	var patch models.ReservationPatch
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return models.ReservationPatch{}, false
	}
	return patch, true
}

func bookingID(path string) (int64, bool) {
	raw := strings.TrimPrefix(path, "/bookings/")
	if raw == "" || strings.Contains(raw, "/") {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
