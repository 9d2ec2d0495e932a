package models

import "time"

// Reservation is the authoritative booking record held by the store.
// CheckIn and CheckOut are calendar dates (YYYY-MM-DD) compared at
// midnight granularity; time of day is not tracked for stay boundaries.
type Reservation struct {
	ID               int64     `json:"id"`
	Reference        string    `json:"reference"`
	GuestName        string    `json:"guestName"`
	RoomType         string    `json:"roomType"`
	RoomNumber       string    `json:"roomNumber"`
	CheckIn          string    `json:"checkIn"`
	CheckOut         string    `json:"checkOut"`
	Status           string    `json:"status"`
	PaymentStatus    string    `json:"paymentStatus"`
	Notes            string    `json:"notes,omitempty"`
	CheckInTime      string    `json:"checkInTime,omitempty"`
	CheckOutTime     string    `json:"checkOutTime,omitempty"`
	Balance          *float64  `json:"balance,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	CancellationDate string    `json:"cancellationDate,omitempty"`
}

// ReservationPatch carries the caller-supplied subset of reservation
// fields for create and update. Nil pointers mean "field not supplied";
// updates replace only supplied fields (shallow merge).
type ReservationPatch struct {
	GuestName        *string  `json:"guestName,omitempty"`
	RoomType         *string  `json:"roomType,omitempty"`
	RoomNumber       *string  `json:"roomNumber,omitempty"`
	CheckIn          *string  `json:"checkIn,omitempty"`
	CheckOut         *string  `json:"checkOut,omitempty"`
	Status           *string  `json:"status,omitempty"`
	PaymentStatus    *string  `json:"paymentStatus,omitempty"`
	Notes            *string  `json:"notes,omitempty"`
	CheckInTime      *string  `json:"checkInTime,omitempty"`
	CheckOutTime     *string  `json:"checkOutTime,omitempty"`
	Balance          *float64 `json:"balance,omitempty"`
	CancellationDate *string  `json:"cancellationDate,omitempty"`
}

// ApplyTo merges supplied fields over the target record. ID, Reference
// and CreatedAt are immutable after creation and never touched here.
func (p ReservationPatch) ApplyTo(r *Reservation) {
	if p.GuestName != nil {
		r.GuestName = *p.GuestName
	}
	if p.RoomType != nil {
		r.RoomType = *p.RoomType
	}
	if p.RoomNumber != nil {
		r.RoomNumber = *p.RoomNumber
	}
	if p.CheckIn != nil {
		r.CheckIn = *p.CheckIn
	}
	if p.CheckOut != nil {
		r.CheckOut = *p.CheckOut
	}
	if p.Status != nil {
		r.Status = *p.Status
	}
	if p.PaymentStatus != nil {
		r.PaymentStatus = *p.PaymentStatus
	}
	if p.Notes != nil {
		r.Notes = *p.Notes
	}
	if p.CheckInTime != nil {
		r.CheckInTime = *p.CheckInTime
	}
	if p.CheckOutTime != nil {
		r.CheckOutTime = *p.CheckOutTime
	}
	if p.Balance != nil {
		r.Balance = p.Balance
	}
	if p.CancellationDate != nil {
		r.CancellationDate = *p.CancellationDate
	}
}
