package models

import "time"

// Notification is the transient event record derived from a store
// mutation. It is broadcast once and never persisted server-side.
type Notification struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	User      string    `json:"user"`
	Date      time.Time `json:"date"`
	BookingID int64     `json:"bookingId"`
}

// Session is an issued auth session or password-reset token, stored
// with a TTL in the session repository.
type Session struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Kind      string    `json:"kind"` // "session" or "reset"
	ExpiresAt time.Time `json:"expires_at"`
}

// UserProfile is the public shape returned by the auth endpoints.
type UserProfile struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}
