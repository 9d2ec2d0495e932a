package models

const (
	StatusPending    = "PENDING"
	StatusConfirmed  = "CONFIRMED"
	StatusCheckedIn  = "CHECKED_IN"
	StatusCheckedOut = "CHECKED_OUT"
	StatusCancelled  = "CANCELLED"
)

const (
	NotificationReservation  = "Reservation"
	NotificationUpdate       = "Update"
	NotificationCancellation = "Cancellation"
)

const (
	// DayFormat is the calendar-date layout used for stay boundaries.
	DayFormat = "2006-01-02"

	// ReferencePrefix opens every generated booking reference.
	ReferencePrefix = "HLP"

	// ReferenceSuffixLen is the number of random characters after the date.
	ReferenceSuffixLen = 4

	// DefaultStreamBuffer is the per-subscriber outbound frame buffer.
	DefaultStreamBuffer = 64

	// DefaultHeartbeatSeconds is the keep-alive interval on the push channel.
	DefaultHeartbeatSeconds = 30

	// DefaultSessionTTL covers sessions and password-reset tokens, in seconds.
	DefaultSessionTTL = 24 * 60 * 60
)
