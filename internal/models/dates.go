package models

import "time"

// ParseDay parses a YYYY-MM-DD string into a midnight-normalized time.
// The zero time and false are returned for empty or malformed input.
func ParseDay(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DayFormat, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Midnight truncates a time to the start of its calendar day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayOffset returns the whole-day distance between a date string and a
// reference time, both normalized to midnight. ok is false when the
// date string does not parse.
func DayOffset(day string, ref time.Time) (int, bool) {
	d, ok := ParseDay(day)
	if !ok {
		return 0, false
	}
	// Parse yields UTC midnight; rebuild the reference the same way so
	// the difference is always a whole number of days.
	refDay := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
	return int(d.Sub(refDay).Hours() / 24), true
}
