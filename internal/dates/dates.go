// Package dates provides local calendar-date helpers.
//
// All scheduling decisions in taskify operate on whole calendar days in
// the local time zone. Time-of-day components are display-only, so every
// comparison goes through Midnight first.
package dates

import "time"

// DayFormat is the canonical layout for calendar dates in snapshots and
// CLI flags.
const DayFormat = "2006-01-02"

// Midnight returns t truncated to the start of its local calendar day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same local calendar day.
func SameDay(a, b time.Time) bool {
	return Midnight(a).Equal(Midnight(b))
}

// StartOfMonth returns the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// StartOfYear returns January 1st of t's year.
func StartOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
}

// ParseDay parses a YYYY-MM-DD string in the local time zone.
func ParseDay(value string) (time.Time, error) {
	return time.ParseInLocation(DayFormat, value, time.Local)
}

// FormatDay renders t as YYYY-MM-DD.
func FormatDay(t time.Time) string {
	return t.Format(DayFormat)
}
