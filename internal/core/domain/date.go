package domain

import (
	"time"

	apperrors "github.com/lorrc/response-metrics-backend/internal/core/errors"
)

// dateLayout is the ISO 8601 calendar day format used by the feed.
const dateLayout = "2006-01-02"

// Date is a calendar day in ISO 8601 YYYY-MM-DD form. Because the format is
// fixed-width, lexicographic ordering on the underlying string is date
// ordering, and the comparisons below rely on that.
type Date string

// ParseDate validates and normalizes an ISO date string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return "", apperrors.ErrMalformedDate
	}
	// Re-format so non-canonical input cannot sneak through.
	return DateOf(t), nil
}

// DateOf truncates a point in time to its calendar day.
func DateOf(t time.Time) Date {
	return Date(t.Format(dateLayout))
}

func (d Date) String() string { return string(d) }

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool { return d == "" }

// Time returns the date at midnight UTC.
func (d Date) Time() time.Time {
	t, _ := time.Parse(dateLayout, string(d))
	return t
}

// AddDays returns the date shifted by n calendar days (n may be negative).
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

func (d Date) Before(other Date) bool { return d < other }

func (d Date) After(other Date) bool { return d > other }

// DaysBetween returns the number of whole days from a to b.
// Negative when b precedes a.
func DaysBetween(a, b Date) int {
	return int(b.Time().Sub(a.Time()).Hours() / 24)
}

// DateRange is an inclusive start/end window.
type DateRange struct {
	Start Date `json:"start"`
	End   Date `json:"end"`
}

// IsValid reports whether both bounds are set and correctly ordered.
func (r DateRange) IsValid() bool {
	return !r.Start.IsZero() && !r.End.IsZero() && !r.End.Before(r.Start)
}

// Days returns the number of calendar days covered, both bounds inclusive.
func (r DateRange) Days() int {
	return DaysBetween(r.Start, r.End) + 1
}

// Contains reports whether d falls inside the window.
func (r DateRange) Contains(d Date) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}
