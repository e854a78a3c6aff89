// Package week handles the planner's Monday-based weeks. A week start is
// always the Monday of the week at midnight UTC, carried around as a
// "YYYY-MM-DD" string in API params and storage.
package week

import (
	"fmt"
	"time"
)

const isoDate = "2006-01-02"

// ParseDate parses a "YYYY-MM-DD" string into a UTC midnight time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(isoDate, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t.UTC(), nil
}

// FormatDate renders a time as "YYYY-MM-DD".
func FormatDate(t time.Time) string {
	return t.UTC().Format(isoDate)
}

// Start returns the Monday of the week containing t, at midnight UTC.
func Start(t time.Time) time.Time {
	t = t.UTC()
	// time.Weekday has Sunday=0; shift so Monday=0.
	dow := (int(t.Weekday()) + 6) % 7
	t = t.AddDate(0, 0, -dow)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseWeekStart parses a "YYYY-MM-DD" week identifier and rejects dates
// that do not fall on a Monday.
func ParseWeekStart(s string) (time.Time, error) {
	t, err := ParseDate(s)
	if err != nil {
		return time.Time{}, err
	}
	if !t.Equal(Start(t)) {
		return time.Time{}, fmt.Errorf("week start %q is not a Monday", s)
	}
	return t, nil
}

// AddWeeks moves a week start forward (or back, when n is negative).
func AddWeeks(weekStart time.Time, n int) time.Time {
	return weekStart.AddDate(0, 0, n*7)
}
