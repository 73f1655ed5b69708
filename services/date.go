package services

import (
	"fmt"
	"time"
)

// DayLayout is the YYYY-MM-DD form used by lead filters and export keys
const DayLayout = "2006-01-02"

// ParseDay parses a YYYY-MM-DD day as midnight in loc. A nil loc means UTC.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(DayLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// DayBounds returns the half-open [start, end) range of the calendar day
// containing t, in t's location.
func DayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}
