package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidDeadline = errors.New("model: invalid task deadline")

// DateLayout is the calendar-date form deadlines are entered in.
const DateLayout = "2006-01-02"

var localDeadlineLayouts = []string{
	DateLayout,
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// ParseDeadline accepts a calendar date or a date with a time of day.
// Values without an explicit offset are interpreted in loc; a bare date is
// midnight at the start of that day.
func ParseDeadline(raw string, loc *time.Location) (time.Time, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return time.Time{}, ErrEmptyDeadline
	}
	if loc == nil {
		loc = time.Local
	}
	if tm, err := time.Parse(time.RFC3339, v); err == nil {
		return tm, nil
	}
	for _, layout := range localDeadlineLayouts {
		if tm, err := time.ParseInLocation(layout, v, loc); err == nil {
			return tm, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDeadline, raw)
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
