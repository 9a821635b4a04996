package types

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the layout of calendar dates, e.g. due dates.
const DateLayout = "2006-01-02"

var ErrDateInvalid = errors.New("dates must be in the YYYY-MM-DD format")

// ParseDate parses a calendar date in the YYYY-MM-DD format at midnight
// in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}

	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, ErrDateInvalid
	}

	return t, nil
}

// ValidDate reports whether s is empty or a valid calendar date without
// surrounding whitespace.
func ValidDate(s string) bool {
	if s == "" {
		return true
	}

	if s != strings.TrimSpace(s) {
		return false
	}

	_, err := ParseDate(s, time.UTC)
	return err == nil
}
