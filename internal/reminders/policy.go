package reminders

import (
	"errors"
	"time"

	"github.com/pocket-ledger/backend/internal/types"
)

var (
	ErrLeadDaysNegative = errors.New("the reminder lead time must not be negative")
	ErrHourInvalid      = errors.New("the reminder hour must be between 0 and 23")
	ErrMinuteInvalid    = errors.New("the reminder minute must be between 0 and 59")
)

// Policy decides when the reminder for a due date fires.
type Policy struct {
	LeadDays int            // Days before the due date
	Hour     int            // Hour of day the reminder fires at
	Minute   int            // Minute of the hour the reminder fires at
	Location *time.Location // Time zone due dates are interpreted in. Defaults to time.Local
}

// DefaultPolicy fires reminders three days before the due date at 09:00 local time.
func DefaultPolicy() Policy {
	return Policy{
		LeadDays: 3,
		Hour:     9,
		Minute:   0,
		Location: time.Local,
	}
}

// Validate checks that the policy can compute fire times.
func (p Policy) Validate() error {
	if p.LeadDays < 0 {
		return ErrLeadDaysNegative
	}

	if p.Hour < 0 || p.Hour > 23 {
		return ErrHourInvalid
	}

	if p.Minute < 0 || p.Minute > 59 {
		return ErrMinuteInvalid
	}

	return nil
}

func (p Policy) location() *time.Location {
	if p.Location == nil {
		return time.Local
	}
	return p.Location
}

// FireTime returns the time the reminder for a due date in YYYY-MM-DD format
// fires at. ok is false if the due date is invalid or the fire time is not
// strictly after now.
func (p Policy) FireTime(dueDate string, now time.Time) (fireAt time.Time, ok bool) {
	due, err := types.ParseDate(dueDate, p.location())
	if err != nil {
		return time.Time{}, false
	}

	// time.Date normalizes the day, so this works across month boundaries
	fireAt = time.Date(due.Year(), due.Month(), due.Day()-p.LeadDays, p.Hour, p.Minute, 0, 0, p.location())
	if !fireAt.After(now) {
		return time.Time{}, false
	}

	return fireAt, true
}
