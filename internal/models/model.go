package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// DefaultModel is the base model for all models in pocket-ledger.
//
// IDs are assigned by the database on creation and never change, reminders
// are addressed by them.
type DefaultModel struct {
	ID uint `json:"id" gorm:"primaryKey" example:"42"` // ID for the resource
	Timestamps
}

// Timestamps only contains the timestamps that gorm sets automatically.
type Timestamps struct {
	CreatedAt time.Time `json:"createdAt" example:"2022-04-02T19:28:44.491514Z"` // Time the resource was created
	UpdatedAt time.Time `json:"updatedAt" example:"2022-04-17T20:14:01.048145Z"` // Last time the resource was updated
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000. Yes, this is different.
func (m *DefaultModel) AfterFind(_ *gorm.DB) (err error) {
	m.CreatedAt = m.CreatedAt.In(time.UTC)
	m.UpdatedAt = m.UpdatedAt.In(time.UTC)

	return nil
}

// updateDest returns the values written by an update. For updates, hooks are
// called on the stored record while the new values live in the statement
// destination.
func updateDest[T any](tx *gorm.DB) (T, bool) {
	switch d := tx.Statement.Dest.(type) {
	case T:
		return d, true
	case *T:
		return *d, true
	}

	var zero T
	return zero, false
}

// trimColumn trims a string column written by an update and returns the
// trimmed value. BeforeSave only sees the stored record on updates, so
// update hooks use this to keep stored strings trimmed.
func trimColumn(tx *gorm.DB, name, value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed != value && tx.Statement.Changed(name) {
		tx.Statement.SetColumn(name, trimmed)
	}

	return trimmed
}
