// Package notifications wraps the host's local notification capability.
//
// A Host stores pending notifications keyed by a caller supplied key and
// delivers them when their fire time is reached. The Scheduler adapter in
// front of it never returns errors to its callers: reminders are best effort
// and must not affect the operation that triggered them.
package notifications

import (
	"errors"
	"time"
)

var (
	ErrPermissionDenied  = errors.New("permission to show notifications has not been granted")
	ErrFireTimeNotFuture = errors.New("the fire time of a notification must be in the future")
	ErrKeyEmpty          = errors.New("the notification key must not be empty")
	ErrHostClosed        = errors.New("the notification host has been closed")
)

// swagger:enum Importance
type Importance string

const (
	ImportanceDefault Importance = "default"
	ImportanceHigh    Importance = "high"
	ImportanceMax     Importance = "max"
)

// Config controls how notifications are presented. It is passed to the
// Scheduler on construction and attached to every notification it schedules.
type Config struct {
	ShowAlert   bool       `json:"showAlert" yaml:"showAlert"`
	PlaySound   bool       `json:"playSound" yaml:"playSound"`
	SetBadge    bool       `json:"setBadge" yaml:"setBadge"`
	Channel     string     `json:"channel" yaml:"channel"`
	ChannelName string     `json:"channelName" yaml:"channelName"`
	Importance  Importance `json:"importance" yaml:"importance"`
}

// DefaultConfig returns the presentation used for payment reminders.
func DefaultConfig() Config {
	return Config{
		ShowAlert:   true,
		PlaySound:   true,
		SetBadge:    true,
		Channel:     "default",
		ChannelName: "Payment reminders",
		Importance:  ImportanceMax,
	}
}

// Request is a notification to be scheduled.
type Request struct {
	Key    string            `json:"key" example:"expense_42"`                       // Slot of the notification. Scheduling with an existing key replaces the pending notification
	Title  string            `json:"title" example:"Payment reminder"`               // Title of the notification
	Body   string            `json:"body" example:"Rent: $800.00 due on 2024-05-01"` // Body text of the notification
	FireAt time.Time         `json:"fireAt" example:"2024-04-28T09:00:00+02:00"`     // Time the notification is delivered at
	Data   map[string]string `json:"data"`                                           // Opaque payload handed back on delivery
}

// Pending is a notification waiting in the host store.
type Pending struct {
	Request
	ID           string    `json:"id" example:"0d6a9c3e-8a6c-4b9f-9e59-8b1a1e0e3b7c"` // Confirmation ID returned by the host
	Presentation Config    `json:"presentation"`                                       // How the notification will be presented
	ScheduledAt  time.Time `json:"scheduledAt" example:"2024-04-20T18:03:11Z"`         // Time the notification was scheduled at
}

// Delivery is emitted by a Host when a pending notification fires.
type Delivery struct {
	Pending
	DeliveredAt time.Time
}
