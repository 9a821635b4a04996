package v1

import (
	"errors"
	"net/http"

	"github.com/pocket-ledger/backend/internal/models"
	"github.com/pocket-ledger/backend/internal/reminders"
)

// Controller holds the dependencies of the v1 API handlers.
type Controller struct {
	Reminders *reminders.Service
}

type httpError struct {
	Error string `json:"error" example:"there is no expense matching your query"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

// Cleanup errors
var (
	errCleanupConfirmation  = errors.New("the confirmation for the cleanup API call was incorrect")
	errReminderConfirmation = errors.New("the confirmation for cancelling all reminders was incorrect")
)

// Query errors
var (
	errKeyPatternInvalid = errors.New("the key pattern must not be empty when set")
	errDaysNegative      = errors.New("the days parameter must not be negative")
)
