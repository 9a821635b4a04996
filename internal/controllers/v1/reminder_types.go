package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pocket-ledger/backend/internal/models"
	"github.com/pocket-ledger/backend/internal/notifications"
	"github.com/pocket-ledger/backend/internal/reminders"
)

type ReminderLinks struct {
	Expense string `json:"expense" example:"https://example.com/api/v1/expenses/17"` // The expense the reminder belongs to. Empty for notifications that are not payment reminders
}

// Reminder is a pending payment reminder.
type Reminder struct {
	ID          string        `json:"id" example:"0d6a9c3e-8a6c-4b9f-9e59-8b1a1e0e3b7c"` // Confirmation ID of the notification
	Key         string        `json:"key" example:"expense_17"`                          // Key of the reminder
	ExpenseID   *uint         `json:"expenseId" example:"17"`                            // ID of the expense. null for notifications that are not payment reminders
	Title       string        `json:"title" example:"Payment reminder"`                  // Title of the notification
	Body        string        `json:"body" example:"Internet: $39.99 due on 2024-05-10"` // Body text of the notification
	FireAt      time.Time     `json:"fireAt" example:"2024-05-07T09:00:00Z"`             // When the reminder fires
	ScheduledAt time.Time     `json:"scheduledAt" example:"2024-05-01T18:03:11Z"`        // When the reminder was scheduled
	Links       ReminderLinks `json:"links"`
}

func newReminder(c *gin.Context, pending notifications.Pending) Reminder {
	url := c.GetString(string(models.DBContextURL))

	r := Reminder{
		ID:          pending.ID,
		Key:         pending.Key,
		Title:       pending.Title,
		Body:        pending.Body,
		FireAt:      pending.FireAt.In(time.UTC),
		ScheduledAt: pending.ScheduledAt.In(time.UTC),
	}

	if id, ok := reminders.ParseKey(pending.Key); ok {
		r.ExpenseID = &id
		r.Links.Expense = fmt.Sprintf("%s/v1/expenses/%d", url, id)
	}

	return r
}

type ReminderListResponse struct {
	Data  []Reminder `json:"data"`                                                       // List of pending reminders
	Error *string    `json:"error" example:"the key pattern must not be empty when set"` // The error, if any occurred
}

type ReminderQueryFilter struct {
	Key string `form:"key" filterField:"false"` // Glob pattern for the key, e.g. "expense_1*"
}

type ReminderCancelQuery struct {
	Confirm string `form:"confirm"` // Must be "yes-please-cancel-everything"
}
