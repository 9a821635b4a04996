package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pocket-ledger/backend/internal/models"
	"github.com/pocket-ledger/backend/internal/reminders"
	"github.com/pocket-ledger/backend/internal/types"
	"github.com/shopspring/decimal"
)

type ExpenseEditable struct {
	ConceptID uint            `json:"conceptId" example:"4"`                                                                      // ID of the expense concept
	Month     types.Month     `json:"month" example:"2024-05" swaggertype:"string"`                                               // The month the expense is booked in
	Amount    decimal.Decimal `json:"amount" example:"39.99" minimum:"0" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // Amount of the expense
	DueDate   string          `json:"dueDate" example:"2024-05-10" default:""`                                                    // Date the payment is due, YYYY-MM-DD. Empty for no due date
	Paid      bool            `json:"paid" example:"false" default:"false"`                                                       // Has the expense been paid?
	Note      string          `json:"note" example:"Fiber 600" default:""`                                                        // A note for the expense
}

// model returns the database resource for the editable fields
func (editable ExpenseEditable) model() models.Expense {
	return models.Expense{
		ConceptID: editable.ConceptID,
		Month:     editable.Month,
		Amount:    editable.Amount,
		DueDate:   editable.DueDate,
		Paid:      editable.Paid,
		Note:      editable.Note,
	}
}

type ExpenseLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/expenses/17"`                  // The expense itself
	Paid     string `json:"paid" example:"https://example.com/api/v1/expenses/17/paid"`             // POST to mark as paid, DELETE to mark as unpaid
	Concept  string `json:"concept" example:"https://example.com/api/v1/concepts/4"`                // The concept of the expense
	Reminder string `json:"reminder" example:"https://example.com/api/v1/reminders?key=expense_17"` // The payment reminder of the expense
}

// Expense is the API v1 representation of an Expense.
type Expense struct {
	models.DefaultModel
	ExpenseEditable
	ReminderAt *time.Time   `json:"reminderAt" example:"2024-05-07T09:00:00Z"` // When the payment reminder fires. null if no reminder is pending
	Links      ExpenseLinks `json:"links"`
}

func newExpense(c *gin.Context, model models.Expense, pending map[string]time.Time) Expense {
	url := c.GetString(string(models.DBContextURL))

	return Expense{
		DefaultModel: model.DefaultModel,
		ExpenseEditable: ExpenseEditable{
			ConceptID: model.ConceptID,
			Month:     model.Month,
			Amount:    model.Amount,
			DueDate:   model.DueDate,
			Paid:      model.Paid,
			Note:      model.Note,
		},
		ReminderAt: reminderAt(pending, model.ID),
		Links: ExpenseLinks{
			Self:     fmt.Sprintf("%s/v1/expenses/%d", url, model.ID),
			Paid:     fmt.Sprintf("%s/v1/expenses/%d/paid", url, model.ID),
			Concept:  fmt.Sprintf("%s/v1/concepts/%d", url, model.ConceptID),
			Reminder: fmt.Sprintf("%s/v1/reminders?key=%s", url, reminders.Key(model.ID)),
		},
	}
}

// reminderAt returns the fire time of the pending reminder for the expense, if any.
func reminderAt(pending map[string]time.Time, expenseID uint) *time.Time {
	fireAt, ok := pending[reminders.Key(expenseID)]
	if !ok {
		return nil
	}

	utc := fireAt.In(time.UTC)
	return &utc
}

type ExpenseListResponse struct {
	Data       []Expense   `json:"data"`                                                         // List of expenses
	Error      *string     `json:"error" example:"parsing time \"2024-13\": month out of range"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                   // Pagination information
}

type ExpenseCreateResponse struct {
	Error *string           `json:"error" example:"the due date is invalid: dates must be in the YYYY-MM-DD format"` // The error, if any occurred
	Data  []ExpenseResponse `json:"data"`                                                                            // List of created expenses
}

func (r *ExpenseCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, ExpenseResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type ExpenseResponse struct {
	Data  *Expense `json:"data"`                                                    // Data for the expense
	Error *string  `json:"error" example:"there is no expense matching your query"` // The error, if any occurred for this expense
}

type ExpenseQueryFilter struct {
	ConceptID uint        `form:"concept"`                    // By concept ID
	Month     types.Month `form:"month"`                      // By month, YYYY-MM
	Paid      bool        `form:"paid"`                       // Is the expense paid?
	DueDate   string      `form:"dueDate"`                    // By due date, YYYY-MM-DD. Empty for expenses without due date
	Note      string      `form:"note" filterField:"false"`   // Fuzzy filter for the note
	Search    string      `form:"search" filterField:"false"` // By string in note
	Offset    uint        `form:"offset" filterField:"false"` // The offset of the first expense returned. Defaults to 0.
	Limit     int         `form:"limit" filterField:"false"`  // Maximum number of expenses to return. Defaults to 50.
}

func (f ExpenseQueryFilter) model() models.Expense {
	return models.Expense{
		ConceptID: f.ConceptID,
		Month:     f.Month,
		Paid:      f.Paid,
		DueDate:   f.DueDate,
	}
}
