package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	v1 "github.com/pocket-ledger/backend/internal/controllers/v1"
	"github.com/pocket-ledger/backend/internal/models"
	"github.com/pocket-ledger/backend/internal/reminders"
	"github.com/pocket-ledger/backend/internal/types"
	"github.com/pocket-ledger/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fireTime returns the time the reminder for a due date fires at with the test policy.
func fireTime(t *testing.T, dueDate string) time.Time {
	fireAt, ok := testPolicy.FireTime(dueDate, time.Now())
	require.True(t, ok, "due date %s has no reminder", dueDate)
	return fireAt
}

func (suite *TestSuiteStandard) getExpense(t *testing.T, url string) v1.Expense {
	r := test.Request(suite.controller, t, http.MethodGet, url, "")
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var response v1.ExpenseResponse
	test.DecodeResponse(t, &r, &response)

	return *response.Data
}

func (suite *TestSuiteStandard) TestExpensesCreate() {
	concept := suite.createTestConcept(suite.T(), v1.ConceptEditable{Name: "Rent"})
	due := dueIn(30)

	expense := suite.createTestExpense(suite.T(), v1.ExpenseEditable{
		ConceptID: concept.Data.ID,
		Month:     types.NewMonth(2024, time.May),
		Amount:    decimal.NewFromFloat(800),
		DueDate:   due,
		Note:      "Flat",
	})

	assert.Equal(suite.T(), due, expense.Data.DueDate)
	assert.True(suite.T(), types.NewMonth(2024, time.May).Equal(expense.Data.Month))
	require.NotNil(suite.T(), expense.Data.ReminderAt, "an unpaid expense with a future due date must have a reminder")
	assert.True(suite.T(), fireTime(suite.T(), due).Equal(*expense.Data.ReminderAt))

	key := reminders.Key(expense.Data.ID)
	assert.Equal(suite.T(), fmt.Sprintf("http://example.com/v1/reminders?key=%s", key), expense.Data.Links.Reminder)
	assert.Equal(suite.T(), fmt.Sprintf("http://example.com/v1/expenses/%d/paid", expense.Data.ID), expense.Data.Links.Paid)

	pending := suite.getReminders(suite.T(), "key="+key)
	require.Len(suite.T(), pending, 1)
	assert.Equal(suite.T(), "Payment reminder", pending[0].Title)
	assert.Contains(suite.T(), pending[0].Body, "Rent")
	assert.Contains(suite.T(), pending[0].Body, due)
	assert.Equal(suite.T(), expense.Data.ID, *pending[0].ExpenseID)
}

func (suite *TestSuiteStandard) TestExpensesCreateWithoutReminder() {
	tests := []struct {
		name    string
		expense v1.ExpenseEditable
	}{
		{"No due date", v1.ExpenseEditable{}},
		{"Already paid", v1.ExpenseEditable{DueDate: dueIn(30), Paid: true}},
		{"Due date too close", v1.ExpenseEditable{DueDate: dueIn(1)}},
		{"Due date in the past", v1.ExpenseEditable{DueDate: dueIn(-10)}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			expense := suite.createTestExpense(t, tt.expense)
			assert.Nil(t, expense.Data.ReminderAt)
			assert.Len(t, suite.getReminders(t, "key="+reminders.Key(expense.Data.ID)), 0)
		})
	}
}

func (suite *TestSuiteStandard) TestExpensesCreateFails() {
	income := suite.createTestConcept(suite.T(), v1.ConceptEditable{Kind: models.ConceptKindIncome})

	tests := []struct {
		name    string
		expense v1.ExpenseEditable
		status  int
		err     string
	}{
		{"Invalid due date", v1.ExpenseEditable{DueDate: "2024-02-30"}, http.StatusBadRequest, models.ErrExpenseDueDateInvalid.Error()},
		{"Wrong due date format", v1.ExpenseEditable{DueDate: "10.05.2024"}, http.StatusBadRequest, models.ErrExpenseDueDateInvalid.Error()},
		{"Negative amount", v1.ExpenseEditable{Amount: decimal.NewFromFloat(-1)}, http.StatusBadRequest, models.ErrAmountNegative.Error()},
		{"Income concept", v1.ExpenseEditable{ConceptID: income.Data.ID}, http.StatusBadRequest, "the concept must be of kind expense"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			if tt.expense.ConceptID == 0 {
				tt.expense.ConceptID = suite.createTestConcept(t, v1.ConceptEditable{}).Data.ID
			}

			r := test.Request(suite.controller, t, http.MethodPost, "http://example.com/v1/expenses", []v1.ExpenseEditable{tt.expense})
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.ExpenseCreateResponse
			test.DecodeResponse(t, &r, &response)
			require.Len(t, response.Data, 1)
			assert.Equal(t, tt.err, *response.Data[0].Error)
		})
	}

	assert.Len(suite.T(), suite.getReminders(suite.T(), ""), 0, "failed creations must not schedule reminders")
}

func (suite *TestSuiteStandard) TestExpensesCreateKeepsOrder() {
	concept := suite.createTestConcept(suite.T(), v1.ConceptEditable{})

	r := test.Request(suite.controller, suite.T(), http.MethodPost, "http://example.com/v1/expenses", []v1.ExpenseEditable{
		{ConceptID: concept.Data.ID, DueDate: dueIn(20), Note: "first"},
		{ConceptID: concept.Data.ID, DueDate: "invalid"},
		{ConceptID: concept.Data.ID, Note: "third"},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.ExpenseCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data, 3)

	assert.Equal(suite.T(), "first", response.Data[0].Data.Note)
	assert.NotNil(suite.T(), response.Data[0].Data.ReminderAt)
	assert.NotNil(suite.T(), response.Data[1].Error)
	assert.Equal(suite.T(), "third", response.Data[2].Data.Note)
	assert.Nil(suite.T(), response.Data[2].Data.ReminderAt)
}

func (suite *TestSuiteStandard) TestExpensesMonthDefault() {
	tests := []struct {
		name    string
		dueDate string
		month   types.Month
	}{
		{"Month of due date", "2031-07-15", types.NewMonth(2031, time.July)},
		{"Current month", "", types.MonthOf(time.Now())},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			expense := suite.createTestExpense(t, v1.ExpenseEditable{DueDate: tt.dueDate})
			assert.True(t, tt.month.Equal(expense.Data.Month), "expected %s, got %s", tt.month, expense.Data.Month)
		})
	}
}

// TestExpensesReminderLifecycle walks one expense through every transition
// that affects its reminder.
func (suite *TestSuiteStandard) TestExpensesReminderLifecycle() {
	due := dueIn(30)
	expense := suite.createTestExpense(suite.T(), v1.ExpenseEditable{DueDate: due})
	require.NotNil(suite.T(), expense.Data.ReminderAt)
	key := "key=" + reminders.Key(expense.Data.ID)

	// Paid: the reminder is cancelled
	r := test.Request(suite.controller, suite.T(), http.MethodPost, expense.Data.Links.Paid, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ExpenseResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.Paid)
	assert.Nil(suite.T(), response.Data.ReminderAt)
	assert.Len(suite.T(), suite.getReminders(suite.T(), key), 0)

	// Paid twice is a no-op
	r = test.Request(suite.controller, suite.T(), http.MethodPost, expense.Data.Links.Paid, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	assert.Len(suite.T(), suite.getReminders(suite.T(), key), 0)

	// Unpaid: the reminder is scheduled again
	r = test.Request(suite.controller, suite.T(), http.MethodDelete, expense.Data.Links.Paid, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)
	assert.False(suite.T(), response.Data.Paid)
	require.NotNil(suite.T(), response.Data.ReminderAt)
	assert.True(suite.T(), fireTime(suite.T(), due).Equal(*response.Data.ReminderAt))
	assert.Len(suite.T(), suite.getReminders(suite.T(), key), 1)

	// Due date moved: exactly one reminder with the new fire time
	moved := dueIn(45)
	r = test.Request(suite.controller, suite.T(), http.MethodPatch, expense.Data.Links.Self, map[string]any{"dueDate": moved})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data.ReminderAt)
	assert.True(suite.T(), fireTime(suite.T(), moved).Equal(*response.Data.ReminderAt))

	pending := suite.getReminders(suite.T(), key)
	require.Len(suite.T(), pending, 1)
	assert.True(suite.T(), fireTime(suite.T(), moved).Equal(pending[0].FireAt))

	// Amount changed: the body is updated
	r = test.Request(suite.controller, suite.T(), http.MethodPatch, expense.Data.Links.Self, map[string]any{"amount": "52.10"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	pending = suite.getReminders(suite.T(), key)
	require.Len(suite.T(), pending, 1)
	assert.Contains(suite.T(), pending[0].Body, "52")

	// Due date removed: no reminder
	r = test.Request(suite.controller, suite.T(), http.MethodPatch, expense.Data.Links.Self, map[string]any{"dueDate": ""})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Nil(suite.T(), response.Data.ReminderAt)
	assert.Len(suite.T(), suite.getReminders(suite.T(), key), 0)

	// Due date set again, then deleted: the reminder is gone with the expense
	r = test.Request(suite.controller, suite.T(), http.MethodPatch, expense.Data.Links.Self, map[string]any{"dueDate": due})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	assert.Len(suite.T(), suite.getReminders(suite.T(), key), 1)

	r = test.Request(suite.controller, suite.T(), http.MethodDelete, expense.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Len(suite.T(), suite.getReminders(suite.T(), key), 0)
}

func (suite *TestSuiteStandard) TestExpensesUpdateInvalidKeepsReminder() {
	due := dueIn(30)
	expense := suite.createTestExpense(suite.T(), v1.ExpenseEditable{DueDate: due})

	r := test.Request(suite.controller, suite.T(), http.MethodPatch, expense.Data.Links.Self, map[string]any{"dueDate": "2024-13-01"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.ExpenseResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.ErrExpenseDueDateInvalid.Error(), *response.Error)

	got := suite.getExpense(suite.T(), expense.Data.Links.Self)
	assert.Equal(suite.T(), due, got.DueDate)
	require.NotNil(suite.T(), got.ReminderAt)
	assert.True(suite.T(), fireTime(suite.T(), due).Equal(*got.ReminderAt))
}

func (suite *TestSuiteStandard) TestExpensesUpdateTrimWhitespace() {
	expense := suite.createTestExpense(suite.T(), v1.ExpenseEditable{})
	due := dueIn(20)

	r := test.Request(suite.controller, suite.T(), http.MethodPatch, expense.Data.Links.Self, map[string]any{
		"note":    "  padded  ",
		"dueDate": fmt.Sprintf(" %s ", due),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ExpenseResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "padded", response.Data.Note)
	assert.Equal(suite.T(), due, response.Data.DueDate)
	require.NotNil(suite.T(), response.Data.ReminderAt)
	assert.True(suite.T(), fireTime(suite.T(), due).Equal(*response.Data.ReminderAt))

	var list v1.ExpenseListResponse
	r = test.Request(suite.controller, suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/expenses?dueDate=%s", due), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &list)
	assert.Len(suite.T(), list.Data, 1)

	// A blank due date removes the reminder
	r = test.Request(suite.controller, suite.T(), http.MethodPatch, expense.Data.Links.Self, map[string]any{"dueDate": "   "})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	got := suite.getExpense(suite.T(), expense.Data.Links.Self)
	assert.Equal(suite.T(), "", got.DueDate)
	assert.Nil(suite.T(), got.ReminderAt)
	assert.Len(suite.T(), suite.getReminders(suite.T(), "key="+reminders.Key(expense.Data.ID)), 0)
}

func (suite *TestSuiteStandard) TestExpensesReminderUsesConceptName() {
	concept := suite.createTestConcept(suite.T(), v1.ConceptEditable{Name: "Electricity"})
	expense := suite.createTestExpense(suite.T(), v1.ExpenseEditable{ConceptID: concept.Data.ID, DueDate: dueIn(10)})

	pending := suite.getReminders(suite.T(), "key="+reminders.Key(expense.Data.ID))
	require.Len(suite.T(), pending, 1)
	assert.Contains(suite.T(), pending[0].Body, "Electricity")

	// Moving the expense to another concept updates the text
	other := suite.createTestConcept(suite.T(), v1.ConceptEditable{Name: "Water"})
	r := test.Request(suite.controller, suite.T(), http.MethodPatch, expense.Data.Links.Self, map[string]any{"conceptId": other.Data.ID})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	pending = suite.getReminders(suite.T(), "key="+reminders.Key(expense.Data.ID))
	require.Len(suite.T(), pending, 1)
	assert.Contains(suite.T(), pending[0].Body, "Water")
}

func (suite *TestSuiteStandard) TestExpensesGetFilter() {
	rent := suite.createTestConcept(suite.T(), v1.ConceptEditable{Name: "Rent"})
	phone := suite.createTestConcept(suite.T(), v1.ConceptEditable{Name: "Phone"})

	_ = suite.createTestExpense(suite.T(), v1.ExpenseEditable{ConceptID: rent.Data.ID, Month: types.NewMonth(2024, time.April), DueDate: "2024-04-01", Paid: true, Note: "April rent"})
	_ = suite.createTestExpense(suite.T(), v1.ExpenseEditable{ConceptID: rent.Data.ID, Month: types.NewMonth(2024, time.May), DueDate: "2024-05-01", Note: "May rent"})
	_ = suite.createTestExpense(suite.T(), v1.ExpenseEditable{ConceptID: phone.Data.ID, Month: types.NewMonth(2024, time.May), Note: "Prepaid"})

	tests := []struct {
		name      string
		query     string
		len       int
		checkFunc func(t *testing.T, expenses []v1.Expense)
	}{
		{"All, latest month first", "", 3, func(t *testing.T, expenses []v1.Expense) {
			assert.True(t, types.NewMonth(2024, time.May).Equal(expenses[0].Month))
			assert.True(t, types.NewMonth(2024, time.April).Equal(expenses[2].Month))
		}},
		{"Concept", fmt.Sprintf("concept=%d", rent.Data.ID), 2, nil},
		{"Month", "month=2024-05", 2, nil},
		{"Paid", "paid=true", 1, func(t *testing.T, expenses []v1.Expense) {
			assert.Equal(t, "April rent", expenses[0].Note)
		}},
		{"Unpaid", "paid=false", 2, nil},
		{"Due date", "dueDate=2024-05-01", 1, nil},
		{"No due date", "dueDate=", 1, func(t *testing.T, expenses []v1.Expense) {
			assert.Equal(t, "Prepaid", expenses[0].Note)
		}},
		{"Fuzzy note", "note=rent", 2, nil},
		{"Search", "search=prepaid", 1, nil},
		{"Month and unpaid", "month=2024-05&paid=false", 2, nil},
		{"Offset 1, limit 1", "offset=1&limit=1", 1, nil},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var response v1.ExpenseListResponse

			r := test.Request(suite.controller, t, http.MethodGet, fmt.Sprintf("http://example.com/v1/expenses?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)
			test.DecodeResponse(t, &r, &response)

			require.Equal(t, tt.len, len(response.Data))
			if tt.checkFunc != nil {
				tt.checkFunc(t, response.Data)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestExpensesListReminderAt() {
	with := suite.createTestExpense(suite.T(), v1.ExpenseEditable{DueDate: dueIn(30)})
	without := suite.createTestExpense(suite.T(), v1.ExpenseEditable{})

	r := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/expenses", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ExpenseListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data, 2)

	for _, e := range response.Data {
		switch e.ID {
		case with.Data.ID:
			assert.NotNil(suite.T(), e.ReminderAt)
		case without.Data.ID:
			assert.Nil(suite.T(), e.ReminderAt)
		}
	}
}

func (suite *TestSuiteStandard) TestExpensesDBClosed() {
	expense := suite.createTestExpense(suite.T(), v1.ExpenseEditable{DueDate: dueIn(30)})
	suite.CloseDB()

	tests := []struct {
		method string
		url    string
	}{
		{http.MethodGet, "http://example.com/v1/expenses"},
		{http.MethodGet, expense.Data.Links.Self},
		{http.MethodPost, expense.Data.Links.Paid},
		{http.MethodDelete, expense.Data.Links.Self},
	}

	for _, tt := range tests {
		suite.T().Run(tt.method+" "+tt.url, func(t *testing.T) {
			r := test.Request(suite.controller, t, tt.method, tt.url, "")
			test.AssertHTTPStatus(t, &r, http.StatusInternalServerError)
		})
	}

	// Failed mutations leave the reminder untouched
	assert.Len(suite.T(), suite.getReminders(suite.T(), ""), 1)
}

func (suite *TestSuiteStandard) TestExpensesOptions() {
	expense := suite.createTestExpense(suite.T(), v1.ExpenseEditable{})

	tests := []struct {
		name   string
		url    string
		status int
		allow  string
	}{
		{"Collection", "http://example.com/v1/expenses", http.StatusNoContent, "OPTIONS, GET, POST"},
		{"Expense", expense.Data.Links.Self, http.StatusNoContent, "OPTIONS, GET, PATCH, DELETE"},
		{"Paid", expense.Data.Links.Paid, http.StatusNoContent, "OPTIONS, POST, DELETE"},
		{"No Expense with this ID", "http://example.com/v1/expenses/9999", http.StatusNotFound, ""},
		{"Paid, no Expense with this ID", "http://example.com/v1/expenses/9999/paid", http.StatusNotFound, ""},
		{"Not a valid ID", "http://example.com/v1/expenses/-1/paid", http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(suite.controller, t, http.MethodOptions, tt.url, "")
			test.AssertHTTPStatus(t, &r, tt.status)
			assert.Equal(t, tt.allow, r.Header().Get("allow"))
		})
	}
}
