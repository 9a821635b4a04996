package v1_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	v1 "github.com/pocket-ledger/backend/internal/controllers/v1"
	"github.com/pocket-ledger/backend/internal/models"
	"github.com/pocket-ledger/backend/test"
	"github.com/shopspring/decimal"
)

// createExpected defaults the expected status of creation requests to 201 Created.
func createExpected(expectedStatus []int) []int {
	if len(expectedStatus) == 0 {
		return []int{http.StatusCreated}
	}
	return expectedStatus
}

func (suite *TestSuiteStandard) createTestConcept(t *testing.T, c v1.ConceptEditable, expectedStatus ...int) v1.ConceptResponse {
	if c.Name == "" {
		c.Name = uuid.NewString()
	}

	if c.Kind == "" {
		c.Kind = models.ConceptKindExpense
	}

	r := test.Request(suite.controller, t, http.MethodPost, "http://example.com/v1/concepts", []v1.ConceptEditable{c})
	test.AssertHTTPStatus(t, &r, createExpected(expectedStatus)...)

	var concept v1.ConceptCreateResponse
	test.DecodeResponse(t, &r, &concept)

	if r.Code == http.StatusCreated {
		return concept.Data[0]
	}

	return v1.ConceptResponse{}
}

func (suite *TestSuiteStandard) createTestIncome(t *testing.T, i v1.IncomeEditable, expectedStatus ...int) v1.IncomeResponse {
	if i.ConceptID == 0 {
		i.ConceptID = suite.createTestConcept(t, v1.ConceptEditable{Kind: models.ConceptKindIncome}).Data.ID
	}

	r := test.Request(suite.controller, t, http.MethodPost, "http://example.com/v1/incomes", []v1.IncomeEditable{i})
	test.AssertHTTPStatus(t, &r, createExpected(expectedStatus)...)

	var income v1.IncomeCreateResponse
	test.DecodeResponse(t, &r, &income)

	if r.Code == http.StatusCreated {
		return income.Data[0]
	}

	return v1.IncomeResponse{}
}

func (suite *TestSuiteStandard) createTestExpense(t *testing.T, e v1.ExpenseEditable, expectedStatus ...int) v1.ExpenseResponse {
	if e.ConceptID == 0 {
		e.ConceptID = suite.createTestConcept(t, v1.ConceptEditable{}).Data.ID
	}

	if e.Amount.IsZero() {
		e.Amount = decimal.NewFromFloat(39.99)
	}

	r := test.Request(suite.controller, t, http.MethodPost, "http://example.com/v1/expenses", []v1.ExpenseEditable{e})
	test.AssertHTTPStatus(t, &r, createExpected(expectedStatus)...)

	var expense v1.ExpenseCreateResponse
	test.DecodeResponse(t, &r, &expense)

	if r.Code == http.StatusCreated {
		return expense.Data[0]
	}

	return v1.ExpenseResponse{}
}

func (suite *TestSuiteStandard) createTestShoppingCategory(t *testing.T, c v1.ShoppingCategoryEditable, expectedStatus ...int) v1.ShoppingCategoryResponse {
	if c.Name == "" {
		c.Name = uuid.NewString()
	}

	r := test.Request(suite.controller, t, http.MethodPost, "http://example.com/v1/shopping-categories", []v1.ShoppingCategoryEditable{c})
	test.AssertHTTPStatus(t, &r, createExpected(expectedStatus)...)

	var category v1.ShoppingCategoryCreateResponse
	test.DecodeResponse(t, &r, &category)

	if r.Code == http.StatusCreated {
		return category.Data[0]
	}

	return v1.ShoppingCategoryResponse{}
}

func (suite *TestSuiteStandard) createTestShoppingItem(t *testing.T, i v1.ShoppingItemEditable, expectedStatus ...int) v1.ShoppingItemResponse {
	if i.Name == "" {
		i.Name = uuid.NewString()
	}

	// Seeded default category "Food"
	if i.CategoryID == 0 {
		i.CategoryID = 1
	}

	r := test.Request(suite.controller, t, http.MethodPost, "http://example.com/v1/shopping-items", []v1.ShoppingItemEditable{i})
	test.AssertHTTPStatus(t, &r, createExpected(expectedStatus)...)

	var item v1.ShoppingItemCreateResponse
	test.DecodeResponse(t, &r, &item)

	if r.Code == http.StatusCreated {
		return item.Data[0]
	}

	return v1.ShoppingItemResponse{}
}

// getReminders lists the pending reminders, optionally filtered by a key pattern.
func (suite *TestSuiteStandard) getReminders(t *testing.T, query string) []v1.Reminder {
	r := test.Request(suite.controller, t, http.MethodGet, "http://example.com/v1/reminders?"+query, "")
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var response v1.ReminderListResponse
	test.DecodeResponse(t, &r, &response)

	return response.Data
}
