package v1_test

import (
	"net/http"
	"strings"
	"testing"

	v1 "github.com/pocket-ledger/backend/internal/controllers/v1"
	"github.com/pocket-ledger/backend/internal/models"
	"github.com/pocket-ledger/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCleanup() {
	concept := suite.createTestConcept(suite.T(), v1.ConceptEditable{Kind: models.ConceptKindIncome})
	_ = suite.createTestIncome(suite.T(), v1.IncomeEditable{ConceptID: concept.Data.ID})
	_ = suite.createTestExpense(suite.T(), v1.ExpenseEditable{DueDate: dueIn(30)})
	_ = suite.createTestShoppingCategory(suite.T(), v1.ShoppingCategoryEditable{})
	_ = suite.createTestShoppingItem(suite.T(), v1.ShoppingItemEditable{})

	// Renamed default categories are restored by the cleanup
	r := test.Request(suite.controller, suite.T(), http.MethodPatch, "http://example.com/v1/shopping-categories/1", map[string]any{"name": "Groceries"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	assert.Len(suite.T(), suite.getReminders(suite.T(), ""), 1)

	r = test.Request(suite.controller, suite.T(), http.MethodDelete, "http://example.com/v1?confirm=yes-please-delete-everything", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	tests := []struct {
		name string
		url  string
		len  int
	}{
		{"Concepts", "http://example.com/v1/concepts", 0},
		{"Incomes", "http://example.com/v1/incomes", 0},
		{"Expenses", "http://example.com/v1/expenses", 0},
		{"Shopping items", "http://example.com/v1/shopping-items", 0},
		{"Shopping categories", "http://example.com/v1/shopping-categories", len(models.DefaultShoppingCategories())},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(suite.controller, t, http.MethodGet, tt.url, "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response struct {
				Data []any `json:"data"`
			}
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}

	var food models.ShoppingCategory
	assert.Nil(suite.T(), models.DB.First(&food, 1).Error)
	assert.Equal(suite.T(), "Food", food.Name)

	assert.Len(suite.T(), suite.getReminders(suite.T(), ""), 0, "reminders must be cancelled with the data they belong to")
}

func (suite *TestSuiteStandard) TestCleanupFails() {
	_ = suite.createTestExpense(suite.T(), v1.ExpenseEditable{DueDate: dueIn(30)})

	tests := []struct {
		name  string
		query string
	}{
		{"No confirmation", ""},
		{"Wrong confirmation", "?confirm=yes-please-cancel-everything"},
		{"Confirmation in wrong case", "?confirm=" + strings.ToUpper("yes-please-delete-everything")},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(suite.controller, t, http.MethodDelete, "http://example.com/v1"+tt.query, "")
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}

	r := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/expenses", "")
	var response v1.ExpenseListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Len(suite.T(), response.Data, 1)
	assert.Len(suite.T(), suite.getReminders(suite.T(), ""), 1)
}

func (suite *TestSuiteStandard) TestCleanupDBClosed() {
	_ = suite.createTestExpense(suite.T(), v1.ExpenseEditable{DueDate: dueIn(30)})
	suite.CloseDB()

	r := test.Request(suite.controller, suite.T(), http.MethodDelete, "http://example.com/v1?confirm=yes-please-delete-everything", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)

	assert.Len(suite.T(), suite.getReminders(suite.T(), ""), 1, "reminders must stay when the cleanup fails")
}
