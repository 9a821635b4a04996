package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	v1 "github.com/pocket-ledger/backend/internal/controllers/v1"
	"github.com/pocket-ledger/backend/internal/models"
	"github.com/pocket-ledger/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestIncomesCreate() {
	date := time.Date(2024, time.March, 28, 0, 0, 0, 0, time.UTC)

	income := suite.createTestIncome(suite.T(), v1.IncomeEditable{
		Amount: decimal.NewFromFloat(2500),
		Date:   date,
		Note:   "  March salary ",
	})

	assert.True(suite.T(), income.Data.Amount.Equal(decimal.NewFromFloat(2500)))
	assert.True(suite.T(), income.Data.Date.Equal(date))
	assert.Equal(suite.T(), "March salary", income.Data.Note)
	assert.Equal(suite.T(), fmt.Sprintf("http://example.com/v1/concepts/%d", income.Data.ConceptID), income.Data.Links.Concept)
}

func (suite *TestSuiteStandard) TestIncomesCreateFails() {
	expenseConcept := suite.createTestConcept(suite.T(), v1.ConceptEditable{Kind: models.ConceptKindExpense})

	tests := []struct {
		name   string
		income v1.IncomeEditable
		status int
		err    string
	}{
		{"Concept of wrong kind", v1.IncomeEditable{ConceptID: expenseConcept.Data.ID}, http.StatusBadRequest, "the concept must be of kind income"},
		{"Concept does not exist", v1.IncomeEditable{ConceptID: 9999}, http.StatusNotFound, "there is no concept matching your query"},
		{"Negative amount", v1.IncomeEditable{Amount: decimal.NewFromFloat(-5)}, http.StatusBadRequest, models.ErrAmountNegative.Error()},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			if tt.income.ConceptID == 0 {
				tt.income.ConceptID = suite.createTestConcept(t, v1.ConceptEditable{Kind: models.ConceptKindIncome}).Data.ID
			}

			r := test.Request(suite.controller, t, http.MethodPost, "http://example.com/v1/incomes", []v1.IncomeEditable{tt.income})
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.IncomeCreateResponse
			test.DecodeResponse(t, &r, &response)
			require.Len(t, response.Data, 1)
			assert.Equal(t, tt.err, *response.Data[0].Error)
		})
	}
}

func (suite *TestSuiteStandard) TestIncomesGetFilter() {
	salary := suite.createTestConcept(suite.T(), v1.ConceptEditable{Name: "Salary", Kind: models.ConceptKindIncome})
	gig := suite.createTestConcept(suite.T(), v1.ConceptEditable{Name: "Side gig", Kind: models.ConceptKindIncome})

	_ = suite.createTestIncome(suite.T(), v1.IncomeEditable{ConceptID: salary.Data.ID, Date: time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), Note: "February"})
	_ = suite.createTestIncome(suite.T(), v1.IncomeEditable{ConceptID: salary.Data.ID, Date: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), Note: "March"})
	_ = suite.createTestIncome(suite.T(), v1.IncomeEditable{ConceptID: gig.Data.ID, Date: time.Date(2024, time.March, 31, 23, 0, 0, 0, time.UTC)})

	tests := []struct {
		name      string
		query     string
		len       int
		checkFunc func(t *testing.T, incomes []v1.Income)
	}{
		{"All, most recent first", "", 3, func(t *testing.T, incomes []v1.Income) {
			assert.True(t, incomes[0].Date.After(incomes[1].Date))
			assert.True(t, incomes[1].Date.After(incomes[2].Date))
		}},
		{"Concept", fmt.Sprintf("concept=%d", salary.Data.ID), 2, nil},
		{"March", "month=2024-03", 2, nil},
		{"February", "month=2024-02", 1, func(t *testing.T, incomes []v1.Income) {
			assert.Equal(t, "February", incomes[0].Note)
		}},
		{"Concept and month", fmt.Sprintf("concept=%d&month=2024-03", salary.Data.ID), 1, nil},
		{"January", "month=2024-01", 0, nil},
		{"Empty note", "note=", 1, nil},
		{"Fuzzy note", "note=ar", 2, nil},
		{"Search", "search=march", 1, nil},
		{"Limit 1", "limit=1", 1, nil},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var response v1.IncomeListResponse

			r := test.Request(suite.controller, t, http.MethodGet, fmt.Sprintf("http://example.com/v1/incomes?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)
			test.DecodeResponse(t, &r, &response)

			require.Equal(t, tt.len, len(response.Data))
			if tt.checkFunc != nil {
				tt.checkFunc(t, response.Data)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestIncomesGetInvalidMonth() {
	r := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/incomes?month=2024-13", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestIncomesUpdate() {
	income := suite.createTestIncome(suite.T(), v1.IncomeEditable{Amount: decimal.NewFromFloat(100), Note: "Bonus"})

	r := test.Request(suite.controller, suite.T(), http.MethodPatch, income.Data.Links.Self, map[string]any{
		"amount": "150.5",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.IncomeResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.True(suite.T(), updated.Data.Amount.Equal(decimal.NewFromFloat(150.5)))
	assert.Equal(suite.T(), "Bonus", updated.Data.Note)

	// Moving to an expense concept fails
	expense := suite.createTestConcept(suite.T(), v1.ConceptEditable{Kind: models.ConceptKindExpense})
	r = test.Request(suite.controller, suite.T(), http.MethodPatch, income.Data.Links.Self, map[string]any{
		"conceptId": expense.Data.ID,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestIncomesDelete() {
	income := suite.createTestIncome(suite.T(), v1.IncomeEditable{})

	r := test.Request(suite.controller, suite.T(), http.MethodDelete, income.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.controller, suite.T(), http.MethodGet, income.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestIncomesOptions() {
	income := suite.createTestIncome(suite.T(), v1.IncomeEditable{})

	r := test.Request(suite.controller, suite.T(), http.MethodOptions, income.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))

	r = test.Request(suite.controller, suite.T(), http.MethodOptions, "http://example.com/v1/incomes/9999", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
