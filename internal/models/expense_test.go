package models_test

import (
	"time"

	"github.com/pocket-ledger/backend/internal/models"
	"github.com/pocket-ledger/backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestExpenseTrimWhitespace() {
	concept := suite.createTestConcept(models.Concept{})
	expense := suite.createTestExpense(models.Expense{
		ConceptID: concept.ID,
		DueDate:   " 2030-04-10 ",
		Note:      "  paid by card\t",
	})

	assert.Equal(suite.T(), "2030-04-10", expense.DueDate)
	assert.Equal(suite.T(), "paid by card", expense.Note)
}

func (suite *TestSuiteStandard) TestExpenseCreateFails() {
	expenseConcept := suite.createTestConcept(models.Concept{Kind: models.ConceptKindExpense})
	incomeConcept := suite.createTestConcept(models.Concept{Kind: models.ConceptKindIncome})

	tests := []struct {
		name    string
		expense models.Expense
		err     error
	}{
		{"Invalid due date", models.Expense{ConceptID: expenseConcept.ID, DueDate: "31.12.2030"}, models.ErrExpenseDueDateInvalid},
		{"Negative amount", models.Expense{ConceptID: expenseConcept.ID, Amount: decimal.NewFromFloat(-3)}, models.ErrAmountNegative},
		{"Concept of wrong kind", models.Expense{ConceptID: incomeConcept.ID}, models.ErrConceptKindMismatch},
		{"Concept does not exist", models.Expense{ConceptID: 999}, models.ErrResourceNotFound},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			err := models.DB.Create(&tt.expense).Error
			assert.ErrorIs(suite.T(), err, tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestExpenseUpdateDueDateInvalid() {
	concept := suite.createTestConcept(models.Concept{})
	expense := suite.createTestExpense(models.Expense{ConceptID: concept.ID})

	err := models.DB.Model(&expense).Select("DueDate").Updates(models.Expense{DueDate: "tomorrow"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrExpenseDueDateInvalid)
}

func (suite *TestSuiteStandard) TestExpenseUpdateTrimWhitespace() {
	concept := suite.createTestConcept(models.Concept{})
	expense := suite.createTestExpense(models.Expense{ConceptID: concept.ID})

	err := models.DB.Model(&expense).Select("DueDate", "Note").Updates(models.Expense{DueDate: " 2030-11-28 ", Note: "  padded  "}).Error
	require.Nil(suite.T(), err)

	var stored models.Expense
	require.Nil(suite.T(), models.DB.First(&stored, expense.ID).Error)
	assert.Equal(suite.T(), "2030-11-28", stored.DueDate)
	assert.Equal(suite.T(), "padded", stored.Note)

	err = models.DB.Model(&stored).Select("DueDate").Updates(models.Expense{DueDate: "  "}).Error
	require.Nil(suite.T(), err)

	require.Nil(suite.T(), models.DB.First(&stored, expense.ID).Error)
	assert.Equal(suite.T(), "", stored.DueDate)

	candidates, err := models.PendingReminders(models.DB)
	require.Nil(suite.T(), err)
	assert.Len(suite.T(), candidates, 0)
}

func (suite *TestSuiteStandard) TestExpenseUpdatePaddedInvalidDueDate() {
	concept := suite.createTestConcept(models.Concept{})
	expense := suite.createTestExpense(models.Expense{ConceptID: concept.ID, DueDate: "2030-01-01"})

	err := models.DB.Model(&expense).Select("DueDate").Updates(models.Expense{DueDate: " 2030-02-30 "}).Error
	assert.ErrorIs(suite.T(), err, models.ErrExpenseDueDateInvalid)
}

func (suite *TestSuiteStandard) TestExpenseMonthRoundTrip() {
	concept := suite.createTestConcept(models.Concept{})
	expense := suite.createTestExpense(models.Expense{
		ConceptID: concept.ID,
		Month:     types.NewMonth(2024, time.March),
		Amount:    decimal.NewFromFloat(99.95),
	})

	var reloaded models.Expense
	require.Nil(suite.T(), models.DB.First(&reloaded, expense.ID).Error)

	assert.True(suite.T(), types.NewMonth(2024, time.March).Equal(reloaded.Month))
	assert.True(suite.T(), decimal.NewFromFloat(99.95).Equal(reloaded.Amount))
}

func (suite *TestSuiteStandard) TestPendingReminders() {
	rent := suite.createTestConcept(models.Concept{Name: "Rent"})
	power := suite.createTestConcept(models.Concept{Name: "Power"})

	unpaid := suite.createTestExpense(models.Expense{ConceptID: rent.ID, DueDate: "2030-01-05", Amount: decimal.NewFromFloat(800)})
	_ = suite.createTestExpense(models.Expense{ConceptID: power.ID, DueDate: "2030-01-10", Paid: true})
	_ = suite.createTestExpense(models.Expense{ConceptID: power.ID})

	candidates, err := models.PendingReminders(models.DB)
	require.Nil(suite.T(), err)
	require.Len(suite.T(), candidates, 1)

	assert.Equal(suite.T(), unpaid.ID, candidates[0].ExpenseID)
	assert.Equal(suite.T(), rent.ID, candidates[0].ConceptID)
	assert.Equal(suite.T(), "Rent", candidates[0].ConceptName)
	assert.Equal(suite.T(), "2030-01-05", candidates[0].DueDate)
	assert.True(suite.T(), decimal.NewFromFloat(800).Equal(candidates[0].Amount))
}

func (suite *TestSuiteStandard) TestPendingRemindersDBClosed() {
	suite.CloseDB()

	_, err := models.PendingReminders(models.DB)
	assert.ErrorIs(suite.T(), err, models.ErrGeneral)
}

func (suite *TestSuiteStandard) TestConceptName() {
	concept := suite.createTestConcept(models.Concept{Name: "Phone"})

	name, err := models.ConceptName(models.DB, concept.ID)
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), "Phone", name)

	_, err = models.ConceptName(models.DB, concept.ID+100)
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestIncomeValidation() {
	incomeConcept := suite.createTestConcept(models.Concept{Kind: models.ConceptKindIncome})
	expenseConcept := suite.createTestConcept(models.Concept{Kind: models.ConceptKindExpense})

	err := models.DB.Create(&models.Income{ConceptID: expenseConcept.ID}).Error
	assert.ErrorIs(suite.T(), err, models.ErrConceptKindMismatch)

	income := suite.createTestIncome(models.Income{ConceptID: incomeConcept.ID, Note: " bonus ", Amount: decimal.NewFromFloat(10)})
	assert.Equal(suite.T(), "bonus", income.Note)

	err = models.DB.Model(&income).Select("Amount").Updates(models.Income{Amount: decimal.NewFromFloat(-1)}).Error
	assert.ErrorIs(suite.T(), err, models.ErrAmountNegative)
}
