package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/pocket-ledger/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense is a monthly expense, optionally with a due date.
//
// Unpaid expenses with a due date carry a payment reminder, see the
// reminders package.
type Expense struct {
	DefaultModel
	Concept   Concept `json:"-"`
	ConceptID uint
	Month     types.Month
	Amount    decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	DueDate   string          // Empty or in YYYY-MM-DD format
	Paid      bool
	Note      string
}

var ErrExpenseDueDateInvalid = fmt.Errorf("the due date is invalid: %w", types.ErrDateInvalid)

func (e *Expense) BeforeSave(_ *gorm.DB) error {
	e.Note = strings.TrimSpace(e.Note)
	e.DueDate = strings.TrimSpace(e.DueDate)

	if !types.ValidDate(e.DueDate) {
		return ErrExpenseDueDateInvalid
	}

	if e.Amount.IsNegative() {
		return ErrAmountNegative
	}

	return nil
}

// BeforeCreate books expenses without a month in the month of their
// due date, or the current month if there is none.
func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.Month.IsZero() {
		e.Month = types.MonthOf(time.Now())
		if due, err := types.ParseDate(e.DueDate, time.UTC); err == nil {
			e.Month = types.MonthOf(due)
		}
	}

	return checkConcept(tx, e.ConceptID, ConceptKindExpense)
}

func (e *Expense) BeforeUpdate(tx *gorm.DB) error {
	toSave, ok := updateDest[Expense](tx)
	if !ok {
		return nil
	}

	// Trimming writes to the stored record, so the change is detected first
	dueDateChanged := tx.Statement.Changed("DueDate")
	toSave.Note = trimColumn(tx, "Note", toSave.Note)
	toSave.DueDate = trimColumn(tx, "DueDate", toSave.DueDate)

	if dueDateChanged && !types.ValidDate(toSave.DueDate) {
		return ErrExpenseDueDateInvalid
	}

	if tx.Statement.Changed("Amount") && toSave.Amount.IsNegative() {
		return ErrAmountNegative
	}

	if tx.Statement.Changed("ConceptID") {
		return checkConcept(tx, toSave.ConceptID, ConceptKindExpense)
	}

	return nil
}

// ReminderCandidate is an unpaid expense with a due date, joined with the
// name of its concept.
type ReminderCandidate struct {
	ExpenseID   uint
	ConceptID   uint
	ConceptName string
	Amount      decimal.Decimal
	DueDate     string
}

// PendingReminders returns all unpaid expenses that have a due date.
func PendingReminders(db *gorm.DB) ([]ReminderCandidate, error) {
	var candidates []ReminderCandidate

	err := db.Model(&Expense{}).
		Select("expenses.id AS expense_id, expenses.concept_id, concepts.name AS concept_name, expenses.amount, expenses.due_date").
		Joins("JOIN concepts ON concepts.id = expenses.concept_id").
		Where("expenses.paid = ? AND expenses.due_date IS NOT NULL AND expenses.due_date != ''", false).
		Order("expenses.id ASC").
		Find(&candidates).Error
	if err != nil {
		return nil, fmt.Errorf("listing unpaid expenses with due date failed: %w", err)
	}

	return candidates, nil
}

// ConceptName returns the name of the concept with the given ID.
func ConceptName(db *gorm.DB, id uint) (string, error) {
	var concept Concept

	err := db.First(&concept, id).Error
	if err != nil {
		return "", err
	}

	return concept.Name, nil
}
