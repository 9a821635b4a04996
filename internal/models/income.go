package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Income is money received on a specific date.
type Income struct {
	DefaultModel
	Concept   Concept `json:"-"`
	ConceptID uint
	Amount    decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Date      time.Time
	Note      string
}

func (i *Income) BeforeSave(_ *gorm.DB) error {
	i.Note = strings.TrimSpace(i.Note)
	i.Date = i.Date.In(time.UTC)

	if i.Amount.IsNegative() {
		return ErrAmountNegative
	}

	return nil
}

func (i *Income) BeforeCreate(tx *gorm.DB) error {
	return checkConcept(tx, i.ConceptID, ConceptKindIncome)
}

func (i *Income) BeforeUpdate(tx *gorm.DB) error {
	toSave, ok := updateDest[Income](tx)
	if !ok {
		return nil
	}

	trimColumn(tx, "Note", toSave.Note)

	if tx.Statement.Changed("Amount") && toSave.Amount.IsNegative() {
		return ErrAmountNegative
	}

	if tx.Statement.Changed("ConceptID") {
		return checkConcept(tx, toSave.ConceptID, ConceptKindIncome)
	}

	return nil
}
