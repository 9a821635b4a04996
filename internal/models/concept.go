package models

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// swagger:enum ConceptKind
type ConceptKind string

const (
	ConceptKindIncome  ConceptKind = "income"
	ConceptKindExpense ConceptKind = "expense"
)

// Concept names a recurring source of income or a recurring expense,
// e.g. "Salary" or "Rent".
type Concept struct {
	DefaultModel
	Kind     ConceptKind `gorm:"uniqueIndex:concept_kind_name"`
	Name     string      `gorm:"uniqueIndex:concept_kind_name"`
	Archived bool
}

var (
	ErrConceptNameNotUnique = errors.New("the concept name must be unique for its kind")
	ErrConceptNameEmpty     = errors.New("the concept name must not be empty")
	ErrConceptKindInvalid   = errors.New("the concept kind must be \"income\" or \"expense\"")
	ErrConceptKindMismatch  = errors.New("the concept must be of kind")
	ErrResourceInUse        = errors.New("the resource is still referenced and cannot be deleted")
)

func (k ConceptKind) valid() bool {
	return k == ConceptKindIncome || k == ConceptKindExpense
}

func (c *Concept) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)

	if c.Name == "" {
		return ErrConceptNameEmpty
	}

	if !c.Kind.valid() {
		return ErrConceptKindInvalid
	}

	return nil
}

// BeforeUpdate verifies that the kind of a concept is only changed
// when nothing references the concept.
func (c *Concept) BeforeUpdate(tx *gorm.DB) error {
	toSave, ok := updateDest[Concept](tx)
	if !ok {
		return nil
	}

	if tx.Statement.Changed("Name") && trimColumn(tx, "Name", toSave.Name) == "" {
		return ErrConceptNameEmpty
	}

	if !tx.Statement.Changed("Kind") || toSave.Kind == c.Kind {
		return nil
	}

	if !toSave.Kind.valid() {
		return ErrConceptKindInvalid
	}

	inUse, err := c.inUse(tx)
	if err != nil {
		return err
	}

	if inUse {
		return ErrResourceInUse
	}

	return nil
}

func (c *Concept) inUse(tx *gorm.DB) (bool, error) {
	var incomes, expenses int64

	err := tx.Session(&gorm.Session{NewDB: true}).Model(&Income{}).Where("concept_id = ?", c.ID).Count(&incomes).Error
	if err != nil {
		return false, err
	}

	err = tx.Session(&gorm.Session{NewDB: true}).Model(&Expense{}).Where("concept_id = ?", c.ID).Count(&expenses).Error
	if err != nil {
		return false, err
	}

	return incomes+expenses > 0, nil
}

// checkConcept verifies that the concept exists and is of the expected kind.
func checkConcept(tx *gorm.DB, id uint, kind ConceptKind) error {
	var concept Concept
	err := tx.Session(&gorm.Session{NewDB: true}).First(&concept, id).Error
	if err != nil {
		return err
	}

	if concept.Kind != kind {
		return fmt.Errorf("%w %s", ErrConceptKindMismatch, kind)
	}

	return nil
}
