package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ShoppingCategory groups shopping items, e.g. "Dairy".
type ShoppingCategory struct {
	DefaultModel
	Name     string `gorm:"uniqueIndex"`
	Icon     string
	Archived bool
}

// ShoppingItem is an entry on the shopping list.
type ShoppingItem struct {
	DefaultModel
	Name        string
	Category    ShoppingCategory `json:"-"`
	CategoryID  uint
	Purchased   bool
	Price       decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	PurchasedAt *time.Time
	Note        string
}

var (
	ErrShoppingCategoryNameNotUnique = errors.New("the shopping category name must be unique")
	ErrShoppingCategoryNameEmpty     = errors.New("the shopping category name must not be empty")
	ErrShoppingItemNameEmpty         = errors.New("the shopping item name must not be empty")
)

// DefaultShoppingCategories returns the categories every new database starts with.
func DefaultShoppingCategories() []ShoppingCategory {
	defaults := []struct {
		name string
		icon string
	}{
		{"Food", "🍎"},
		{"Dairy", "🥛"},
		{"Meat", "🥩"},
		{"Bakery", "🍞"},
		{"Beverages", "🥤"},
		{"Cleaning", "🧹"},
		{"Household", "🏠"},
		{"Hygiene", "🧼"},
		{"Pharmacy", "💊"},
		{"Other", "📦"},
	}

	categories := make([]ShoppingCategory, 0, len(defaults))
	for i, d := range defaults {
		categories = append(categories, ShoppingCategory{
			DefaultModel: DefaultModel{ID: uint(i + 1)},
			Name:         d.name,
			Icon:         d.icon,
		})
	}

	return categories
}

func (c *ShoppingCategory) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Icon = strings.TrimSpace(c.Icon)

	if c.Name == "" {
		return ErrShoppingCategoryNameEmpty
	}

	return nil
}

func (c *ShoppingCategory) BeforeUpdate(tx *gorm.DB) error {
	toSave, ok := updateDest[ShoppingCategory](tx)
	if !ok {
		return nil
	}

	trimColumn(tx, "Icon", toSave.Icon)
	if tx.Statement.Changed("Name") && trimColumn(tx, "Name", toSave.Name) == "" {
		return ErrShoppingCategoryNameEmpty
	}

	return nil
}

// BeforeSave keeps the purchase date consistent with the purchase state.
func (i *ShoppingItem) BeforeSave(_ *gorm.DB) error {
	i.Name = strings.TrimSpace(i.Name)
	i.Note = strings.TrimSpace(i.Note)

	if i.Name == "" {
		return ErrShoppingItemNameEmpty
	}

	if i.Price.IsNegative() {
		return ErrAmountNegative
	}

	if i.Purchased && i.PurchasedAt == nil {
		now := time.Now().In(time.UTC)
		i.PurchasedAt = &now
	} else if i.PurchasedAt != nil {
		utc := i.PurchasedAt.In(time.UTC)
		i.PurchasedAt = &utc
	}

	if !i.Purchased {
		i.PurchasedAt = nil
	}

	return nil
}

func (i *ShoppingItem) BeforeCreate(tx *gorm.DB) error {
	return i.checkIntegrity(tx, i.CategoryID)
}

func (i *ShoppingItem) BeforeUpdate(tx *gorm.DB) error {
	toSave, ok := updateDest[ShoppingItem](tx)
	if !ok {
		return nil
	}

	trimColumn(tx, "Note", toSave.Note)
	if tx.Statement.Changed("Name") && trimColumn(tx, "Name", toSave.Name) == "" {
		return ErrShoppingItemNameEmpty
	}

	if tx.Statement.Changed("Price") && toSave.Price.IsNegative() {
		return ErrAmountNegative
	}

	if tx.Statement.Changed("CategoryID") {
		return i.checkIntegrity(tx, toSave.CategoryID)
	}

	return nil
}

func (i *ShoppingItem) checkIntegrity(tx *gorm.DB, categoryID uint) error {
	return tx.Session(&gorm.Session{NewDB: true}).First(&ShoppingCategory{}, categoryID).Error
}

// CleanupPurchased deletes all items that were purchased before the cut-off
// and returns how many were deleted.
func CleanupPurchased(db *gorm.DB, before time.Time) (int64, error) {
	result := db.Where("purchased AND purchased_at < ?", before.In(time.UTC)).Delete(&ShoppingItem{})
	if result.Error != nil {
		return 0, fmt.Errorf("cleaning up purchased items failed: %w", result.Error)
	}

	return result.RowsAffected, nil
}
