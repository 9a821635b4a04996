package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pocket-ledger/backend/internal/models"
	"github.com/shopspring/decimal"
)

type ShoppingItemEditable struct {
	Name       string          `json:"name" example:"Oat milk" default:""`                                                       // Name of the item
	CategoryID uint            `json:"categoryId" example:"2"`                                                                   // ID of the shopping category
	Purchased  bool            `json:"purchased" example:"false" default:"false"`                                                // Has the item been purchased?
	Price      decimal.Decimal `json:"price" example:"1.89" minimum:"0" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // Price of the item
	Note       string          `json:"note" example:"The one without sugar" default:""`                                          // A note for the item
}

// model returns the database resource for the editable fields
func (editable ShoppingItemEditable) model() models.ShoppingItem {
	return models.ShoppingItem{
		Name:       editable.Name,
		CategoryID: editable.CategoryID,
		Purchased:  editable.Purchased,
		Price:      editable.Price,
		Note:       editable.Note,
	}
}

type ShoppingItemLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/shopping-items/31"`         // The item itself
	Category string `json:"category" example:"https://example.com/api/v1/shopping-categories/2"` // The category of the item
}

// ShoppingItem is the API v1 representation of a ShoppingItem.
type ShoppingItem struct {
	models.DefaultModel
	ShoppingItemEditable
	PurchasedAt *time.Time        `json:"purchasedAt" example:"2024-05-03T17:21:09Z"` // When the item was purchased. null if it has not been purchased
	Links       ShoppingItemLinks `json:"links"`
}

func newShoppingItem(c *gin.Context, model models.ShoppingItem) ShoppingItem {
	url := c.GetString(string(models.DBContextURL))

	return ShoppingItem{
		DefaultModel: model.DefaultModel,
		ShoppingItemEditable: ShoppingItemEditable{
			Name:       model.Name,
			CategoryID: model.CategoryID,
			Purchased:  model.Purchased,
			Price:      model.Price,
			Note:       model.Note,
		},
		PurchasedAt: model.PurchasedAt,
		Links: ShoppingItemLinks{
			Self:     fmt.Sprintf("%s/v1/shopping-items/%d", url, model.ID),
			Category: fmt.Sprintf("%s/v1/shopping-categories/%d", url, model.CategoryID),
		},
	}
}

type ShoppingItemListResponse struct {
	Data       []ShoppingItem `json:"data"`                                           // List of shopping items
	Error      *string        `json:"error" example:"the limit parameter is invalid"` // The error, if any occurred
	Pagination *Pagination    `json:"pagination"`                                     // Pagination information
}

type ShoppingItemCreateResponse struct {
	Error *string                `json:"error" example:"the shopping item name must not be empty"` // The error, if any occurred
	Data  []ShoppingItemResponse `json:"data"`                                                     // List of created shopping items
}

func (r *ShoppingItemCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, ShoppingItemResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type ShoppingItemResponse struct {
	Data  *ShoppingItem `json:"data"`                                                          // Data for the shopping item
	Error *string       `json:"error" example:"there is no shopping item matching your query"` // The error, if any occurred for this shopping item
}

type ShoppingItemQueryFilter struct {
	CategoryID uint   `form:"category"`                   // By category ID
	Purchased  bool   `form:"purchased"`                  // Has the item been purchased?
	Name       string `form:"name" filterField:"false"`   // Fuzzy filter for the name
	Note       string `form:"note" filterField:"false"`   // Fuzzy filter for the note
	Search     string `form:"search" filterField:"false"` // By string in name or note
	Offset     uint   `form:"offset" filterField:"false"` // The offset of the first item returned. Defaults to 0.
	Limit      int    `form:"limit" filterField:"false"`  // Maximum number of items to return. Defaults to 50.
}

func (f ShoppingItemQueryFilter) model() models.ShoppingItem {
	return models.ShoppingItem{
		CategoryID: f.CategoryID,
		Purchased:  f.Purchased,
	}
}

// PurchasedCleanupQuery selects the purchased items to delete.
type PurchasedCleanupQuery struct {
	Days int `form:"days"` // Purchases older than this many days are deleted. Defaults to 30.
}
