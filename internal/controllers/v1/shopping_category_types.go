package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/pocket-ledger/backend/internal/models"
)

type ShoppingCategoryEditable struct {
	Name     string `json:"name" example:"Dairy" default:""`          // Name of the category
	Icon     string `json:"icon" example:"🥛" default:""`              // Icon of the category
	Archived bool   `json:"archived" example:"false" default:"false"` // Is the category archived?
}

// model returns the database resource for the editable fields
func (editable ShoppingCategoryEditable) model() models.ShoppingCategory {
	return models.ShoppingCategory{
		Name:     editable.Name,
		Icon:     editable.Icon,
		Archived: editable.Archived,
	}
}

type ShoppingCategoryLinks struct {
	Self  string `json:"self" example:"https://example.com/api/v1/shopping-categories/2"`      // The category itself
	Items string `json:"items" example:"https://example.com/api/v1/shopping-items?category=2"` // Items in the category
}

// ShoppingCategory is the API v1 representation of a ShoppingCategory.
type ShoppingCategory struct {
	models.DefaultModel
	ShoppingCategoryEditable
	Links ShoppingCategoryLinks `json:"links"`
}

func newShoppingCategory(c *gin.Context, model models.ShoppingCategory) ShoppingCategory {
	url := c.GetString(string(models.DBContextURL))

	return ShoppingCategory{
		DefaultModel: model.DefaultModel,
		ShoppingCategoryEditable: ShoppingCategoryEditable{
			Name:     model.Name,
			Icon:     model.Icon,
			Archived: model.Archived,
		},
		Links: ShoppingCategoryLinks{
			Self:  fmt.Sprintf("%s/v1/shopping-categories/%d", url, model.ID),
			Items: fmt.Sprintf("%s/v1/shopping-items?category=%d", url, model.ID),
		},
	}
}

type ShoppingCategoryListResponse struct {
	Data       []ShoppingCategory `json:"data"`                                           // List of shopping categories
	Error      *string            `json:"error" example:"the limit parameter is invalid"` // The error, if any occurred
	Pagination *Pagination        `json:"pagination"`                                     // Pagination information
}

type ShoppingCategoryCreateResponse struct {
	Error *string                    `json:"error" example:"the shopping category name must be unique"` // The error, if any occurred
	Data  []ShoppingCategoryResponse `json:"data"`                                                      // List of created shopping categories
}

func (r *ShoppingCategoryCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, ShoppingCategoryResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type ShoppingCategoryResponse struct {
	Data  *ShoppingCategory `json:"data"`                                                              // Data for the shopping category
	Error *string           `json:"error" example:"there is no shopping category matching your query"` // The error, if any occurred for this shopping category
}

type ShoppingCategoryQueryFilter struct {
	Name     string `form:"name" filterField:"false"`   // Fuzzy filter for the name
	Archived bool   `form:"archived"`                   // Is the category archived?
	Search   string `form:"search" filterField:"false"` // By string in name
	Offset   uint   `form:"offset" filterField:"false"` // The offset of the first category returned. Defaults to 0.
	Limit    int    `form:"limit" filterField:"false"`  // Maximum number of categories to return. Defaults to 50.
}

func (f ShoppingCategoryQueryFilter) model() models.ShoppingCategory {
	return models.ShoppingCategory{
		Archived: f.Archived,
	}
}
