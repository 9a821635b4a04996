package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocket-ledger/backend/internal/httputil"
	"github.com/pocket-ledger/backend/internal/models"
)

// RegisterRoutes registers all v1 routes with the RouterGroup that is passed.
func (co Controller) RegisterRoutes(r *gin.RouterGroup) {
	co.RegisterRootRoutes(r.Group(""))
	co.RegisterConceptRoutes(r.Group("/concepts"))
	co.RegisterIncomeRoutes(r.Group("/incomes"))
	co.RegisterExpenseRoutes(r.Group("/expenses"))
	co.RegisterShoppingCategoryRoutes(r.Group("/shopping-categories"))
	co.RegisterShoppingItemRoutes(r.Group("/shopping-items"))
	co.RegisterReminderRoutes(r.Group("/reminders"))
}

func (co Controller) RegisterRootRoutes(r *gin.RouterGroup) {
	r.GET("", Get)
	r.DELETE("", co.Cleanup)
	r.OPTIONS("", Options)
}

type Response struct {
	Links Links `json:"links"` // Links for the v1 API
}

type Links struct {
	Concepts           string `json:"concepts" example:"https://example.com/api/v1/concepts"`                      // URL of Concept collection endpoint
	Incomes            string `json:"incomes" example:"https://example.com/api/v1/incomes"`                        // URL of Income collection endpoint
	Expenses           string `json:"expenses" example:"https://example.com/api/v1/expenses"`                      // URL of Expense collection endpoint
	ShoppingCategories string `json:"shoppingCategories" example:"https://example.com/api/v1/shopping-categories"` // URL of Shopping Category collection endpoint
	ShoppingItems      string `json:"shoppingItems" example:"https://example.com/api/v1/shopping-items"`           // URL of Shopping Item collection endpoint
	Reminders          string `json:"reminders" example:"https://example.com/api/v1/reminders"`                    // URL of pending Reminder list endpoint
}

// Get returns the link list for v1
//
//	@Summary		v1 API
//	@Description	Returns general information about the v1 API
//	@Tags			v1
//	@Success		200	{object}	Response
//	@Router			/v1 [get]
func Get(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, Response{
		Links: Links{
			Concepts:           url + "/v1/concepts",
			Incomes:            url + "/v1/incomes",
			Expenses:           url + "/v1/expenses",
			ShoppingCategories: url + "/v1/shopping-categories",
			ShoppingItems:      url + "/v1/shopping-items",
			Reminders:          url + "/v1/reminders",
		},
	})
}

// Options returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			v1
//	@Success		204
//	@Router			/v1 [options]
func Options(c *gin.Context) {
	httputil.OptionsGetDelete(c)
}
