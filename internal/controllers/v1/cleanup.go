package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocket-ledger/backend/internal/models"
	"gorm.io/gorm/clause"
)

//	@Summary		Delete everything
//	@Description	Permanently deletes all resources and cancels all pending reminders. The default shopping categories are restored.
//	@Tags			v1
//	@Success		204
//	@Failure		400		{object}	httpError
//	@Failure		500		{object}	httpError
//	@Param			confirm	query		string	false	"Confirmation to delete all resources. Must have the value 'yes-please-delete-everything'"
//	@Router			/v1 [delete]
func (co Controller) Cleanup(c *gin.Context) {
	var params struct {
		Confirm string `form:"confirm"`
	}

	err := c.Bind(&params)
	if err != nil || params.Confirm != "yes-please-delete-everything" {
		c.JSON(http.StatusBadRequest, httpError{
			Error: errCleanupConfirmation.Error(),
		})
		return
	}

	// Foreign keys are checked during cleanup,
	// add new models *before* any of the models
	// they reference
	resources := []any{
		models.ShoppingItem{},
		models.ShoppingCategory{},
		models.Expense{},
		models.Income{},
		models.Concept{},
	}

	// Use a transaction so that we can roll back if errors happen
	tx := models.DB.WithContext(c).Begin()

	for _, model := range resources {
		err := tx.Unscoped().Where("true").Delete(&model).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, httpError{
				Error: err.Error(),
			})
			tx.Rollback()
			return
		}
	}

	categories := models.DefaultShoppingCategories()
	err = tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&categories).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpError{
			Error: err.Error(),
		})
		tx.Rollback()
		return
	}

	tx.Commit()

	co.Reminders.CancelAll(c.Request.Context())
	c.JSON(http.StatusNoContent, nil)
}
