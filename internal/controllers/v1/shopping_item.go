package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pocket-ledger/backend/internal/httputil"
	"github.com/pocket-ledger/backend/internal/models"
	"golang.org/x/exp/slices"
)

// defaultCleanupDays is the age in days of purchases deleted by the cleanup.
const defaultCleanupDays = 30

// RegisterShoppingItemRoutes registers the routes for shopping items with
// the RouterGroup that is passed.
func (co Controller) RegisterShoppingItemRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsShoppingItemList)
		r.GET("", co.GetShoppingItems)
		r.POST("", co.CreateShoppingItems)
		r.OPTIONS("/purchased", co.OptionsShoppingItemPurchased)
		r.DELETE("/purchased", co.CleanupPurchasedShoppingItems)
	}

	// Shopping item with ID
	{
		r.OPTIONS("/:id", co.OptionsShoppingItemDetail)
		r.GET("/:id", co.GetShoppingItem)
		r.PATCH("/:id", co.UpdateShoppingItem)
		r.DELETE("/:id", co.DeleteShoppingItem)
	}
}

//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Shopping Items
//	@Success		204
//	@Router			/v1/shopping-items [options]
func (co Controller) OptionsShoppingItemList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Shopping Items
//	@Success		204
//	@Router			/v1/shopping-items/purchased [options]
func (co Controller) OptionsShoppingItemPurchased(c *gin.Context) {
	httputil.OptionsDelete(c)
}

//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Shopping Items
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		uint	true	"ID formatted as string"
//	@Router			/v1/shopping-items/{id} [options]
func (co Controller) OptionsShoppingItemDetail(c *gin.Context) {
	if _, ok := getShoppingItem(c); !ok {
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

func getShoppingItem(c *gin.Context) (item models.ShoppingItem, ok bool) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.WithContext(c).First(&item, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	return item, true
}

//	@Summary		Create shopping items
//	@Description	Creates new shopping items
//	@Tags			Shopping Items
//	@Produce		json
//	@Success		201		{object}	ShoppingItemCreateResponse
//	@Failure		400		{object}	ShoppingItemCreateResponse
//	@Failure		404		{object}	ShoppingItemCreateResponse
//	@Failure		500		{object}	ShoppingItemCreateResponse
//	@Param			items	body		[]ShoppingItemEditable	true	"Shopping items"
//	@Router			/v1/shopping-items [post]
func (co Controller) CreateShoppingItems(c *gin.Context) {
	var editables []ShoppingItemEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ShoppingItemCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := ShoppingItemCreateResponse{}

	for _, editable := range editables {
		item := editable.model()
		err = models.DB.WithContext(c).Create(&item).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newShoppingItem(c, item)
		r.Data = append(r.Data, ShoppingItemResponse{Data: &data})
	}

	c.JSON(status, r)
}

//	@Summary		List shopping items
//	@Description	Returns a list of shopping items. Open items come first.
//	@Tags			Shopping Items
//	@Produce		json
//	@Success		200			{object}	ShoppingItemListResponse
//	@Failure		400			{object}	ShoppingItemListResponse
//	@Failure		500			{object}	ShoppingItemListResponse
//	@Router			/v1/shopping-items [get]
//	@Param			category	query	uint	false	"Filter by category ID"
//	@Param			purchased	query	bool	false	"Has the item been purchased?"
//	@Param			name		query	string	false	"Filter by name"
//	@Param			note		query	string	false	"Filter by note"
//	@Param			search		query	string	false	"Search for this text in name and note"
//	@Param			offset		query	uint	false	"The offset of the first item returned. Defaults to 0."
//	@Param			limit		query	int		false	"Maximum number of items to return. Defaults to 50."
func (co Controller) GetShoppingItems(c *gin.Context) {
	var filter ShoppingItemQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ShoppingItemListResponse{
			Error: &s,
		})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	model := filter.model()
	q := models.DB.WithContext(c).
		Order("purchased ASC, category_id ASC, name ASC").
		Where(&model, queryFields...)

	q = textFilter(q, setFields, "Name", "name", filter.Name)
	q = textFilter(q, setFields, "Note", "note", filter.Note)
	q = searchFilter(models.DB, q, filter.Search, "name", "note")

	items, pagination, err := find[models.ShoppingItem](q, setFields, filter.Offset, filter.Limit)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ShoppingItemListResponse{
			Error: &s,
		})
		return
	}

	data := make([]ShoppingItem, 0, len(items))
	for _, item := range items {
		data = append(data, newShoppingItem(c, item))
	}

	c.JSON(http.StatusOK, ShoppingItemListResponse{
		Data:       data,
		Pagination: &pagination,
	})
}

//	@Summary		Get shopping item
//	@Description	Returns a specific shopping item
//	@Tags			Shopping Items
//	@Produce		json
//	@Success		200	{object}	ShoppingItemResponse
//	@Failure		400	{object}	ShoppingItemResponse
//	@Failure		404	{object}	ShoppingItemResponse
//	@Failure		500	{object}	ShoppingItemResponse
//	@Param			id	path		uint	true	"ID formatted as string"
//	@Router			/v1/shopping-items/{id} [get]
func (co Controller) GetShoppingItem(c *gin.Context) {
	item, ok := getShoppingItem(c)
	if !ok {
		return
	}

	data := newShoppingItem(c, item)
	c.JSON(http.StatusOK, ShoppingItemResponse{Data: &data})
}

//	@Summary		Update shopping item
//	@Description	Updates a shopping item. Only values to be updated need to be specified. Changing the purchase state sets or clears the purchase date.
//	@Tags			Shopping Items
//	@Produce		json
//	@Success		200		{object}	ShoppingItemResponse
//	@Failure		400		{object}	ShoppingItemResponse
//	@Failure		404		{object}	ShoppingItemResponse
//	@Failure		500		{object}	ShoppingItemResponse
//	@Param			id		path		uint					true	"ID formatted as string"
//	@Param			item	body		ShoppingItemEditable	true	"Shopping item"
//	@Router			/v1/shopping-items/{id} [patch]
func (co Controller) UpdateShoppingItem(c *gin.Context) {
	item, ok := getShoppingItem(c)
	if !ok {
		return
	}

	updateFields, err := httputil.GetBodyFields(c, ShoppingItemEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ShoppingItemResponse{
			Error: &s,
		})
		return
	}

	var data ShoppingItemEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ShoppingItemResponse{
			Error: &s,
		})
		return
	}

	update := data.model()
	if slices.Contains(updateFields, "Purchased") && update.Purchased != item.Purchased {
		if update.Purchased {
			now := time.Now().In(time.UTC)
			update.PurchasedAt = &now
		}
		updateFields = append(updateFields, "PurchasedAt")
	}

	err = models.DB.WithContext(c).Model(&item).Select("", updateFields...).Updates(update).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ShoppingItemResponse{
			Error: &s,
		})
		return
	}

	apiResource := newShoppingItem(c, item)
	c.JSON(http.StatusOK, ShoppingItemResponse{Data: &apiResource})
}

//	@Summary		Delete shopping item
//	@Description	Deletes a shopping item
//	@Tags			Shopping Items
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		uint	true	"ID formatted as string"
//	@Router			/v1/shopping-items/{id} [delete]
func (co Controller) DeleteShoppingItem(c *gin.Context) {
	item, ok := getShoppingItem(c)
	if !ok {
		return
	}

	err := models.DB.WithContext(c).Delete(&item).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

//	@Summary		Delete purchased items
//	@Description	Deletes all items that were purchased more than the given number of days ago
//	@Tags			Shopping Items
//	@Produce		json
//	@Success		200		{object}	CountResponse
//	@Failure		400		{object}	CountResponse
//	@Failure		500		{object}	CountResponse
//	@Param			days	query		int	false	"Minimum age of the purchase in days. Defaults to 30."
//	@Router			/v1/shopping-items/purchased [delete]
func (co Controller) CleanupPurchasedShoppingItems(c *gin.Context) {
	query := PurchasedCleanupQuery{Days: defaultCleanupDays}
	if err := c.BindQuery(&query); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, CountResponse{
			Error: &s,
		})
		return
	}

	if query.Days < 0 {
		s := errDaysNegative.Error()
		c.JSON(http.StatusBadRequest, CountResponse{
			Error: &s,
		})
		return
	}

	deleted, err := models.CleanupPurchased(models.DB.WithContext(c), time.Now().AddDate(0, 0, -query.Days))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CountResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, CountResponse{Data: &Count{Count: deleted}})
}
