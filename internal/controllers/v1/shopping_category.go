package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocket-ledger/backend/internal/httputil"
	"github.com/pocket-ledger/backend/internal/models"
)

// RegisterShoppingCategoryRoutes registers the routes for shopping categories with
// the RouterGroup that is passed.
func (co Controller) RegisterShoppingCategoryRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsShoppingCategoryList)
		r.GET("", co.GetShoppingCategories)
		r.POST("", co.CreateShoppingCategories)
	}

	// Shopping category with ID
	{
		r.OPTIONS("/:id", co.OptionsShoppingCategoryDetail)
		r.GET("/:id", co.GetShoppingCategory)
		r.PATCH("/:id", co.UpdateShoppingCategory)
		r.DELETE("/:id", co.DeleteShoppingCategory)
	}
}

//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Shopping Categories
//	@Success		204
//	@Router			/v1/shopping-categories [options]
func (co Controller) OptionsShoppingCategoryList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Shopping Categories
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		uint	true	"ID formatted as string"
//	@Router			/v1/shopping-categories/{id} [options]
func (co Controller) OptionsShoppingCategoryDetail(c *gin.Context) {
	if _, ok := getShoppingCategory(c); !ok {
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

func getShoppingCategory(c *gin.Context) (category models.ShoppingCategory, ok bool) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.WithContext(c).First(&category, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	return category, true
}

//	@Summary		Create shopping categories
//	@Description	Creates new shopping categories
//	@Tags			Shopping Categories
//	@Produce		json
//	@Success		201			{object}	ShoppingCategoryCreateResponse
//	@Failure		400			{object}	ShoppingCategoryCreateResponse
//	@Failure		500			{object}	ShoppingCategoryCreateResponse
//	@Param			categories	body		[]ShoppingCategoryEditable	true	"Shopping categories"
//	@Router			/v1/shopping-categories [post]
func (co Controller) CreateShoppingCategories(c *gin.Context) {
	var editables []ShoppingCategoryEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ShoppingCategoryCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := ShoppingCategoryCreateResponse{}

	for _, editable := range editables {
		category := editable.model()
		err = models.DB.WithContext(c).Create(&category).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newShoppingCategory(c, category)
		r.Data = append(r.Data, ShoppingCategoryResponse{Data: &data})
	}

	c.JSON(status, r)
}

//	@Summary		List shopping categories
//	@Description	Returns a list of shopping categories, ordered by name
//	@Tags			Shopping Categories
//	@Produce		json
//	@Success		200			{object}	ShoppingCategoryListResponse
//	@Failure		400			{object}	ShoppingCategoryListResponse
//	@Failure		500			{object}	ShoppingCategoryListResponse
//	@Router			/v1/shopping-categories [get]
//	@Param			name		query	string	false	"Filter by name"
//	@Param			archived	query	bool	false	"Is the category archived?"
//	@Param			search		query	string	false	"Search for this text in the name"
//	@Param			offset		query	uint	false	"The offset of the first category returned. Defaults to 0."
//	@Param			limit		query	int		false	"Maximum number of categories to return. Defaults to 50."
func (co Controller) GetShoppingCategories(c *gin.Context) {
	var filter ShoppingCategoryQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ShoppingCategoryListResponse{
			Error: &s,
		})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	model := filter.model()
	q := models.DB.WithContext(c).
		Order("name ASC").
		Where(&model, queryFields...)

	q = textFilter(q, setFields, "Name", "name", filter.Name)
	q = searchFilter(models.DB, q, filter.Search, "name")

	categories, pagination, err := find[models.ShoppingCategory](q, setFields, filter.Offset, filter.Limit)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ShoppingCategoryListResponse{
			Error: &s,
		})
		return
	}

	data := make([]ShoppingCategory, 0, len(categories))
	for _, category := range categories {
		data = append(data, newShoppingCategory(c, category))
	}

	c.JSON(http.StatusOK, ShoppingCategoryListResponse{
		Data:       data,
		Pagination: &pagination,
	})
}

//	@Summary		Get shopping category
//	@Description	Returns a specific shopping category
//	@Tags			Shopping Categories
//	@Produce		json
//	@Success		200	{object}	ShoppingCategoryResponse
//	@Failure		400	{object}	ShoppingCategoryResponse
//	@Failure		404	{object}	ShoppingCategoryResponse
//	@Failure		500	{object}	ShoppingCategoryResponse
//	@Param			id	path		uint	true	"ID formatted as string"
//	@Router			/v1/shopping-categories/{id} [get]
func (co Controller) GetShoppingCategory(c *gin.Context) {
	category, ok := getShoppingCategory(c)
	if !ok {
		return
	}

	data := newShoppingCategory(c, category)
	c.JSON(http.StatusOK, ShoppingCategoryResponse{Data: &data})
}

//	@Summary		Update shopping category
//	@Description	Updates a shopping category. Only values to be updated need to be specified.
//	@Tags			Shopping Categories
//	@Produce		json
//	@Success		200			{object}	ShoppingCategoryResponse
//	@Failure		400			{object}	ShoppingCategoryResponse
//	@Failure		404			{object}	ShoppingCategoryResponse
//	@Failure		500			{object}	ShoppingCategoryResponse
//	@Param			id			path		uint						true	"ID formatted as string"
//	@Param			category	body		ShoppingCategoryEditable	true	"Shopping category"
//	@Router			/v1/shopping-categories/{id} [patch]
func (co Controller) UpdateShoppingCategory(c *gin.Context) {
	category, ok := getShoppingCategory(c)
	if !ok {
		return
	}

	updateFields, err := httputil.GetBodyFields(c, ShoppingCategoryEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ShoppingCategoryResponse{
			Error: &s,
		})
		return
	}

	var data ShoppingCategoryEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ShoppingCategoryResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.WithContext(c).Model(&category).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ShoppingCategoryResponse{
			Error: &s,
		})
		return
	}

	apiResource := newShoppingCategory(c, category)
	c.JSON(http.StatusOK, ShoppingCategoryResponse{Data: &apiResource})
}

//	@Summary		Delete shopping category
//	@Description	Deletes a shopping category. Categories that still contain items cannot be deleted.
//	@Tags			Shopping Categories
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		uint	true	"ID formatted as string"
//	@Router			/v1/shopping-categories/{id} [delete]
func (co Controller) DeleteShoppingCategory(c *gin.Context) {
	category, ok := getShoppingCategory(c)
	if !ok {
		return
	}

	err := models.DB.WithContext(c).Delete(&category).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
