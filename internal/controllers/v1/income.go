package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocket-ledger/backend/internal/httputil"
	"github.com/pocket-ledger/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterIncomeRoutes registers the routes for incomes with
// the RouterGroup that is passed.
func (co Controller) RegisterIncomeRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsIncomeList)
		r.GET("", co.GetIncomes)
		r.POST("", co.CreateIncomes)
	}

	// Income with ID
	{
		r.OPTIONS("/:id", co.OptionsIncomeDetail)
		r.GET("/:id", co.GetIncome)
		r.PATCH("/:id", co.UpdateIncome)
		r.DELETE("/:id", co.DeleteIncome)
	}
}

//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Incomes
//	@Success		204
//	@Router			/v1/incomes [options]
func (co Controller) OptionsIncomeList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Incomes
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		uint	true	"ID formatted as string"
//	@Router			/v1/incomes/{id} [options]
func (co Controller) OptionsIncomeDetail(c *gin.Context) {
	if _, ok := getIncome(c); !ok {
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

func getIncome(c *gin.Context) (income models.Income, ok bool) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.WithContext(c).First(&income, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	return income, true
}

//	@Summary		Create incomes
//	@Description	Creates new incomes
//	@Tags			Incomes
//	@Produce		json
//	@Success		201		{object}	IncomeCreateResponse
//	@Failure		400		{object}	IncomeCreateResponse
//	@Failure		404		{object}	IncomeCreateResponse
//	@Failure		500		{object}	IncomeCreateResponse
//	@Param			incomes	body		[]IncomeEditable	true	"Incomes"
//	@Router			/v1/incomes [post]
func (co Controller) CreateIncomes(c *gin.Context) {
	var editables []IncomeEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), IncomeCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := IncomeCreateResponse{}

	for _, editable := range editables {
		income := editable.model()
		err = models.DB.WithContext(c).Create(&income).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newIncome(c, income)
		r.Data = append(r.Data, IncomeResponse{Data: &data})
	}

	c.JSON(status, r)
}

//	@Summary		List incomes
//	@Description	Returns a list of incomes, the most recent first
//	@Tags			Incomes
//	@Produce		json
//	@Success		200		{object}	IncomeListResponse
//	@Failure		400		{object}	IncomeListResponse
//	@Failure		500		{object}	IncomeListResponse
//	@Router			/v1/incomes [get]
//	@Param			concept	query	uint	false	"Filter by concept ID"
//	@Param			month	query	string	false	"Filter by month of the date, YYYY-MM"
//	@Param			note	query	string	false	"Filter by note"
//	@Param			search	query	string	false	"Search for this text in the note"
//	@Param			offset	query	uint	false	"The offset of the first income returned. Defaults to 0."
//	@Param			limit	query	int		false	"Maximum number of incomes to return. Defaults to 50."
func (co Controller) GetIncomes(c *gin.Context) {
	var filter IncomeQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, IncomeListResponse{
			Error: &s,
		})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	model := filter.model()
	q := models.DB.WithContext(c).
		Order("date DESC, id DESC").
		Where(&model, queryFields...)

	if slices.Contains(setFields, "Month") && !filter.Month.IsZero() {
		start, end := filter.Month.Range()
		q = q.Where("date >= ? AND date < ?", start, end)
	}

	q = textFilter(q, setFields, "Note", "note", filter.Note)
	q = searchFilter(models.DB, q, filter.Search, "note")

	incomes, pagination, err := find[models.Income](q, setFields, filter.Offset, filter.Limit)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Income, 0, len(incomes))
	for _, income := range incomes {
		data = append(data, newIncome(c, income))
	}

	c.JSON(http.StatusOK, IncomeListResponse{
		Data:       data,
		Pagination: &pagination,
	})
}

//	@Summary		Get income
//	@Description	Returns a specific income
//	@Tags			Incomes
//	@Produce		json
//	@Success		200	{object}	IncomeResponse
//	@Failure		400	{object}	IncomeResponse
//	@Failure		404	{object}	IncomeResponse
//	@Failure		500	{object}	IncomeResponse
//	@Param			id	path		uint	true	"ID formatted as string"
//	@Router			/v1/incomes/{id} [get]
func (co Controller) GetIncome(c *gin.Context) {
	income, ok := getIncome(c)
	if !ok {
		return
	}

	data := newIncome(c, income)
	c.JSON(http.StatusOK, IncomeResponse{Data: &data})
}

//	@Summary		Update income
//	@Description	Updates an income. Only values to be updated need to be specified.
//	@Tags			Incomes
//	@Produce		json
//	@Success		200		{object}	IncomeResponse
//	@Failure		400		{object}	IncomeResponse
//	@Failure		404		{object}	IncomeResponse
//	@Failure		500		{object}	IncomeResponse
//	@Param			id		path		uint			true	"ID formatted as string"
//	@Param			income	body		IncomeEditable	true	"Income"
//	@Router			/v1/incomes/{id} [patch]
func (co Controller) UpdateIncome(c *gin.Context) {
	income, ok := getIncome(c)
	if !ok {
		return
	}

	updateFields, err := httputil.GetBodyFields(c, IncomeEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeResponse{
			Error: &s,
		})
		return
	}

	var data IncomeEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.WithContext(c).Model(&income).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeResponse{
			Error: &s,
		})
		return
	}

	apiResource := newIncome(c, income)
	c.JSON(http.StatusOK, IncomeResponse{Data: &apiResource})
}

//	@Summary		Delete income
//	@Description	Deletes an income
//	@Tags			Incomes
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		uint	true	"ID formatted as string"
//	@Router			/v1/incomes/{id} [delete]
func (co Controller) DeleteIncome(c *gin.Context) {
	income, ok := getIncome(c)
	if !ok {
		return
	}

	err := models.DB.WithContext(c).Delete(&income).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
