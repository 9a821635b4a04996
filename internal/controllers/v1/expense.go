package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pocket-ledger/backend/internal/httputil"
	"github.com/pocket-ledger/backend/internal/models"
)

// RegisterExpenseRoutes registers the routes for expenses with
// the RouterGroup that is passed.
func (co Controller) RegisterExpenseRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsExpenseList)
		r.GET("", co.GetExpenses)
		r.POST("", co.CreateExpenses)
	}

	// Expense with ID
	{
		r.OPTIONS("/:id", co.OptionsExpenseDetail)
		r.GET("/:id", co.GetExpense)
		r.PATCH("/:id", co.UpdateExpense)
		r.DELETE("/:id", co.DeleteExpense)
		r.OPTIONS("/:id/paid", co.OptionsExpensePaid)
		r.POST("/:id/paid", co.MarkExpensePaid)
		r.DELETE("/:id/paid", co.MarkExpenseUnpaid)
	}
}

// reminderTimes returns the fire times of all pending reminders by key.
func (co Controller) reminderTimes(ctx context.Context) map[string]time.Time {
	pending := co.Reminders.Pending(ctx)

	times := make(map[string]time.Time, len(pending))
	for _, p := range pending {
		times[p.Key] = p.FireAt
	}

	return times
}

//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Expenses
//	@Success		204
//	@Router			/v1/expenses [options]
func (co Controller) OptionsExpenseList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Expenses
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		uint	true	"ID formatted as string"
//	@Router			/v1/expenses/{id} [options]
func (co Controller) OptionsExpenseDetail(c *gin.Context) {
	if _, ok := getExpense(c); !ok {
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Expenses
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		uint	true	"ID formatted as string"
//	@Router			/v1/expenses/{id}/paid [options]
func (co Controller) OptionsExpensePaid(c *gin.Context) {
	if _, ok := getExpense(c); !ok {
		return
	}

	httputil.OptionsPostDelete(c)
}

func getExpense(c *gin.Context) (expense models.Expense, ok bool) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.WithContext(c).First(&expense, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	return expense, true
}

//	@Summary		Create expenses
//	@Description	Creates new expenses. Unpaid expenses with a due date get a payment reminder.
//	@Tags			Expenses
//	@Produce		json
//	@Success		201			{object}	ExpenseCreateResponse
//	@Failure		400			{object}	ExpenseCreateResponse
//	@Failure		404			{object}	ExpenseCreateResponse
//	@Failure		500			{object}	ExpenseCreateResponse
//	@Param			expenses	body		[]ExpenseEditable	true	"Expenses"
//	@Router			/v1/expenses [post]
func (co Controller) CreateExpenses(c *gin.Context) {
	var editables []ExpenseEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := ExpenseCreateResponse{}

	for _, editable := range editables {
		expense := editable.model()
		err = models.DB.WithContext(c).Create(&expense).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		co.Reminders.Sync(c.Request.Context(), expense)

		data := newExpense(c, expense, nil)
		r.Data = append(r.Data, ExpenseResponse{Data: &data})
	}

	pending := co.reminderTimes(c.Request.Context())
	for _, created := range r.Data {
		if created.Data != nil {
			created.Data.ReminderAt = reminderAt(pending, created.Data.ID)
		}
	}

	c.JSON(status, r)
}

//	@Summary		List expenses
//	@Description	Returns a list of expenses, ordered by month and due date
//	@Tags			Expenses
//	@Produce		json
//	@Success		200		{object}	ExpenseListResponse
//	@Failure		400		{object}	ExpenseListResponse
//	@Failure		500		{object}	ExpenseListResponse
//	@Router			/v1/expenses [get]
//	@Param			concept	query	uint	false	"Filter by concept ID"
//	@Param			month	query	string	false	"Filter by month, YYYY-MM"
//	@Param			paid	query	bool	false	"Is the expense paid?"
//	@Param			dueDate	query	string	false	"Filter by due date, YYYY-MM-DD"
//	@Param			note	query	string	false	"Filter by note"
//	@Param			search	query	string	false	"Search for this text in the note"
//	@Param			offset	query	uint	false	"The offset of the first expense returned. Defaults to 0."
//	@Param			limit	query	int		false	"Maximum number of expenses to return. Defaults to 50."
func (co Controller) GetExpenses(c *gin.Context) {
	var filter ExpenseQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ExpenseListResponse{
			Error: &s,
		})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	model := filter.model()
	q := models.DB.WithContext(c).
		Order("month DESC, due_date ASC, id ASC").
		Where(&model, queryFields...)

	q = textFilter(q, setFields, "Note", "note", filter.Note)
	q = searchFilter(models.DB, q, filter.Search, "note")

	expenses, pagination, err := find[models.Expense](q, setFields, filter.Offset, filter.Limit)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseListResponse{
			Error: &s,
		})
		return
	}

	pending := co.reminderTimes(c.Request.Context())

	data := make([]Expense, 0, len(expenses))
	for _, expense := range expenses {
		data = append(data, newExpense(c, expense, pending))
	}

	c.JSON(http.StatusOK, ExpenseListResponse{
		Data:       data,
		Pagination: &pagination,
	})
}

//	@Summary		Get expense
//	@Description	Returns a specific expense
//	@Tags			Expenses
//	@Produce		json
//	@Success		200	{object}	ExpenseResponse
//	@Failure		400	{object}	ExpenseResponse
//	@Failure		404	{object}	ExpenseResponse
//	@Failure		500	{object}	ExpenseResponse
//	@Param			id	path		uint	true	"ID formatted as string"
//	@Router			/v1/expenses/{id} [get]
func (co Controller) GetExpense(c *gin.Context) {
	expense, ok := getExpense(c)
	if !ok {
		return
	}

	data := newExpense(c, expense, co.reminderTimes(c.Request.Context()))
	c.JSON(http.StatusOK, ExpenseResponse{Data: &data})
}

//	@Summary		Update expense
//	@Description	Updates an expense. Only values to be updated need to be specified. The payment reminder is rescheduled.
//	@Tags			Expenses
//	@Produce		json
//	@Success		200		{object}	ExpenseResponse
//	@Failure		400		{object}	ExpenseResponse
//	@Failure		404		{object}	ExpenseResponse
//	@Failure		500		{object}	ExpenseResponse
//	@Param			id		path		uint			true	"ID formatted as string"
//	@Param			expense	body		ExpenseEditable	true	"Expense"
//	@Router			/v1/expenses/{id} [patch]
func (co Controller) UpdateExpense(c *gin.Context) {
	expense, ok := getExpense(c)
	if !ok {
		return
	}

	updateFields, err := httputil.GetBodyFields(c, ExpenseEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &s,
		})
		return
	}

	var data ExpenseEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.WithContext(c).Model(&expense).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &s,
		})
		return
	}

	co.updated(c, expense.ID)
}

//	@Summary		Mark expense as paid
//	@Description	Marks an expense as paid and cancels its payment reminder
//	@Tags			Expenses
//	@Produce		json
//	@Success		200	{object}	ExpenseResponse
//	@Failure		400	{object}	ExpenseResponse
//	@Failure		404	{object}	ExpenseResponse
//	@Failure		500	{object}	ExpenseResponse
//	@Param			id	path		uint	true	"ID formatted as string"
//	@Router			/v1/expenses/{id}/paid [post]
func (co Controller) MarkExpensePaid(c *gin.Context) {
	co.setPaid(c, true)
}

//	@Summary		Mark expense as unpaid
//	@Description	Marks an expense as unpaid. If the due date is far enough in the future, a payment reminder is scheduled again.
//	@Tags			Expenses
//	@Produce		json
//	@Success		200	{object}	ExpenseResponse
//	@Failure		400	{object}	ExpenseResponse
//	@Failure		404	{object}	ExpenseResponse
//	@Failure		500	{object}	ExpenseResponse
//	@Param			id	path		uint	true	"ID formatted as string"
//	@Router			/v1/expenses/{id}/paid [delete]
func (co Controller) MarkExpenseUnpaid(c *gin.Context) {
	co.setPaid(c, false)
}

func (co Controller) setPaid(c *gin.Context, paid bool) {
	expense, ok := getExpense(c)
	if !ok {
		return
	}

	err := models.DB.WithContext(c).Model(&expense).Select("Paid").Updates(models.Expense{Paid: paid}).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &s,
		})
		return
	}

	co.updated(c, expense.ID)
}

// updated reloads a persisted expense, syncs its reminder and writes the response.
func (co Controller) updated(c *gin.Context, id uint) {
	var expense models.Expense
	err := models.DB.WithContext(c).First(&expense, id).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &s,
		})
		return
	}

	co.Reminders.Sync(c.Request.Context(), expense)

	data := newExpense(c, expense, co.reminderTimes(c.Request.Context()))
	c.JSON(http.StatusOK, ExpenseResponse{Data: &data})
}

//	@Summary		Delete expense
//	@Description	Deletes an expense and cancels its payment reminder
//	@Tags			Expenses
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		uint	true	"ID formatted as string"
//	@Router			/v1/expenses/{id} [delete]
func (co Controller) DeleteExpense(c *gin.Context) {
	expense, ok := getExpense(c)
	if !ok {
		return
	}

	err := models.DB.WithContext(c).Delete(&expense).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	co.Reminders.Retract(c.Request.Context(), expense.ID)

	c.JSON(http.StatusNoContent, nil)
}
