package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pocket-ledger/backend/internal/httputil"
	"github.com/ryanuber/go-glob"
	"golang.org/x/exp/slices"
)

// RegisterReminderRoutes registers the routes for reminders with
// the RouterGroup that is passed.
func (co Controller) RegisterReminderRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", co.OptionsReminderList)
	r.GET("", co.GetReminders)
	r.DELETE("", co.CancelReminders)
	r.OPTIONS("/resync", co.OptionsReminderResync)
	r.POST("/resync", co.ResyncReminders)
}

//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Reminders
//	@Success		204
//	@Router			/v1/reminders [options]
func (co Controller) OptionsReminderList(c *gin.Context) {
	httputil.OptionsGetDelete(c)
}

//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Reminders
//	@Success		204
//	@Router			/v1/reminders/resync [options]
func (co Controller) OptionsReminderResync(c *gin.Context) {
	httputil.OptionsPost(c)
}

//	@Summary		List reminders
//	@Description	Returns all pending reminders, the next one to fire first
//	@Tags			Reminders
//	@Produce		json
//	@Success		200	{object}	ReminderListResponse
//	@Failure		400	{object}	ReminderListResponse
//	@Param			key	query		string	false	"Glob pattern for the reminder key, e.g. expense_1*"
//	@Router			/v1/reminders [get]
func (co Controller) GetReminders(c *gin.Context) {
	var filter ReminderQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ReminderListResponse{
			Error: &s,
		})
		return
	}

	_, setFields := httputil.GetURLFields(c.Request.URL, filter)
	if slices.Contains(setFields, "Key") && filter.Key == "" {
		s := errKeyPatternInvalid.Error()
		c.JSON(http.StatusBadRequest, ReminderListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Reminder, 0)
	for _, pending := range co.Reminders.Pending(c.Request.Context()) {
		if filter.Key != "" && !glob.Glob(filter.Key, pending.Key) {
			continue
		}

		data = append(data, newReminder(c, pending))
	}

	slices.SortStableFunc(data, func(a, b Reminder) int {
		if n := a.FireAt.Compare(b.FireAt); n != 0 {
			return n
		}
		return strings.Compare(a.Key, b.Key)
	})

	c.JSON(http.StatusOK, ReminderListResponse{Data: data})
}

//	@Summary		Resync reminders
//	@Description	Rebuilds the reminders of all unpaid expenses with a due date and returns how many were scheduled
//	@Tags			Reminders
//	@Produce		json
//	@Success		200	{object}	CountResponse
//	@Router			/v1/reminders/resync [post]
func (co Controller) ResyncReminders(c *gin.Context) {
	count := co.Reminders.Resync(c.Request.Context())
	c.JSON(http.StatusOK, CountResponse{Data: &Count{Count: int64(count)}})
}

//	@Summary		Cancel all reminders
//	@Description	Cancels every pending reminder. Expenses are not modified, a resync schedules their reminders again.
//	@Tags			Reminders
//	@Success		204
//	@Failure		400		{object}	httpError
//	@Param			confirm	query		string	true	"Confirmation to cancel all reminders. Must be set to 'yes-please-cancel-everything'"
//	@Router			/v1/reminders [delete]
func (co Controller) CancelReminders(c *gin.Context) {
	var query ReminderCancelQuery
	if err := c.BindQuery(&query); err != nil || query.Confirm != "yes-please-cancel-everything" {
		c.JSON(http.StatusBadRequest, httpError{
			Error: errReminderConfirmation.Error(),
		})
		return
	}

	co.Reminders.CancelAll(c.Request.Context())
	c.JSON(http.StatusNoContent, nil)
}
