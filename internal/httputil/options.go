package httputil

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
)

// allow answers a preflight request with the methods a resource supports.
// OPTIONS is always allowed.
func allow(c *gin.Context, methods ...string) {
	c.Header("allow", strings.Join(append([]string{http.MethodOptions}, methods...), ", "))
	c.Render(http.StatusNoContent, render.JSON{})
}

func OptionsGet(c *gin.Context) {
	allow(c, http.MethodGet)
}

func OptionsPost(c *gin.Context) {
	allow(c, http.MethodPost)
}

func OptionsGetPost(c *gin.Context) {
	allow(c, http.MethodGet, http.MethodPost)
}

// OptionsGetDelete is used by collections that can be listed and cleared,
// e.g. reminders.
func OptionsGetDelete(c *gin.Context) {
	allow(c, http.MethodGet, http.MethodDelete)
}

func OptionsGetPatchDelete(c *gin.Context) {
	allow(c, http.MethodGet, http.MethodPatch, http.MethodDelete)
}

// OptionsPostDelete is used by state toggles like the paid state of expenses.
func OptionsPostDelete(c *gin.Context) {
	allow(c, http.MethodPost, http.MethodDelete)
}

func OptionsDelete(c *gin.Context) {
	allow(c, http.MethodDelete)
}
