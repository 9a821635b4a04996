package httputil

import (
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// BindData binds the JSON body of the request to data.
//
// Type errors and unparseable timestamps are returned unchanged since they
// name the offending value. All other errors are logged and reported as
// ErrInvalidBody.
func BindData(c *gin.Context, data any) error {
	err := c.ShouldBindJSON(data)
	if err == nil {
		return nil
	}

	var (
		typeErr *json.UnmarshalTypeError
		timeErr *time.ParseError
	)

	switch {
	case errors.Is(err, io.EOF):
		return ErrRequestBodyEmpty
	case errors.As(err, &typeErr), errors.As(err, &timeErr):
		return err
	}

	log.Error().
		Str("request-id", requestid.Get(c)).
		Str("path", c.FullPath()).
		Msgf("%T: %v", err, err.Error())

	return ErrInvalidBody
}
