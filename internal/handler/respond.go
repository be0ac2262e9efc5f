package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"rendezvous/internal/errors"
)

// respondError maps a domain error onto the JSON error envelope. Internal
// errors are logged with their detail and reported with a generic message.
func respondError(c echo.Context, err error) error {
	he := errors.MapErrorToHTTP(err)
	if he.StatusCode == http.StatusInternalServerError {
		log.Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
	}
	return c.JSON(he.StatusCode, he.ToErrorResponse())
}
