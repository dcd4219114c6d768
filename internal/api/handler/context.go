package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/banki/finanzas-api/internal/core/domain"
)

// ctxActor extracts the identity injected by the Auth middleware. The
// middleware resolved the user against the store, so a missing value means
// the route was wired without it.
func ctxActor(c echo.Context) (domain.UserRef, error) {
	actor, ok := c.Get("user").(domain.UserRef)
	if !ok || actor.ID == 0 {
		return domain.UserRef{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return actor, nil
}

// pathID parses the numeric :id path parameter.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
