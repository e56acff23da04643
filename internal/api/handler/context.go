package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pushr/marketplace/internal/api/middleware"
)

// ctxSessionID returns the session id injected by the Auth middleware.
func ctxSessionID(c echo.Context) (string, error) {
	id, _ := c.Get(middleware.ContextSessionID).(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return id, nil
}

// bindAndValidate decodes the body into req and runs struct validation.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}
