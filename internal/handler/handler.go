package handler

import (
	"net/http"

	"github.com/Kusalkumar06/eventia/internal/apperr"
	"github.com/Kusalkumar06/eventia/internal/auth"
	"github.com/labstack/echo/v4"
)

func bind(c echo.Context, v any) error {
	if err := c.Bind(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return nil
}

func bindAndValidate(c echo.Context, v any) error {
	if err := bind(c, v); err != nil {
		return err
	}
	if err := c.Validate(v); err != nil {
		return apperr.Validationf("%s", err.Error())
	}
	return nil
}

// viewer is the caller on public reads: anonymous unless a valid token was sent.
func viewer(p auth.Provider, c echo.Context) auth.Principal {
	principal, err := p.RequireAuthenticated(c)
	if err != nil {
		return auth.Principal{}
	}
	return principal
}
