// Package auth turns bearer tokens into a typed Principal for the core.
package auth

import (
	"github.com/Kusalkumar06/eventia/internal/apperr"
	"github.com/Kusalkumar06/eventia/internal/models"
	"github.com/labstack/echo/v4"
)

// Principal is the acting user of a core operation.
type Principal struct {
	ID   string
	Role models.Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

func (p Principal) Authenticated() bool {
	return p.ID != "" && p.Role.Valid()
}

var (
	ErrUnauthenticated  = apperr.New(apperr.Unauthorized, "authentication required")
	ErrInsufficientRole = apperr.New(apperr.Forbidden, "insufficient role")
)

type Provider interface {
	RequireAuthenticated(c echo.Context) (Principal, error)
	RequireRole(c echo.Context, role models.Role) (Principal, error)
}

const principalKey = "auth.principal"

func withPrincipal(c echo.Context, p Principal) {
	c.Set(principalKey, p)
}

// FromContext returns the principal attached by Middleware, if any.
func FromContext(c echo.Context) (Principal, bool) {
	p, ok := c.Get(principalKey).(Principal)
	return p, ok && p.Authenticated()
}
