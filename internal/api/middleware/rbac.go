package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/banki/finanzas-api/internal/core/domain"
)

// RBAC restricts a route to the given roles. It must run after Auth, which
// injects the resolved identity.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, _ := c.Get("user").(domain.UserRef)
			if _, ok := allowed[user.Role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
