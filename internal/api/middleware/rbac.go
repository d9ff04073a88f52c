package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/99minutos/auth-service/internal/core/authz"
)

// RBAC enforces role-based access control over the role claim injected by
// Auth. The allowed set is fixed at startup; a role outside it is always
// forbidden.
func RBAC(allowed authz.RoleSet) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if err := allowed.Authorize(role); err != nil {
				return err
			}
			return next(c)
		}
	}
}
