package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/addisco/consulting-api/internal/core/domain"
)

// RBAC enforces role-based access control. The role is read from the context
// set by Auth, so RBAC must run after it.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(RoleKey).(string)
			if _, ok := allowed[role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "access forbidden")
			}
			return next(c)
		}
	}
}

// StaffOnly restricts a route to admin and partner roles.
func StaffOnly() echo.MiddlewareFunc {
	return RBAC(domain.RoleAdmin, domain.RolePartner)
}

// AdminOnly restricts a route to the admin role.
func AdminOnly() echo.MiddlewareFunc {
	return RBAC(domain.RoleAdmin)
}
