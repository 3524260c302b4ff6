package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hahn-ecommerce/catalog-api/internal/core/domain"
)

// RBAC enforces role-based access control on the roles claim set by Auth.
// The caller passes when any of their roles is in the allowed set.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[string(r)] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roles, _ := c.Get("roles").([]string)
			for _, r := range roles {
				if _, ok := allowed[r]; ok {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, map[string]string{"message": "forbidden"})
		}
	}
}
