package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/hahn-ecommerce/catalog-api/internal/core/ports"
)

// Auth validates the bearer token through the token codec and injects the
// verified identity and roles into the request context.
func Auth(tokens ports.TokenProvider) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			if !tokens.Validate(parts[1]) {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			subject, roles, err := tokens.Identity(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			names := make([]string, len(roles))
			for i, r := range roles {
				names[i] = string(r)
			}

			c.Set("username", subject)
			c.Set("roles", names)

			return next(c)
		}
	}
}
