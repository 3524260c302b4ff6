package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/hahn-ecommerce/catalog-api/internal/core/domain"
)

// ctxUsername extracts the identity injected by the Auth middleware. An
// empty value means the middleware did not run; fail before any service call.
func ctxUsername(c echo.Context) (string, error) {
	username, _ := c.Get("username").(string)
	if username == "" {
		return "", domain.NewUnauthorized("missing authentication claims")
	}
	return username, nil
}
