package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/hahn-ecommerce/catalog-api/internal/api/metrics"
	"github.com/hahn-ecommerce/catalog-api/internal/core/domain"
	"github.com/hahn-ecommerce/catalog-api/internal/core/ports"
)

// AuthHandler handles HTTP requests for authentication operations.
type AuthHandler struct {
	service ports.AuthService
}

func NewAuthHandler(service ports.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Signin authenticates a user and returns access/refresh tokens.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signinRequest  true  "Login credentials"
// @Success      200   {object}  apiResponse{data=jwtTokenResponse}
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /auth/signin [post]
func (h *AuthHandler) Signin(c echo.Context) error {
	var req signinRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.service.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, apiResponse{
		Message: "user authenticated successfully",
		Data: jwtTokenResponse{
			AccessToken:  result.AccessToken,
			RefreshToken: result.RefreshToken,
			User:         toUserResponse(result.User),
		},
	})
}

// Signup registers a new user account. No tokens are returned.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Registration details"
// @Success      201   {object}  apiResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input, err := toRegisterInput(req)
	if err != nil {
		return err
	}

	if err := h.service.Register(c.Request().Context(), input); err != nil {
		if domain.KindOf(err) == domain.KindConflict {
			metrics.RegistrationsTotal.WithLabelValues("conflict").Inc()
		} else {
			metrics.RegistrationsTotal.WithLabelValues("failure").Inc()
		}
		return err
	}
	metrics.RegistrationsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusCreated, apiResponse{Message: "user registered successfully"})
}

// Refresh exchanges a refresh token for a new access token. The refresh
// token itself is returned unchanged.
//
// @Summary      Refresh the access token
// @Tags         auth
// @Produce      json
// @Param        Authorization  header    string  true  "Bearer <refresh token>"
// @Success      200            {object}  apiResponse{data=jwtTokenResponse}
// @Failure      401            {object}  errorResponse
// @Router       /auth/refreshtoken [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	refreshToken, err := bearerToken(c)
	if err != nil {
		return err
	}

	result, err := h.service.Refresh(c.Request().Context(), refreshToken)
	if err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues("failure").Inc()
		return err
	}
	metrics.TokenRefreshesTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, apiResponse{
		Message: "token refreshed successfully",
		Data: jwtTokenResponse{
			AccessToken:  result.AccessToken,
			RefreshToken: result.RefreshToken,
		},
	})
}

// Me returns the authenticated caller's profile.
//
// @Summary      Get the current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  apiResponse{data=userResponse}
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}

	profile, err := h.service.CurrentUser(c.Request().Context(), username)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, apiResponse{
		Message: "user retrieved successfully",
		Data:    toUserResponse(*profile),
	})
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(c echo.Context) (string, error) {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return "", domain.NewUnauthorized("missing authorization header")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", domain.NewUnauthorized("invalid authorization header")
	}
	return parts[1], nil
}
