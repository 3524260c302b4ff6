package handler

import (
	"time"

	"github.com/shopspring/decimal"
)

// apiResponse is the standard success envelope: a human-readable message
// plus an optional payload.
type apiResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// errorResponse documents the error envelope rendered by the central error
// handler (referenced by swagger annotations only).
type errorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// --- Auth ---

type signinRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type signupRequest struct {
	Username string   `json:"username" validate:"required,min=3,max=20"`
	Email    string   `json:"email"    validate:"required,email,max=50"`
	Password string   `json:"password" validate:"required,min=6,max=40"`
	Roles    []string `json:"roles"`
}

type userResponse struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Active   bool     `json:"active"`
	Roles    []string `json:"roles"`
}

type jwtTokenResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	User         *userResponse `json:"user,omitempty"`
}

// --- Products ---

type createProductRequest struct {
	Name        string          `json:"name"        validate:"required,max=255"`
	Description string          `json:"description" validate:"omitempty,max=1000"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"    validate:"gte=0"`
}

// updateProductRequest models the partial-update contract: a field is
// applied only when present in the payload.
type updateProductRequest struct {
	Name        *string          `json:"name"        validate:"omitempty,max=255"`
	Description *string          `json:"description" validate:"omitempty,max=1000"`
	Price       *decimal.Decimal `json:"price"`
	Quantity    *int             `json:"quantity"    validate:"omitempty,gte=0"`
}

type productResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
