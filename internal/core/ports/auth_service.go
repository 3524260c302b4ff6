package ports

import (
	"context"

	"github.com/hahn-ecommerce/catalog-api/internal/core/domain"
)

// UserProfile is the public view of a user, safe to return to callers.
type UserProfile struct {
	ID       string
	Username string
	Email    string
	Active   bool
	Roles    []domain.Role
}

// LoginResult carries both freshly minted tokens plus the caller's profile.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	User         UserProfile
}

// RegisterInput carries the data needed to create an account. Roles may be
// empty, in which case the default role set applies.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Roles    []domain.Role
}

// RefreshResult carries a new access token and the unchanged refresh token.
type RefreshResult struct {
	AccessToken  string
	RefreshToken string
}

// AuthService defines the authentication use cases.
type AuthService interface {
	// Login verifies credentials and mints both tokens. Any credential
	// failure is reported as a generic unauthorized error.
	Login(ctx context.Context, username, password string) (*LoginResult, error)

	// Register creates an account after uniqueness checks. It never
	// returns tokens.
	Register(ctx context.Context, input RegisterInput) error

	// Refresh validates the presented refresh token and mints a new
	// access token; the refresh token is returned unchanged.
	Refresh(ctx context.Context, refreshToken string) (*RefreshResult, error)

	// CurrentUser looks up the stored profile for a verified identity.
	CurrentUser(ctx context.Context, username string) (*UserProfile, error)
}
