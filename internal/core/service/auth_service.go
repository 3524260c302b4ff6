package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/hahn-ecommerce/catalog-api/internal/core/domain"
	"github.com/hahn-ecommerce/catalog-api/internal/core/ports"
)

// AuthService orchestrates login, registration, token refresh, and
// current-user lookup. Each operation is a single request-scoped
// transaction; no ambient authentication state is kept.
type AuthService struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenProvider
	logger zerolog.Logger
}

func NewAuthService(users ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenProvider, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens, logger: logger}
}

// Login verifies credentials and mints both tokens bound to the verified
// identity and role set. Lookup and verification failures are translated to
// a generic unauthorized error; the underlying cause is never surfaced.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	if username == "" || password == "" {
		return nil, domain.NewUnauthorized("invalid username or password")
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		s.logger.Debug().Err(err).Str("username", username).Msg("login lookup failed")
		return nil, domain.NewUnauthorized("invalid username or password")
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.NewUnauthorized("invalid username or password")
	}

	accessToken, err := s.tokens.CreateAccessToken(user.Username, user.Roles)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.CreateRefreshToken(user.Username, user.Roles)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", user.Username).Msg("user authenticated")

	return &ports.LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         toProfile(user),
	}, nil
}

// Register checks username uniqueness, then email uniqueness, each
// stop-the-line: a username conflict is reported without touching the email
// check or the hasher. The store's own unique indexes back these checks, so
// a save-time duplicate also surfaces as a conflict.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) error {
	taken, err := s.users.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return err
	}
	if taken {
		return domain.NewConflict("username is already taken")
	}

	inUse, err := s.users.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return err
	}
	if inUse {
		return domain.NewConflict("email is already in use")
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return err
	}

	user, err := domain.NewUser(input.Username, input.Email, hash, input.Roles)
	if err != nil {
		return err
	}

	if _, err := s.users.Save(ctx, user); err != nil {
		return err
	}

	s.logger.Info().Str("username", user.Username).Msg("user registered")
	return nil
}

// Refresh validates the presented refresh token and mints a new access
// token. The original refresh token is returned unchanged; there is no
// rotation.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.RefreshResult, error) {
	if !s.tokens.Validate(refreshToken) {
		return nil, domain.NewUnauthorized("refresh token is invalid")
	}

	subject, roles, err := s.tokens.Identity(refreshToken)
	if err != nil {
		return nil, domain.NewUnauthorized("refresh token is invalid")
	}

	accessToken, err := s.tokens.CreateAccessToken(subject, roles)
	if err != nil {
		return nil, err
	}

	return &ports.RefreshResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// CurrentUser returns the stored profile for a verified identity. Absence is
// an integrity error since the identity came from a validated token.
func (s *AuthService) CurrentUser(ctx context.Context, username string) (*ports.UserProfile, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			return nil, domain.NewNotFound("user not found")
		}
		return nil, err
	}
	profile := toProfile(user)
	return &profile, nil
}

func toProfile(u *domain.User) ports.UserProfile {
	return ports.UserProfile{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Active:   u.Active,
		Roles:    u.Roles,
	}
}
