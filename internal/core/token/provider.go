// Package token implements the JWT access/refresh token codec. The provider
// is stateless: determinism depends only on the signing key and the system
// clock, so a single instance is safe for concurrent use.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hahn-ecommerce/catalog-api/internal/core/domain"
)

const (
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour
)

// Claims is the wire shape of both token flavours: registered claims plus
// the role set.
type Claims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// Provider creates and verifies HS256-signed tokens.
type Provider struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewProvider builds a Provider. Non-positive TTLs fall back to defaults.
func NewProvider(secret string, accessTTL, refreshTTL time.Duration) *Provider {
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = defaultRefreshTTL
	}
	return &Provider{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// CreateAccessToken mints a short-lived token bound to the subject and roles.
func (p *Provider) CreateAccessToken(subject string, roles []domain.Role) (string, error) {
	return p.create(subject, roles, p.accessTTL)
}

// CreateRefreshToken mints a long-lived token with the same claim shape.
func (p *Provider) CreateRefreshToken(subject string, roles []domain.Role) (string, error) {
	return p.create(subject, roles, p.refreshTTL)
}

func (p *Provider) create(subject string, roles []domain.Role, ttl time.Duration) (string, error) {
	now := time.Now()
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}

	claims := Claims{
		Roles: names,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(p.secret)
}

// Validate reports whether the token parses, carries a valid signature, and
// has not expired. All failure modes collapse to false.
func (p *Provider) Validate(token string) bool {
	parsed, err := p.parse(token)
	return err == nil && parsed.Valid
}

// Identity decodes the subject and roles from a token. The roles claim is
// parsed through the closed Role enumeration; an unknown role is an error.
func (p *Provider) Identity(token string) (string, []domain.Role, error) {
	parsed, err := p.parse(token)
	if err != nil {
		return "", nil, fmt.Errorf("parse token: %w", err)
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return "", nil, domain.NewUnauthorized("invalid token")
	}

	roles := make([]domain.Role, 0, len(claims.Roles))
	for _, name := range claims.Roles {
		role, err := domain.ParseRole(name)
		if err != nil {
			return "", nil, err
		}
		roles = append(roles, role)
	}
	return claims.Subject, roles, nil
}

func (p *Provider) parse(token string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return p.secret, nil
	})
}
