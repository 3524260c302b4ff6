package ports

import "github.com/hahn-ecommerce/catalog-api/internal/core/domain"

// TokenProvider is the stateless token codec: it creates and verifies signed
// tokens carrying identity and roles. Implementations hold only read-only
// key material and are safe for concurrent use.
type TokenProvider interface {
	CreateAccessToken(subject string, roles []domain.Role) (string, error)
	CreateRefreshToken(subject string, roles []domain.Role) (string, error)

	// Validate fails closed: it returns false on expired, malformed, or
	// badly signed tokens and never reports why.
	Validate(token string) bool

	// Identity decodes the subject and roles. Callers validate first; an
	// invalid token yields an error.
	Identity(token string) (string, []domain.Role, error)
}
