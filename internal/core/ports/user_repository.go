package ports

import (
	"context"

	"github.com/hahn-ecommerce/catalog-api/internal/core/domain"
)

// UserRepository defines the credential store contract. Save assigns the ID
// on first save; username and email are unique at the store boundary, and a
// violation surfaces as a domain conflict error.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
}
