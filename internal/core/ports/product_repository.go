package ports

import (
	"context"

	"github.com/hahn-ecommerce/catalog-api/internal/core/domain"
)

// ProductRepository defines persistence operations for products. Save
// assigns the ID on first save. DeleteByID physically removes a record; the
// service layer prefers logical deletion and never calls it, but the store
// contract keeps it for operational tooling.
type ProductRepository interface {
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	FindAll(ctx context.Context) ([]*domain.Product, error)
	FindActive(ctx context.Context) ([]*domain.Product, error)
	DeleteByID(ctx context.Context, id string) error
}
