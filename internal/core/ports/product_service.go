package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductInput carries the validated payload to create a product.
type CreateProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Quantity    int
}

// UpdateProductInput holds optional mutation values. A nil field is left
// untouched; a supplied Quantity is applied as a delta against the current
// quantity so the stored value ends up equal to it.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Quantity    *int
}

// ProductDetail is the service-level view of a product.
type ProductDetail struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Quantity    int
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductService defines the catalog use cases.
type ProductService interface {
	Create(ctx context.Context, input CreateProductInput) (*ProductDetail, error)
	// ListActive returns active products only, in store order.
	ListActive(ctx context.Context) ([]ProductDetail, error)
	GetByID(ctx context.Context, id string) (*ProductDetail, error)
	Update(ctx context.Context, id string, input UpdateProductInput) (*ProductDetail, error)
	// Delete deactivates the product; the record remains readable by ID.
	Delete(ctx context.Context, id string) error
}
