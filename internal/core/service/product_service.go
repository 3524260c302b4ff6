package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/hahn-ecommerce/catalog-api/internal/core/domain"
	"github.com/hahn-ecommerce/catalog-api/internal/core/ports"
)

// ProductService orchestrates catalog CRUD against the product store,
// applying aggregate invariants. Deletion is logical only.
type ProductService struct {
	repo   ports.ProductRepository
	logger zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, logger: logger}
}

// Create validates through the aggregate factory and persists. The returned
// detail includes the store-assigned ID and timestamps.
func (s *ProductService) Create(ctx context.Context, input ports.CreateProductInput) (*ports.ProductDetail, error) {
	product, err := domain.NewProduct(input.Name, input.Description, input.Price, input.Quantity)
	if err != nil {
		return nil, err
	}

	saved, err := s.repo.Save(ctx, product)
	if err != nil {
		s.logger.Error().Err(err).Str("name", product.Name).Msg("failed to create product")
		return nil, err
	}

	s.logger.Info().Str("product_id", saved.ID).Str("name", saved.Name).Msg("product created")
	detail := toDetail(saved)
	return &detail, nil
}

// ListActive returns only active products, in store order.
func (s *ProductService) ListActive(ctx context.Context) ([]ports.ProductDetail, error) {
	products, err := s.repo.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]ports.ProductDetail, len(products))
	for i, p := range products {
		out[i] = toDetail(p)
	}
	return out, nil
}

func (s *ProductService) GetByID(ctx context.Context, id string) (*ports.ProductDetail, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := toDetail(product)
	return &detail, nil
}

// Update loads the record and applies the partial-update rule: a field is
// changed only when supplied. A supplied quantity is applied as the delta
// against the current quantity, so the stored value ends up equal to it
// while rejection runs through the same invariant as a direct adjustment.
func (s *ProductService) Update(ctx context.Context, id string, input ports.UpdateProductInput) (*ports.ProductDetail, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.UpdateDetails(input.Name, input.Description, input.Price)

	if input.Quantity != nil {
		delta := *input.Quantity - product.Quantity
		if err := product.AdjustQuantity(delta); err != nil {
			return nil, err
		}
	}

	saved, err := s.repo.Save(ctx, product)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to update product")
		return nil, err
	}

	s.logger.Info().Str("product_id", saved.ID).Msg("product updated")
	detail := toDetail(saved)
	return &detail, nil
}

// Delete is logical: the product is deactivated and persisted, remaining
// queryable by ID but excluded from ListActive.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	product.Deactivate()

	if _, err := s.repo.Save(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to deactivate product")
		return err
	}

	s.logger.Info().Str("product_id", id).Msg("product deactivated")
	return nil
}

func toDetail(p *domain.Product) ports.ProductDetail {
	return ports.ProductDetail{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
