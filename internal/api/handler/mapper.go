package handler

import (
	"github.com/hahn-ecommerce/catalog-api/internal/core/domain"
	"github.com/hahn-ecommerce/catalog-api/internal/core/ports"
)

// --- Request → Service input ---

func toRegisterInput(req signupRequest) (ports.RegisterInput, error) {
	roles := make([]domain.Role, 0, len(req.Roles))
	for _, name := range req.Roles {
		role, err := domain.ParseRole(name)
		if err != nil {
			return ports.RegisterInput{}, err
		}
		roles = append(roles, role)
	}
	return ports.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Roles:    roles,
	}, nil
}

func toCreateInput(req createProductRequest) ports.CreateProductInput {
	return ports.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
	}
}

func toUpdateInput(req updateProductRequest) ports.UpdateProductInput {
	return ports.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
	}
}

// --- Service result → HTTP response ---

func toUserResponse(p ports.UserProfile) *userResponse {
	roles := make([]string, len(p.Roles))
	for i, r := range p.Roles {
		roles[i] = string(r)
	}
	return &userResponse{
		ID:       p.ID,
		Username: p.Username,
		Email:    p.Email,
		Active:   p.Active,
		Roles:    roles,
	}
}

func toProductResponse(d *ports.ProductDetail) productResponse {
	return productResponse{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		Quantity:    d.Quantity,
		Active:      d.Active,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

func toProductListResponse(items []ports.ProductDetail) []productResponse {
	out := make([]productResponse, len(items))
	for i := range items {
		out[i] = toProductResponse(&items[i])
	}
	return out
}
