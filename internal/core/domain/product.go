package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	maxProductNameLen        = 255
	maxProductDescriptionLen = 1000
	// Price fits numeric(12,2): up to 10 integer digits, 2 fraction digits.
	priceIntegerDigits  = 10
	priceFractionDigits = 2
)

// priceCeiling is the first value with more than priceIntegerDigits integer
// digits (10^10).
var priceCeiling = decimal.New(1, priceIntegerDigits)

// Product is the catalog aggregate. A product is never physically deleted in
// this core; Deactivate marks it inactive and ListActive queries exclude it.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Active      bool            `json:"active"`
}

// NewProduct validates inputs and returns an active product with equal
// creation and update timestamps. Price must be strictly positive on
// creation; quantity must not be negative.
func NewProduct(name, description string, price decimal.Decimal, quantity int) (*Product, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)

	if name == "" {
		return nil, NewValidation("product name cannot be empty")
	}
	if len(name) > maxProductNameLen {
		return nil, NewValidation("product name must not exceed 255 characters")
	}
	if len(description) > maxProductDescriptionLen {
		return nil, NewValidation("product description must not exceed 1000 characters")
	}
	if !price.IsPositive() {
		return nil, NewValidation("price must be greater than zero")
	}
	if err := checkPriceBounds(price); err != nil {
		return nil, err
	}
	if quantity < 0 {
		return nil, NewValidation("quantity must not be negative")
	}

	now := time.Now().UTC()
	return &Product{
		Name:        name,
		Description: description,
		Price:       price,
		Quantity:    quantity,
		CreatedAt:   now,
		UpdatedAt:   now,
		Active:      true,
	}, nil
}

// UpdateDetails applies a partial update. A field changes only when the
// caller supplied a value: name additionally must be non-blank, price
// additionally non-negative and within digit bounds. Skipped fields are not
// an error. UpdatedAt is refreshed unconditionally.
func (p *Product) UpdateDetails(name, description *string, price *decimal.Decimal) {
	if name != nil {
		if trimmed := strings.TrimSpace(*name); trimmed != "" && len(trimmed) <= maxProductNameLen {
			p.Name = trimmed
		}
	}
	if description != nil {
		if trimmed := strings.TrimSpace(*description); len(trimmed) <= maxProductDescriptionLen {
			p.Description = trimmed
		}
	}
	if price != nil {
		if !price.IsNegative() && checkPriceBounds(*price) == nil {
			p.Price = *price
		}
	}
	p.UpdatedAt = time.Now().UTC()
}

// AdjustQuantity applies a signed delta. A delta that would drive the
// quantity below zero is rejected and the product is left unchanged.
func (p *Product) AdjustQuantity(delta int) error {
	if p.Quantity+delta < 0 {
		return NewValidation("insufficient quantity")
	}
	p.Quantity += delta
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func (p *Product) Activate() {
	p.Active = true
	p.UpdatedAt = time.Now().UTC()
}

func (p *Product) Deactivate() {
	p.Active = false
	p.UpdatedAt = time.Now().UTC()
}

// checkPriceBounds enforces the numeric(12,2) shape: at most two fraction
// digits and ten integer digits.
func checkPriceBounds(price decimal.Decimal) error {
	if !price.Equal(price.Truncate(priceFractionDigits)) {
		return NewValidation("price must have at most 2 fraction digits")
	}
	if price.Abs().Cmp(priceCeiling) >= 0 {
		return NewValidation("price must have at most 10 integer digits")
	}
	return nil
}
