package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a catalog product
type Product struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	Name          string          `json:"name" db:"name" validate:"required,min=2,max=200"`
	Description   *string         `json:"description,omitempty" db:"description" validate:"omitempty,max=1000"`
	Price         decimal.Decimal `json:"price" db:"price"`
	SKU           string          `json:"sku" db:"sku" validate:"required,min=3,max=50"`
	StockQuantity int             `json:"stock_quantity" db:"stock_quantity" validate:"min=0"`
	Category      string          `json:"category" db:"category" validate:"required,min=2,max=100"`
	IsActive      bool            `json:"is_active" db:"is_active"`
	Version       int             `json:"version" db:"version"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
	DeletedAt     *time.Time      `json:"deleted_at,omitempty" db:"deleted_at"`
}

// Available reports whether the product can be sold right now
func (p *Product) Available() bool {
	return p.IsActive && p.StockQuantity > 0
}

// Deleted reports whether the product is soft-deleted
func (p *Product) Deleted() bool {
	return p.DeletedAt != nil
}

// IsSKUValid reports whether a SKU has an acceptable shape
func IsSKUValid(sku string) bool {
	trimmed := strings.TrimSpace(sku)
	return trimmed != "" && len(trimmed) >= 3
}

// DiscountedPrice returns the price after applying a percentage discount
func (p *Product) DiscountedPrice(percent float64) (decimal.Decimal, error) {
	if percent < 0 || percent > 100 {
		return decimal.Zero, fmt.Errorf("%w: discount percent must be between 0 and 100", ErrInvalidInput)
	}

	factor := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(percent).Div(decimal.NewFromInt(100)))
	return p.Price.Mul(factor), nil
}

// ReduceStock decreases stock by qty. Stock is left untouched when the
// quantity is non-positive or exceeds what is on hand.
func (p *Product) ReduceStock(qty int) error {
	if qty <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}
	if qty > p.StockQuantity {
		return fmt.Errorf("%w: insufficient stock (%d on hand, %d requested)", ErrInvalidInput, p.StockQuantity, qty)
	}

	p.StockQuantity -= qty
	return nil
}

// AddStock increases stock by qty
func (p *Product) AddStock(qty int) error {
	if qty <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}

	p.StockQuantity += qty
	return nil
}

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	// Create creates a new product
	Create(ctx context.Context, product *Product) error

	// GetByID retrieves a product by ID within the given visibility scope
	GetByID(ctx context.Context, id uuid.UUID, scope Scope) (*Product, error)

	// List retrieves a paginated list of products within the given scope
	List(ctx context.Context, scope Scope, limit, offset int) ([]*Product, error)

	// Count returns the number of products within the given scope
	Count(ctx context.Context, scope Scope) (int, error)

	// Update updates an existing product (optimistic version check)
	Update(ctx context.Context, product *Product) error

	// Delete soft-deletes a product
	Delete(ctx context.Context, id uuid.UUID) error

	// DeletePermanently removes a product row entirely
	DeletePermanently(ctx context.Context, id uuid.UUID) error

	// Exists reports whether a non-deleted product with this ID exists
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// GetBySKU retrieves a non-deleted product by SKU (case-insensitive)
	GetBySKU(ctx context.Context, sku string) (*Product, error)

	// GetByCategory retrieves non-deleted products in a category (case-insensitive), ordered by name
	GetByCategory(ctx context.Context, category string) ([]*Product, error)

	// GetAvailable retrieves active, in-stock, non-deleted products
	GetAvailable(ctx context.Context) ([]*Product, error)

	// GetByPriceRange retrieves non-deleted products priced within [min, max]
	GetByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]*Product, error)

	// GetLowStock retrieves active, non-deleted products with stock at or below threshold
	GetLowStock(ctx context.Context, threshold int) ([]*Product, error)

	// IsSKUUnique reports whether no other non-deleted product carries this SKU
	// (case-insensitive). excludeID skips one product, for update checks.
	IsSKUUnique(ctx context.Context, sku string, excludeID uuid.UUID) (bool, error)
}
