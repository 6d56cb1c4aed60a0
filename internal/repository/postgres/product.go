package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/avolkau/storefront/internal/domain"
)

const productColumns = `id, name, description, price, sku, stock_quantity, category, is_active, version, created_at, updated_at, deleted_at`

// ProductRepository implements domain.ProductRepository for PostgreSQL
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new PostgreSQL product repository
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create creates a new product
func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (name, description, price, sku, stock_quantity, category, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, version, created_at, updated_at
	`

	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	err := r.db.QueryRowxContext(
		ctx,
		query,
		product.Name,
		product.Description,
		product.Price,
		product.SKU,
		product.StockQuantity,
		product.Category,
		product.IsActive,
		product.CreatedAt,
		product.UpdatedAt,
	).Scan(
		&product.ID,
		&product.Version,
		&product.CreatedAt,
		&product.UpdatedAt,
	)

	return err
}

// GetByID retrieves a product by ID within the given visibility scope
func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID, scope domain.Scope) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	if scope == domain.ScopeActive {
		query += ` AND deleted_at IS NULL`
	}

	var product domain.Product
	err := r.db.GetContext(ctx, &product, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return &product, nil
}

// List retrieves a paginated list of products within the given scope
func (r *ProductRepository) List(ctx context.Context, scope domain.Scope, limit, offset int) ([]*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	if scope == domain.ScopeActive {
		query += ` WHERE deleted_at IS NULL`
	}
	query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	var products []*domain.Product
	if err := r.db.SelectContext(ctx, &products, query, limit, offset); err != nil {
		return nil, err
	}

	return products, nil
}

// Count returns the number of products within the given scope
func (r *ProductRepository) Count(ctx context.Context, scope domain.Scope) (int, error) {
	query := `SELECT COUNT(*) FROM products`
	if scope == domain.ScopeActive {
		query += ` WHERE deleted_at IS NULL`
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, err
	}

	return count, nil
}

// Update updates an existing product using an optimistic version check
func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products
		SET name = $1, description = $2, price = $3, sku = $4, stock_quantity = $5,
		    category = $6, is_active = $7, updated_at = $8, version = version + 1
		WHERE id = $9 AND deleted_at IS NULL AND version = $10
		RETURNING version, updated_at
	`

	product.UpdatedAt = time.Now()
	oldVersion := product.Version

	err := r.db.QueryRowxContext(
		ctx,
		query,
		product.Name,
		product.Description,
		product.Price,
		product.SKU,
		product.StockQuantity,
		product.Category,
		product.IsActive,
		product.UpdatedAt,
		product.ID,
		oldVersion,
	).Scan(&product.Version, &product.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrConflict
		}
		return err
	}

	return nil
}

// Delete soft-deletes a product
func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE products
		SET deleted_at = $1, updated_at = $1
		WHERE id = $2 AND deleted_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// DeletePermanently removes a product row entirely
func (r *ProductRepository) DeletePermanently(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// Exists reports whether a non-deleted product with this ID exists
func (r *ProductRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM products WHERE id = $1 AND deleted_at IS NULL)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, id); err != nil {
		return false, err
	}

	return exists, nil
}

// GetBySKU retrieves a non-deleted product by SKU, case-insensitively
func (r *ProductRepository) GetBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE LOWER(sku) = LOWER($1) AND deleted_at IS NULL`

	var product domain.Product
	err := r.db.GetContext(ctx, &product, query, sku)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return &product, nil
}

// GetByCategory retrieves non-deleted products in a category, ordered by name
func (r *ProductRepository) GetByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE LOWER(category) = LOWER($1) AND deleted_at IS NULL
		ORDER BY name
	`

	var products []*domain.Product
	if err := r.db.SelectContext(ctx, &products, query, category); err != nil {
		return nil, err
	}

	return products, nil
}

// GetAvailable retrieves active, in-stock, non-deleted products
func (r *ProductRepository) GetAvailable(ctx context.Context) ([]*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE is_active = TRUE AND stock_quantity > 0 AND deleted_at IS NULL
		ORDER BY name
	`

	var products []*domain.Product
	if err := r.db.SelectContext(ctx, &products, query); err != nil {
		return nil, err
	}

	return products, nil
}

// GetByPriceRange retrieves non-deleted products priced within [min, max]
func (r *ProductRepository) GetByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE price >= $1 AND price <= $2 AND deleted_at IS NULL
		ORDER BY price
	`

	var products []*domain.Product
	if err := r.db.SelectContext(ctx, &products, query, min, max); err != nil {
		return nil, err
	}

	return products, nil
}

// GetLowStock retrieves active, non-deleted products with stock at or below threshold
func (r *ProductRepository) GetLowStock(ctx context.Context, threshold int) ([]*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE is_active = TRUE AND stock_quantity <= $1 AND deleted_at IS NULL
		ORDER BY stock_quantity
	`

	var products []*domain.Product
	if err := r.db.SelectContext(ctx, &products, query, threshold); err != nil {
		return nil, err
	}

	return products, nil
}

// IsSKUUnique reports whether no other non-deleted product carries this SKU
func (r *ProductRepository) IsSKUUnique(ctx context.Context, sku string, excludeID uuid.UUID) (bool, error) {
	query := `
		SELECT NOT EXISTS(
			SELECT 1 FROM products
			WHERE LOWER(sku) = LOWER($1) AND deleted_at IS NULL AND id <> $2
		)
	`

	var unique bool
	if err := r.db.GetContext(ctx, &unique, query, sku, excludeID); err != nil {
		return false, err
	}

	return unique, nil
}
