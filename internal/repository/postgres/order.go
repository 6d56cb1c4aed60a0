package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/avolkau/storefront/internal/domain"
)

const orderColumns = `id, number, description, status, order_date, version, created_at, updated_at, deleted_at`

// OrderRepository implements domain.OrderRepository for PostgreSQL.
// Every read loads line items eagerly, joined with product name and SKU.
type OrderRepository struct {
	db *sqlx.DB
}

// NewOrderRepository creates a new PostgreSQL order repository
func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create persists the order and its line items in a single transaction
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO orders (number, description, status, order_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, version, created_at, updated_at
	`

	now := time.Now()
	order.OrderDate = now
	order.CreatedAt = now
	order.UpdatedAt = now

	err = tx.QueryRowxContext(
		ctx,
		query,
		order.Number,
		order.Description,
		order.Status,
		order.OrderDate,
		order.CreatedAt,
		order.UpdatedAt,
	).Scan(
		&order.ID,
		&order.Version,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return err
	}

	itemQuery := `
		INSERT INTO order_products (order_id, product_id, quantity, unit_price, discount, added_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	for idx := range order.Items {
		item := &order.Items[idx]
		item.OrderID = order.ID
		item.AddedAt = now

		if _, err := tx.ExecContext(
			ctx,
			itemQuery,
			item.OrderID,
			item.ProductID,
			item.Quantity,
			item.UnitPrice,
			item.Discount,
			item.AddedAt,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetByID retrieves an order by ID within the given visibility scope
func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID, scope domain.Scope) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	if scope == domain.ScopeActive {
		query += ` AND deleted_at IS NULL`
	}

	var order domain.Order
	err := r.db.GetContext(ctx, &order, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if err := r.loadItems(ctx, &order); err != nil {
		return nil, err
	}

	return &order, nil
}

// List retrieves a paginated list of orders within the given scope
func (r *OrderRepository) List(ctx context.Context, scope domain.Scope, limit, offset int) ([]*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	if scope == domain.ScopeActive {
		query += ` WHERE deleted_at IS NULL`
	}
	query += ` ORDER BY order_date DESC LIMIT $1 OFFSET $2`

	var orders []*domain.Order
	if err := r.db.SelectContext(ctx, &orders, query, limit, offset); err != nil {
		return nil, err
	}

	if err := r.loadItemsForAll(ctx, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

// Count returns the number of orders within the given scope
func (r *OrderRepository) Count(ctx context.Context, scope domain.Scope) (int, error) {
	query := `SELECT COUNT(*) FROM orders`
	if scope == domain.ScopeActive {
		query += ` WHERE deleted_at IS NULL`
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, err
	}

	return count, nil
}

// Update updates order fields using an optimistic version check
func (r *OrderRepository) Update(ctx context.Context, order *domain.Order) error {
	query := `
		UPDATE orders
		SET number = $1, description = $2, status = $3, updated_at = $4, version = version + 1
		WHERE id = $5 AND deleted_at IS NULL AND version = $6
		RETURNING version, updated_at
	`

	order.UpdatedAt = time.Now()
	oldVersion := order.Version

	err := r.db.QueryRowxContext(
		ctx,
		query,
		order.Number,
		order.Description,
		order.Status,
		order.UpdatedAt,
		order.ID,
		oldVersion,
	).Scan(&order.Version, &order.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrConflict
		}
		return err
	}

	return nil
}

// Delete soft-deletes an order. Line items stay in place so the order can
// still be inspected through ScopeAll reads.
func (r *OrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE orders
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

// DeletePermanently removes an order row entirely; items go with it via FK cascade
func (r *OrderRepository) DeletePermanently(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
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

// GetByNumber retrieves a non-deleted order by its number
func (r *OrderRepository) GetByNumber(ctx context.Context, number string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE number = $1 AND deleted_at IS NULL`

	var order domain.Order
	err := r.db.GetContext(ctx, &order, query, number)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if err := r.loadItems(ctx, &order); err != nil {
		return nil, err
	}

	return &order, nil
}

// GetByStatus retrieves non-deleted orders in a status, newest order date first
func (r *OrderRepository) GetByStatus(ctx context.Context, status domain.OrderStatus) ([]*domain.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE status = $1 AND deleted_at IS NULL
		ORDER BY order_date DESC
	`

	var orders []*domain.Order
	if err := r.db.SelectContext(ctx, &orders, query, status); err != nil {
		return nil, err
	}

	if err := r.loadItemsForAll(ctx, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

// GetByDateRange retrieves non-deleted orders placed within [start, end],
// comparing on the date portion only
func (r *OrderRepository) GetByDateRange(ctx context.Context, start, end time.Time) ([]*domain.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE order_date::date >= $1::date AND order_date::date <= $2::date AND deleted_at IS NULL
		ORDER BY order_date DESC
	`

	var orders []*domain.Order
	if err := r.db.SelectContext(ctx, &orders, query, start, end); err != nil {
		return nil, err
	}

	if err := r.loadItemsForAll(ctx, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

// GetByProductID retrieves non-deleted orders whose line items reference a product
func (r *OrderRepository) GetByProductID(ctx context.Context, productID uuid.UUID) ([]*domain.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE deleted_at IS NULL
		  AND id IN (SELECT order_id FROM order_products WHERE product_id = $1)
		ORDER BY order_date DESC
	`

	var orders []*domain.Order
	if err := r.db.SelectContext(ctx, &orders, query, productID); err != nil {
		return nil, err
	}

	if err := r.loadItemsForAll(ctx, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

// NumberExists reports whether a non-deleted order with this number exists
func (r *OrderRepository) NumberExists(ctx context.Context, number string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM orders WHERE number = $1 AND deleted_at IS NULL)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, number); err != nil {
		return false, err
	}

	return exists, nil
}

// AddItem appends a line item to an order
func (r *OrderRepository) AddItem(ctx context.Context, item *domain.OrderItem) error {
	query := `
		INSERT INTO order_products (order_id, product_id, quantity, unit_price, discount, added_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	item.AddedAt = time.Now()

	_, err := r.db.ExecContext(
		ctx,
		query,
		item.OrderID,
		item.ProductID,
		item.Quantity,
		item.UnitPrice,
		item.Discount,
		item.AddedAt,
	)

	return err
}

// RemoveItem removes a line item from an order
func (r *OrderRepository) RemoveItem(ctx context.Context, orderID, productID uuid.UUID) error {
	query := `DELETE FROM order_products WHERE order_id = $1 AND product_id = $2`

	result, err := r.db.ExecContext(ctx, query, orderID, productID)
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

// ItemExists reports whether the order already carries this product
func (r *OrderRepository) ItemExists(ctx context.Context, orderID, productID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM order_products WHERE order_id = $1 AND product_id = $2)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, orderID, productID); err != nil {
		return false, err
	}

	return exists, nil
}

const itemColumns = `
	oi.order_id, oi.product_id, oi.quantity, oi.unit_price, oi.discount, oi.added_at,
	p.name AS product_name, p.sku AS product_sku
`

// loadItems loads the line items for a single order
func (r *OrderRepository) loadItems(ctx context.Context, order *domain.Order) error {
	query := `
		SELECT ` + itemColumns + `
		FROM order_products oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = $1
		ORDER BY oi.added_at
	`

	var items []domain.OrderItem
	if err := r.db.SelectContext(ctx, &items, query, order.ID); err != nil {
		return err
	}

	order.Items = items
	return nil
}

// loadItemsForAll loads line items for a batch of orders in one query
func (r *OrderRepository) loadItemsForAll(ctx context.Context, orders []*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]string, len(orders))
	byID := make(map[uuid.UUID]*domain.Order, len(orders))
	for i, order := range orders {
		ids[i] = order.ID.String()
		byID[order.ID] = order
	}

	query := `
		SELECT ` + itemColumns + `
		FROM order_products oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ANY($1::uuid[])
		ORDER BY oi.added_at
	`

	var items []domain.OrderItem
	if err := r.db.SelectContext(ctx, &items, query, pq.Array(ids)); err != nil {
		return err
	}

	for _, item := range items {
		if order, ok := byID[item.OrderID]; ok {
			order.Items = append(order.Items, item)
		}
	}

	return nil
}
