package worker

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/avolkau/storefront/internal/pkg/logger"
)

// Deducter applies approved orders to product stock levels
type Deducter struct {
	db     *sqlx.DB
	logger *logger.Logger
}

// NewDeducter creates a new stock deducter
func NewDeducter(db *sqlx.DB, logger *logger.Logger) *Deducter {
	return &Deducter{
		db:     db,
		logger: logger,
	}
}

// DeductForOrder subtracts an approved order's line item quantities from
// product stock. The order is claimed first: once stock_applied_at is set the
// order is never applied again, so redelivered events are no-ops.
func (d *Deducter) DeductForOrder(ctx context.Context, orderID uuid.UUID) error {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()

	claim := `
		UPDATE orders
		SET stock_applied_at = $2
		WHERE id = $1
		  AND status = 'approved'
		  AND deleted_at IS NULL
		  AND stock_applied_at IS NULL
	`

	result, err := tx.ExecContext(ctx, claim, orderID, now)
	if err != nil {
		return fmt.Errorf("failed to claim order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	// Order missing, deleted, not approved, or already applied - not an error
	if rowsAffected == 0 {
		d.logger.WithFields(map[string]any{
			"order_id": orderID.String(),
		}).Info("Order not eligible for stock deduction, skipping")
		return nil
	}

	deduct := `
		UPDATE products p
		SET
			stock_quantity = p.stock_quantity - oi.quantity,
			updated_at = $2,
			version = p.version + 1
		FROM order_products oi
		WHERE oi.order_id = $1
		  AND oi.product_id = p.id
		  AND p.deleted_at IS NULL
		  AND p.stock_quantity >= oi.quantity
	`

	result, err = tx.ExecContext(ctx, deduct, orderID, now)
	if err != nil {
		return fmt.Errorf("failed to deduct stock: %w", err)
	}

	updated, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	d.logger.WithFields(map[string]any{
		"order_id":         orderID.String(),
		"products_updated": updated,
	}).Info("Successfully applied order to stock")

	return nil
}

// Applied reports whether an order's stock deduction has run (used in tests)
func (d *Deducter) Applied(ctx context.Context, orderID uuid.UUID) (bool, error) {
	var appliedAt sql.NullTime
	query := `SELECT stock_applied_at FROM orders WHERE id = $1 AND deleted_at IS NULL`

	err := d.db.GetContext(ctx, &appliedAt, query, orderID)
	if err != nil {
		return false, fmt.Errorf("failed to get stock_applied_at: %w", err)
	}

	return appliedAt.Valid, nil
}
