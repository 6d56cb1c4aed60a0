package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus enumerates the order lifecycle states
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusApproved   OrderStatus = "approved"
	StatusRejected   OrderStatus = "rejected"
	StatusCanceled   OrderStatus = "canceled"
	StatusCompleted  OrderStatus = "completed"
)

// ParseOrderStatus converts a string into a known OrderStatus
func ParseOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	switch status {
	case StatusPending, StatusProcessing, StatusApproved, StatusRejected, StatusCanceled, StatusCompleted:
		return status, nil
	}
	return "", fmt.Errorf("%w: unknown order status %q", ErrInvalidInput, s)
}

// Order represents a customer order and owns its line items
type Order struct {
	ID          uuid.UUID   `json:"id" db:"id"`
	Number      string      `json:"number" db:"number" validate:"required,min=3,max=50"`
	Description string      `json:"description" db:"description" validate:"required,min=10,max=500"`
	Status      OrderStatus `json:"status" db:"status"`
	OrderDate   time.Time   `json:"order_date" db:"order_date"`
	Version     int         `json:"version" db:"version"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`
	DeletedAt   *time.Time  `json:"deleted_at,omitempty" db:"deleted_at"`
	Items       []OrderItem `json:"items" db:"-"`
}

// OrderItem is a line item linking an order to a product. UnitPrice is a
// snapshot taken when the item was added, so historical orders stay intact
// when the product's current price changes.
type OrderItem struct {
	OrderID     uuid.UUID       `json:"order_id" db:"order_id"`
	ProductID   uuid.UUID       `json:"product_id" db:"product_id" validate:"required"`
	Quantity    int             `json:"quantity" db:"quantity" validate:"min=1"`
	UnitPrice   decimal.Decimal `json:"unit_price" db:"unit_price"`
	Discount    decimal.Decimal `json:"discount" db:"discount"`
	AddedAt     time.Time       `json:"added_at" db:"added_at"`
	ProductName string          `json:"product_name,omitempty" db:"product_name"`
	ProductSKU  string          `json:"product_sku,omitempty" db:"product_sku"`
}

// LineTotal returns quantity * unit price minus the flat discount
func (i *OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity))).Sub(i.Discount)
}

// TotalAmount sums the line totals of all items
func (o *Order) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for idx := range o.Items {
		total = total.Add(o.Items[idx].LineTotal())
	}
	return total
}

// ProductCount returns the number of line items
func (o *Order) ProductCount() int {
	return len(o.Items)
}

// TotalQuantity sums the quantities of all items
func (o *Order) TotalQuantity() int {
	qty := 0
	for idx := range o.Items {
		qty += o.Items[idx].Quantity
	}
	return qty
}

// Deleted reports whether the order is soft-deleted
func (o *Order) Deleted() bool {
	return o.DeletedAt != nil
}

// CanCancel reports whether the order is in a cancelable state
func (o *Order) CanCancel() bool {
	return o.Status == StatusPending || o.Status == StatusProcessing
}

// Approve transitions the order from pending to approved
func (o *Order) Approve() error {
	if o.Status != StatusPending {
		return fmt.Errorf("%w: cannot approve order in status %q", ErrInvalidTransition, o.Status)
	}

	o.Status = StatusApproved
	return nil
}

// Cancel transitions the order to canceled from pending or processing
func (o *Order) Cancel() error {
	if !o.CanCancel() {
		return fmt.Errorf("%w: cannot cancel order in status %q", ErrInvalidTransition, o.Status)
	}

	o.Status = StatusCanceled
	return nil
}

// OrderRepository defines the interface for order data access.
// All reads eager-load line items with their product name and SKU.
type OrderRepository interface {
	// Create persists the order together with its line items in one transaction
	Create(ctx context.Context, order *Order) error

	// GetByID retrieves an order by ID within the given visibility scope
	GetByID(ctx context.Context, id uuid.UUID, scope Scope) (*Order, error)

	// List retrieves a paginated list of orders within the given scope, newest first
	List(ctx context.Context, scope Scope, limit, offset int) ([]*Order, error)

	// Count returns the number of orders within the given scope
	Count(ctx context.Context, scope Scope) (int, error)

	// Update updates order fields (optimistic version check); items are managed separately
	Update(ctx context.Context, order *Order) error

	// Delete soft-deletes an order
	Delete(ctx context.Context, id uuid.UUID) error

	// DeletePermanently removes an order row and its items entirely
	DeletePermanently(ctx context.Context, id uuid.UUID) error

	// GetByNumber retrieves a non-deleted order by its number
	GetByNumber(ctx context.Context, number string) (*Order, error)

	// GetByStatus retrieves non-deleted orders in a status, newest order date first
	GetByStatus(ctx context.Context, status OrderStatus) ([]*Order, error)

	// GetByDateRange retrieves non-deleted orders whose order date falls within
	// [start, end], inclusive on the date portion
	GetByDateRange(ctx context.Context, start, end time.Time) ([]*Order, error)

	// GetByProductID retrieves non-deleted orders containing a given product
	GetByProductID(ctx context.Context, productID uuid.UUID) ([]*Order, error)

	// NumberExists reports whether a non-deleted order with this number exists
	NumberExists(ctx context.Context, number string) (bool, error)

	// AddItem appends a line item to an order
	AddItem(ctx context.Context, item *OrderItem) error

	// RemoveItem removes a line item; ErrNotFound when the pair is not associated
	RemoveItem(ctx context.Context, orderID, productID uuid.UUID) error

	// ItemExists reports whether the order already carries this product
	ItemExists(ctx context.Context, orderID, productID uuid.UUID) (bool, error)
}
