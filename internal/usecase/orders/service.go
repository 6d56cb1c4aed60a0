package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/avolkau/storefront/internal/domain"
	"github.com/avolkau/storefront/internal/pkg/logger"
	pkgvalidator "github.com/avolkau/storefront/internal/pkg/validator"
)

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
}

// OrderEvent represents an event emitted on order mutations
type OrderEvent struct {
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
	OrderID   uuid.UUID `json:"order_id"`
	Number    string    `json:"number"`
}

// EventsSubject is the NATS subject order events are published to
const EventsSubject = "orders.events"

// Service handles order business logic and event publishing
type Service struct {
	repo      domain.OrderRepository
	products  domain.ProductRepository
	publisher EventPublisher
	validate  *validator.Validate
	logger    *logger.Logger
}

// NewService creates a new order service
func NewService(
	repo domain.OrderRepository,
	products domain.ProductRepository,
	publisher EventPublisher,
	log *logger.Logger,
) *Service {
	return &Service{
		repo:      repo,
		products:  products,
		publisher: publisher,
		validate:  pkgvalidator.Get(),
		logger:    log,
	}
}

// Create creates a new order with its line items. An omitted or zero unit
// price snapshots the product's current price.
func (s *Service) Create(ctx context.Context, order *domain.Order) error {
	if err := s.validate.Struct(order); err != nil {
		s.logger.Error("Order validation failed", err)
		return domain.ErrInvalidInput
	}

	if len(order.Items) == 0 {
		return fmt.Errorf("%w: order must contain at least one line item", domain.ErrInvalidInput)
	}

	exists, err := s.repo.NumberExists(ctx, order.Number)
	if err != nil {
		s.logger.Error("Failed to check order number uniqueness", err)
		return err
	}
	if exists {
		return fmt.Errorf("%w: order number %q is already in use", domain.ErrAlreadyExists, order.Number)
	}

	for idx := range order.Items {
		if err := s.prepareItem(ctx, &order.Items[idx]); err != nil {
			return err
		}
	}

	order.Status = domain.StatusPending

	if err := s.repo.Create(ctx, order); err != nil {
		s.logger.Error("Failed to create order", err)
		return err
	}

	// Re-fetch so items carry product name and SKU
	created, err := s.repo.GetByID(ctx, order.ID, domain.ScopeActive)
	if err != nil {
		s.logger.Error("Failed to reload created order", err)
		return err
	}
	*order = *created

	s.publishEvent("order.created", order)

	s.logger.WithFields(map[string]interface{}{
		"order_id": order.ID,
		"number":   order.Number,
		"items":    order.ProductCount(),
		"amount":   order.TotalAmount().String(),
	}).Info("Order created successfully")

	return nil
}

// prepareItem validates a line item and snapshots the unit price when absent
func (s *Service) prepareItem(ctx context.Context, item *domain.OrderItem) error {
	if item.Quantity <= 0 {
		return fmt.Errorf("%w: line item quantity must be positive", domain.ErrInvalidInput)
	}
	if item.Discount.IsNegative() {
		return fmt.Errorf("%w: line item discount cannot be negative", domain.ErrInvalidInput)
	}

	product, err := s.products.GetByID(ctx, item.ProductID, domain.ScopeActive)
	if err != nil {
		if err == domain.ErrNotFound {
			return fmt.Errorf("%w: product %s not found", domain.ErrInvalidInput, item.ProductID)
		}
		s.logger.Error("Failed to verify line item product", err)
		return err
	}

	if item.UnitPrice.IsZero() {
		item.UnitPrice = product.Price
	}
	if item.UnitPrice.IsNegative() {
		return fmt.Errorf("%w: line item unit price cannot be negative", domain.ErrInvalidInput)
	}

	return nil
}

// GetByID retrieves an order with its line items
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id, domain.ScopeActive)
	if err != nil {
		if err == domain.ErrNotFound {
			s.logger.Debugf("Order not found: %s", id)
		} else {
			s.logger.Error("Failed to get order", err)
		}
		return nil, err
	}

	return order, nil
}

// GetByNumber retrieves an order by its number
func (s *Service) GetByNumber(ctx context.Context, number string) (*domain.Order, error) {
	order, err := s.repo.GetByNumber(ctx, number)
	if err != nil {
		if err == domain.ErrNotFound {
			s.logger.Debugf("Order not found by number: %s", number)
		} else {
			s.logger.Error("Failed to get order by number", err)
		}
		return nil, err
	}

	return order, nil
}

// GetByStatus retrieves orders in a given status
func (s *Service) GetByStatus(ctx context.Context, status string) ([]*domain.Order, error) {
	parsed, err := domain.ParseOrderStatus(status)
	if err != nil {
		return nil, err
	}

	orders, err := s.repo.GetByStatus(ctx, parsed)
	if err != nil {
		s.logger.Error("Failed to get orders by status", err)
		return nil, err
	}

	return orders, nil
}

// GetByDateRange retrieves orders placed within [start, end]
func (s *Service) GetByDateRange(ctx context.Context, start, end time.Time) ([]*domain.Order, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date precedes start date", domain.ErrInvalidInput)
	}

	orders, err := s.repo.GetByDateRange(ctx, start, end)
	if err != nil {
		s.logger.Error("Failed to get orders by date range", err)
		return nil, err
	}

	return orders, nil
}

// GetByProductID retrieves orders containing a given product
func (s *Service) GetByProductID(ctx context.Context, productID uuid.UUID) ([]*domain.Order, error) {
	orders, err := s.repo.GetByProductID(ctx, productID)
	if err != nil {
		s.logger.Error("Failed to get orders by product", err)
		return nil, err
	}

	return orders, nil
}

// List retrieves a paginated list of orders in the requested visibility scope
func (s *Service) List(ctx context.Context, scope domain.Scope, limit, offset int) ([]*domain.Order, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	orders, err := s.repo.List(ctx, scope, limit, offset)
	if err != nil {
		s.logger.Error("Failed to list orders", err)
		return nil, 0, err
	}

	total, err := s.repo.Count(ctx, scope)
	if err != nil {
		s.logger.Error("Failed to count orders", err)
		return nil, 0, err
	}

	return orders, total, nil
}

// Update updates order fields, re-checking number uniqueness when it changed
func (s *Service) Update(ctx context.Context, order *domain.Order) error {
	if err := s.validate.Struct(order); err != nil {
		s.logger.Error("Order validation failed", err)
		return domain.ErrInvalidInput
	}

	existing, err := s.repo.GetByID(ctx, order.ID, domain.ScopeActive)
	if err != nil {
		if err != domain.ErrNotFound {
			s.logger.Error("Failed to get order for update", err)
		}
		return err
	}

	if order.Number != existing.Number {
		exists, err := s.repo.NumberExists(ctx, order.Number)
		if err != nil {
			s.logger.Error("Failed to check order number uniqueness", err)
			return err
		}
		if exists {
			return fmt.Errorf("%w: order number %q is already in use", domain.ErrAlreadyExists, order.Number)
		}
	}

	if err := s.repo.Update(ctx, order); err != nil {
		s.logger.Error("Failed to update order", err)
		return err
	}

	// Re-fetch so items survive the field-only update
	updated, err := s.repo.GetByID(ctx, order.ID, domain.ScopeActive)
	if err != nil {
		s.logger.Error("Failed to reload updated order", err)
		return err
	}
	*order = *updated

	s.publishEvent("order.updated", order)

	s.logger.WithFields(map[string]interface{}{
		"order_id": order.ID,
		"number":   order.Number,
	}).Info("Order updated successfully")

	return nil
}

// Delete soft-deletes an order
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	order, err := s.repo.GetByID(ctx, id, domain.ScopeActive)
	if err != nil {
		if err != domain.ErrNotFound {
			s.logger.Error("Failed to get order for deletion", err)
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete order", err)
		return err
	}

	s.publishEvent("order.deleted", order)

	s.logger.WithFields(map[string]interface{}{
		"order_id": id,
	}).Info("Order deleted successfully")

	return nil
}

// AddProduct appends a line item to an existing order
func (s *Service) AddProduct(ctx context.Context, item *domain.OrderItem) error {
	order, err := s.repo.GetByID(ctx, item.OrderID, domain.ScopeActive)
	if err != nil {
		if err == domain.ErrNotFound {
			return fmt.Errorf("%w: order %s not found", domain.ErrInvalidInput, item.OrderID)
		}
		s.logger.Error("Failed to get order", err)
		return err
	}

	associated, err := s.repo.ItemExists(ctx, item.OrderID, item.ProductID)
	if err != nil {
		s.logger.Error("Failed to check line item association", err)
		return err
	}
	if associated {
		return fmt.Errorf("%w: product %s is already part of order %s", domain.ErrAlreadyExists, item.ProductID, item.OrderID)
	}

	if err := s.prepareItem(ctx, item); err != nil {
		return err
	}

	if err := s.repo.AddItem(ctx, item); err != nil {
		s.logger.Error("Failed to add line item", err)
		return err
	}

	s.publishEvent("order.product_added", order)

	s.logger.WithFields(map[string]interface{}{
		"order_id":   item.OrderID,
		"product_id": item.ProductID,
		"quantity":   item.Quantity,
	}).Info("Product added to order")

	return nil
}

// RemoveProduct removes a line item from an order
func (s *Service) RemoveProduct(ctx context.Context, orderID, productID uuid.UUID) error {
	order, err := s.repo.GetByID(ctx, orderID, domain.ScopeActive)
	if err != nil {
		if err == domain.ErrNotFound {
			return fmt.Errorf("%w: order %s not found", domain.ErrInvalidInput, orderID)
		}
		s.logger.Error("Failed to get order", err)
		return err
	}

	if err := s.repo.RemoveItem(ctx, orderID, productID); err != nil {
		if err == domain.ErrNotFound {
			return fmt.Errorf("%w: product %s is not part of order %s", domain.ErrInvalidInput, productID, orderID)
		}
		s.logger.Error("Failed to remove line item", err)
		return err
	}

	s.publishEvent("order.product_removed", order)

	s.logger.WithFields(map[string]interface{}{
		"order_id":   orderID,
		"product_id": productID,
	}).Info("Product removed from order")

	return nil
}

// Approve transitions a pending order to approved
func (s *Service) Approve(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id, domain.ScopeActive)
	if err != nil {
		if err != domain.ErrNotFound {
			s.logger.Error("Failed to get order for approval", err)
		}
		return nil, err
	}

	if err := order.Approve(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, order); err != nil {
		s.logger.Error("Failed to persist order approval", err)
		return nil, err
	}

	s.publishEvent("order.approved", order)

	s.logger.WithFields(map[string]interface{}{
		"order_id": order.ID,
		"number":   order.Number,
	}).Info("Order approved")

	return order, nil
}

// Cancel transitions a cancelable order to canceled
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id, domain.ScopeActive)
	if err != nil {
		if err != domain.ErrNotFound {
			s.logger.Error("Failed to get order for cancellation", err)
		}
		return nil, err
	}

	if !order.CanCancel() {
		return nil, fmt.Errorf("%w: order %s in status %q cannot be canceled", domain.ErrInvalidTransition, order.Number, order.Status)
	}

	if err := order.Cancel(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, order); err != nil {
		s.logger.Error("Failed to persist order cancellation", err)
		return nil, err
	}

	s.publishEvent("order.canceled", order)

	s.logger.WithFields(map[string]interface{}{
		"order_id": order.ID,
		"number":   order.Number,
	}).Info("Order canceled")

	return order, nil
}

// publishEvent publishes an order event without blocking the request
func (s *Service) publishEvent(eventType string, order *domain.Order) {
	event := OrderEvent{
		EventType: eventType,
		Timestamp: time.Now(),
		OrderID:   order.ID,
		Number:    order.Number,
	}

	data, err := json.Marshal(event)
	if err != nil {
		s.logger.Errorf(err, "Failed to marshal event for order %s", order.ID)
		return
	}

	go func() {
		if err := s.publisher.Publish(context.Background(), EventsSubject, data); err != nil {
			s.logger.Errorf(err, "Failed to publish event for order %s", order.ID)
		}
	}()
}
