package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avolkau/storefront/internal/delivery/http/request"
	"github.com/avolkau/storefront/internal/delivery/http/response"
	"github.com/avolkau/storefront/internal/domain"
	"github.com/avolkau/storefront/internal/pkg/logger"
	"github.com/avolkau/storefront/internal/usecase/orders"
)

// OrderHandler handles HTTP requests for orders
type OrderHandler struct {
	service *orders.Service
	logger  *logger.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(service *orders.Service, log *logger.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  log,
	}
}

// OrderItemRequest is a line item in a create-order or add-product request.
// A zero or omitted unit price snapshots the product's current price.
type OrderItemRequest struct {
	ProductID uuid.UUID       `json:"product_id" validate:"required"`
	Quantity  int             `json:"quantity" validate:"min=1"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
}

// CreateOrderRequest represents the request body for creating an order
type CreateOrderRequest struct {
	Number      string             `json:"number" validate:"required,min=3,max=50"`
	Description string             `json:"description" validate:"required,min=10,max=500"`
	Items       []OrderItemRequest `json:"items" validate:"required,min=1"`
}

// UpdateOrderRequest represents the request body for updating an order
type UpdateOrderRequest struct {
	Number      string `json:"number" validate:"required,min=3,max=50"`
	Description string `json:"description" validate:"required,min=10,max=500"`
	Status      string `json:"status" validate:"required"`
}

// OrderItemResponse is the line-item shape returned to clients
type OrderItemResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	ProductSKU  string          `json:"product_sku,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
	LineTotal   decimal.Decimal `json:"line_total"`
	AddedAt     time.Time       `json:"added_at"`
}

// OrderResponse is the full order shape with line-item detail
type OrderResponse struct {
	ID            uuid.UUID           `json:"id"`
	Number        string              `json:"number"`
	Description   string              `json:"description"`
	Status        domain.OrderStatus  `json:"status"`
	OrderDate     time.Time           `json:"order_date"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	ProductCount  int                 `json:"product_count"`
	TotalQuantity int                 `json:"total_quantity"`
	IsDeleted     bool                `json:"is_deleted"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
	Items         []OrderItemResponse `json:"items"`
}

// OrderSummaryResponse is the list shape without line-item detail
type OrderSummaryResponse struct {
	ID           uuid.UUID          `json:"id"`
	Number       string             `json:"number"`
	Description  string             `json:"description"`
	Status       domain.OrderStatus `json:"status"`
	OrderDate    time.Time          `json:"order_date"`
	TotalAmount  decimal.Decimal    `json:"total_amount"`
	ProductCount int                `json:"product_count"`
	IsDeleted    bool               `json:"is_deleted"`
}

func toOrderResponse(o *domain.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for idx := range o.Items {
		item := &o.Items[idx]
		items = append(items, OrderItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			ProductSKU:  item.ProductSKU,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Discount:    item.Discount,
			LineTotal:   item.LineTotal(),
			AddedAt:     item.AddedAt,
		})
	}

	return OrderResponse{
		ID:            o.ID,
		Number:        o.Number,
		Description:   o.Description,
		Status:        o.Status,
		OrderDate:     o.OrderDate,
		TotalAmount:   o.TotalAmount(),
		ProductCount:  o.ProductCount(),
		TotalQuantity: o.TotalQuantity(),
		IsDeleted:     o.Deleted(),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
		Items:         items,
	}
}

func toOrderSummaries(list []*domain.Order) []OrderSummaryResponse {
	out := make([]OrderSummaryResponse, 0, len(list))
	for _, o := range list {
		out = append(out, OrderSummaryResponse{
			ID:           o.ID,
			Number:       o.Number,
			Description:  o.Description,
			Status:       o.Status,
			OrderDate:    o.OrderDate,
			TotalAmount:  o.TotalAmount(),
			ProductCount: o.ProductCount(),
			IsDeleted:    o.Deleted(),
		})
	}
	return out
}

// Create handles POST /api/v1/orders
// @Summary Create a new order
// @Description Create an order with at least one line item; the order number must be unique
// @Tags Orders
// @Accept json
// @Produce json
// @Param order body CreateOrderRequest true "Order details"
// @Success 201 {object} response.Envelope "Order created"
// @Failure 400 {object} response.Envelope "Invalid request or rule violation"
// @Router /orders [post]
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order := &domain.Order{
		Number:      req.Number,
		Description: req.Description,
	}
	for _, item := range req.Items {
		order.Items = append(order.Items, domain.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Discount:  item.Discount,
		})
	}

	if err := h.service.Create(r.Context(), order); err != nil {
		h.handleError(w, err)
		return
	}

	location := fmt.Sprintf("/api/v1/orders/%s", order.ID)
	response.Created(w, location, toOrderResponse(order))
}

// GetByID handles GET /api/v1/orders/:id
// @Summary Get an order by ID with line-item detail
// @Tags Orders
// @Produce json
// @Param id path string true "Order ID (UUID)"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope "Order not found"
// @Router /orders/{id} [get]
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUUIDParam(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	order, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, "", toOrderResponse(order))
}

// GetByNumber handles GET /api/v1/orders/number/:number
// @Summary Get an order by its number
// @Tags Orders
// @Produce json
// @Param number path string true "Order number"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope "Order not found"
// @Router /orders/number/{number} [get]
func (h *OrderHandler) GetByNumber(w http.ResponseWriter, r *http.Request) {
	number, err := request.GetStringParam(r, "number")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid order number")
		return
	}

	order, err := h.service.GetByNumber(r.Context(), number)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, "", toOrderResponse(order))
}

// List handles GET /api/v1/orders
// @Summary List orders as summaries
// @Description Paginated summary listing; scope=all includes soft-deleted rows
// @Tags Orders
// @Produce json
// @Param limit query int false "Items per page (max 100)" default(20)
// @Param offset query int false "Items to skip" default(0)
// @Param scope query string false "Visibility scope: active or all" default(active)
// @Success 200 {object} response.Envelope
// @Router /orders [get]
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := request.GetPaginationParams(r)
	scope := request.GetScopeQuery(r)

	list, total, err := h.service.List(r.Context(), scope, limit, offset)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Paginated(w, toOrderSummaries(list), total, limit, offset)
}

// GetByStatus handles GET /api/v1/orders/status/:status
// @Summary List orders in a given status, newest first
// @Tags Orders
// @Produce json
// @Param status path string true "Order status"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope "Unknown status"
// @Router /orders/status/{status} [get]
func (h *OrderHandler) GetByStatus(w http.ResponseWriter, r *http.Request) {
	status, err := request.GetStringParam(r, "status")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid status")
		return
	}

	list, err := h.service.GetByStatus(r.Context(), status)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, "", toOrderSummaries(list))
}

// GetByDateRange handles GET /api/v1/orders/date-range
// @Summary List orders placed within an inclusive date range
// @Tags Orders
// @Produce json
// @Param start query string true "Start date (YYYY-MM-DD)"
// @Param end query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope "Invalid dates"
// @Router /orders/date-range [get]
func (h *OrderHandler) GetByDateRange(w http.ResponseWriter, r *http.Request) {
	start, err := request.GetDateQuery(r, "start")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid start date")
		return
	}

	end, err := request.GetDateQuery(r, "end")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid end date")
		return
	}

	list, err := h.service.GetByDateRange(r.Context(), start, end)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, "", toOrderSummaries(list))
}

// GetByProduct handles GET /api/v1/orders/product/:productId
// @Summary List orders containing a given product
// @Tags Orders
// @Produce json
// @Param productId path string true "Product ID (UUID)"
// @Success 200 {object} response.Envelope
// @Router /orders/product/{productId} [get]
func (h *OrderHandler) GetByProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := request.GetUUIDParam(r, "productId")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	list, err := h.service.GetByProductID(r.Context(), productID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, "", toOrderSummaries(list))
}

// Update handles PUT /api/v1/orders/:id
// @Summary Update order fields
// @Tags Orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID (UUID)"
// @Param order body UpdateOrderRequest true "Updated order details"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope "Invalid request"
// @Failure 404 {object} response.Envelope "Order not found"
// @Router /orders/{id} [put]
func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUUIDParam(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var req UpdateOrderRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	status, err := domain.ParseOrderStatus(req.Status)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Unknown order status")
		return
	}

	existing, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.handleError(w, err)
		return
	}

	order := &domain.Order{
		ID:          id,
		Number:      req.Number,
		Description: req.Description,
		Status:      status,
		Version:     existing.Version,
	}

	if err := h.service.Update(r.Context(), order); err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, "Order updated", toOrderResponse(order))
}

// Delete handles DELETE /api/v1/orders/:id
// @Summary Soft-delete an order
// @Tags Orders
// @Produce json
// @Param id path string true "Order ID (UUID)"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope "Order not found"
// @Router /orders/{id} [delete]
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUUIDParam(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, "Order deleted", nil)
}

// AddProduct handles POST /api/v1/orders/:id/products
// @Summary Add a product to an order
// @Tags Orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID (UUID)"
// @Param item body OrderItemRequest true "Line item"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope "Order or product missing, or already associated"
// @Router /orders/{id}/products [post]
func (h *OrderHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUUIDParam(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var req OrderItemRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item := &domain.OrderItem{
		OrderID:   id,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
		Discount:  req.Discount,
	}

	if err := h.service.AddProduct(r.Context(), item); err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, "Product added to order", nil)
}

// RemoveProduct handles DELETE /api/v1/orders/:id/products/:productId
// @Summary Remove a product from an order
// @Tags Orders
// @Produce json
// @Param id path string true "Order ID (UUID)"
// @Param productId path string true "Product ID (UUID)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope "Order missing or product not associated"
// @Router /orders/{id}/products/{productId} [delete]
func (h *OrderHandler) RemoveProduct(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUUIDParam(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	productID, err := request.GetUUIDParam(r, "productId")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	if err := h.service.RemoveProduct(r.Context(), id, productID); err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, "Product removed from order", nil)
}

// Approve handles PATCH /api/v1/orders/:id/approve
// @Summary Approve a pending order
// @Tags Orders
// @Produce json
// @Param id path string true "Order ID (UUID)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope "Order not in a pending state"
// @Router /orders/{id}/approve [patch]
func (h *OrderHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUUIDParam(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	order, err := h.service.Approve(r.Context(), id)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, "Order approved", toOrderResponse(order))
}

// Cancel handles PATCH /api/v1/orders/:id/cancel
// @Summary Cancel a pending or processing order
// @Tags Orders
// @Produce json
// @Param id path string true "Order ID (UUID)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope "Order not in a cancelable state"
// @Router /orders/{id}/cancel [patch]
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUUIDParam(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	order, err := h.service.Cancel(r.Context(), id)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, "Order canceled", toOrderResponse(order))
}

// handleError maps service errors onto HTTP status codes
func (h *OrderHandler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		response.Error(w, http.StatusNotFound, "Order not found")
	case errors.Is(err, domain.ErrAlreadyExists):
		response.Error(w, http.StatusBadRequest, "Duplicate value", err.Error())
	case errors.Is(err, domain.ErrInvalidTransition):
		response.Error(w, http.StatusBadRequest, "Invalid status transition", err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		response.Error(w, http.StatusBadRequest, "Invalid input", err.Error())
	case errors.Is(err, domain.ErrConflict):
		response.Error(w, http.StatusConflict, "Order was modified by another request")
	default:
		h.logger.Error("Internal error in order handler", err)
		response.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
