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
	"github.com/avolkau/storefront/internal/usecase/catalog"
)

// ProductHandler handles HTTP requests for products
type ProductHandler struct {
	service *catalog.Service
	logger  *logger.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *catalog.Service, log *logger.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  log,
	}
}

// CreateProductRequest represents the request body for creating a product
type CreateProductRequest struct {
	Name          string          `json:"name" validate:"required,min=2,max=200"`
	Description   *string         `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	SKU           string          `json:"sku" validate:"required,min=3,max=50"`
	StockQuantity int             `json:"stock_quantity"`
	Category      string          `json:"category" validate:"required,min=2,max=100"`
	IsActive      bool            `json:"is_active"`
}

// UpdateProductRequest represents the request body for updating a product
type UpdateProductRequest struct {
	Name          string          `json:"name" validate:"required,min=2,max=200"`
	Description   *string         `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	SKU           string          `json:"sku" validate:"required,min=3,max=50"`
	StockQuantity int             `json:"stock_quantity"`
	Category      string          `json:"category" validate:"required,min=2,max=100"`
	IsActive      bool            `json:"is_active"`
}

// UpdateStockRequest represents the request body for a stock adjustment
type UpdateStockRequest struct {
	Operation string `json:"operation" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required"`
}

// ProductResponse is the product shape returned to clients
type ProductResponse struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Description   *string         `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	SKU           string          `json:"sku"`
	StockQuantity int             `json:"stock_quantity"`
	Category      string          `json:"category"`
	IsActive      bool            `json:"is_active"`
	IsAvailable   bool            `json:"is_available"`
	IsDeleted     bool            `json:"is_deleted"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func toProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		SKU:           p.SKU,
		StockQuantity: p.StockQuantity,
		Category:      p.Category,
		IsActive:      p.IsActive,
		IsAvailable:   p.Available(),
		IsDeleted:     p.Deleted(),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toProductResponses(products []*domain.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out
}

// Create handles POST /api/v1/products
// @Summary Create a new product
// @Description Create a product; the SKU must be unique among non-deleted products
// @Tags Products
// @Accept json
// @Produce json
// @Param product body CreateProductRequest true "Product details"
// @Success 201 {object} response.Envelope "Product created"
// @Failure 400 {object} response.Envelope "Invalid request body or rule violation"
// @Failure 500 {object} response.Envelope "Internal server error"
// @Router /products [post]
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product := &domain.Product{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		SKU:           req.SKU,
		StockQuantity: req.StockQuantity,
		Category:      req.Category,
		IsActive:      req.IsActive,
	}

	if err := h.service.Create(r.Context(), product); err != nil {
		h.handleError(w, err)
		return
	}

	location := fmt.Sprintf("/api/v1/products/%s", product.ID)
	response.Created(w, location, toProductResponse(product))
}

// GetByID handles GET /api/v1/products/:id
// @Summary Get a product by ID
// @Tags Products
// @Produce json
// @Param id path string true "Product ID (UUID)"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope "Product not found"
// @Router /products/{id} [get]
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUUIDParam(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	product, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, "", toProductResponse(product))
}

// GetBySKU handles GET /api/v1/products/sku/:sku
// @Summary Get a product by SKU
// @Tags Products
// @Produce json
// @Param sku path string true "Product SKU"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope "Product not found"
// @Router /products/sku/{sku} [get]
func (h *ProductHandler) GetBySKU(w http.ResponseWriter, r *http.Request) {
	sku, err := request.GetStringParam(r, "sku")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid SKU")
		return
	}

	product, err := h.service.GetBySKU(r.Context(), sku)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, "", toProductResponse(product))
}

// List handles GET /api/v1/products
// @Summary List products
// @Description Paginated product listing; scope=all includes soft-deleted rows
// @Tags Products
// @Produce json
// @Param limit query int false "Items per page (max 100)" default(20)
// @Param offset query int false "Items to skip" default(0)
// @Param scope query string false "Visibility scope: active or all" default(active)
// @Success 200 {object} response.Envelope
// @Router /products [get]
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := request.GetPaginationParams(r)
	scope := request.GetScopeQuery(r)

	products, total, err := h.service.List(r.Context(), scope, limit, offset)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Paginated(w, toProductResponses(products), total, limit, offset)
}

// GetByCategory handles GET /api/v1/products/category/:category
// @Summary List products in a category
// @Tags Products
// @Produce json
// @Param category path string true "Category name (case-insensitive)"
// @Success 200 {object} response.Envelope
// @Router /products/category/{category} [get]
func (h *ProductHandler) GetByCategory(w http.ResponseWriter, r *http.Request) {
	category, err := request.GetStringParam(r, "category")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid category")
		return
	}

	products, err := h.service.GetByCategory(r.Context(), category)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, "", toProductResponses(products))
}

// GetAvailable handles GET /api/v1/products/available
// @Summary List products that are active and in stock
// @Tags Products
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /products/available [get]
func (h *ProductHandler) GetAvailable(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.GetAvailable(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, "", toProductResponses(products))
}

// GetByPriceRange handles GET /api/v1/products/price-range
// @Summary List products priced within an inclusive range
// @Tags Products
// @Produce json
// @Param min_price query number true "Lower bound"
// @Param max_price query number true "Upper bound"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope "Invalid bounds"
// @Router /products/price-range [get]
func (h *ProductHandler) GetByPriceRange(w http.ResponseWriter, r *http.Request) {
	min, err := request.GetDecimalQuery(r, "min_price")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid min_price")
		return
	}

	max, err := request.GetDecimalQuery(r, "max_price")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid max_price")
		return
	}

	products, err := h.service.GetByPriceRange(r.Context(), min, max)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, "", toProductResponses(products))
}

// GetLowStock handles GET /api/v1/products/low-stock
// @Summary List active products at or below a stock threshold
// @Tags Products
// @Produce json
// @Param threshold query int false "Stock threshold" default(10)
// @Success 200 {object} response.Envelope
// @Router /products/low-stock [get]
func (h *ProductHandler) GetLowStock(w http.ResponseWriter, r *http.Request) {
	threshold := request.GetIntQuery(r, "threshold", catalog.DefaultLowStockThreshold)

	products, err := h.service.GetLowStock(r.Context(), threshold)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, "", toProductResponses(products))
}

// Update handles PUT /api/v1/products/:id
// @Summary Update a product
// @Tags Products
// @Accept json
// @Produce json
// @Param id path string true "Product ID (UUID)"
// @Param product body UpdateProductRequest true "Updated product details"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope "Invalid request"
// @Failure 404 {object} response.Envelope "Product not found"
// @Failure 409 {object} response.Envelope "Product was modified concurrently"
// @Router /products/{id} [put]
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUUIDParam(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var req UpdateProductRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Version field required for optimistic locking but not provided in update request
	existing, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.handleError(w, err)
		return
	}

	product := &domain.Product{
		ID:            id,
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		SKU:           req.SKU,
		StockQuantity: req.StockQuantity,
		Category:      req.Category,
		IsActive:      req.IsActive,
		Version:       existing.Version,
	}

	if err := h.service.Update(r.Context(), product); err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, "Product updated", toProductResponse(product))
}

// UpdateStock handles PATCH /api/v1/products/:id/stock
// @Summary Adjust product stock
// @Description Operation is "add" or "subtract"; a subtract below zero is rejected
// @Tags Products
// @Accept json
// @Produce json
// @Param id path string true "Product ID (UUID)"
// @Param stock body UpdateStockRequest true "Stock adjustment"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope "Invalid operation or insufficient stock"
// @Router /products/{id}/stock [patch]
func (h *ProductHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUUIDParam(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var req UpdateStockRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.service.UpdateStock(r.Context(), id, req.Operation, req.Quantity)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, "Stock updated", toProductResponse(product))
}

// Delete handles DELETE /api/v1/products/:id
// @Summary Soft-delete a product
// @Tags Products
// @Produce json
// @Param id path string true "Product ID (UUID)"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope "Product not found"
// @Router /products/{id} [delete]
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUUIDParam(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, "Product deleted", nil)
}

// handleError maps service errors onto HTTP status codes
func (h *ProductHandler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		response.Error(w, http.StatusNotFound, "Product not found")
	case errors.Is(err, domain.ErrAlreadyExists):
		response.Error(w, http.StatusBadRequest, "Duplicate value", err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		response.Error(w, http.StatusBadRequest, "Invalid input", err.Error())
	case errors.Is(err, domain.ErrConflict):
		response.Error(w, http.StatusConflict, "Product was modified by another request")
	default:
		h.logger.Error("Internal error in product handler", err)
		response.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
