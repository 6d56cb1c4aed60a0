package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/avolkau/storefront/internal/domain"
	"github.com/avolkau/storefront/internal/pkg/logger"
	"github.com/avolkau/storefront/internal/usecase/orders"
)

// MockOrderRepository is a mock implementation of domain.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id uuid.UUID, scope domain.Scope) (*domain.Order, error) {
	args := m.Called(ctx, id, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context, scope domain.Scope, limit, offset int) ([]*domain.Order, error) {
	args := m.Called(ctx, scope, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) Count(ctx context.Context, scope domain.Scope) (int, error) {
	args := m.Called(ctx, scope)
	return args.Int(0), args.Error(1)
}

func (m *MockOrderRepository) Update(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) DeletePermanently(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByNumber(ctx context.Context, number string) (*domain.Order, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByStatus(ctx context.Context, status domain.OrderStatus) ([]*domain.Order, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByDateRange(ctx context.Context, start, end time.Time) ([]*domain.Order, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByProductID(ctx context.Context, productID uuid.UUID) ([]*domain.Order, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) NumberExists(ctx context.Context, number string) (bool, error) {
	args := m.Called(ctx, number)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) AddItem(ctx context.Context, item *domain.OrderItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockOrderRepository) RemoveItem(ctx context.Context, orderID, productID uuid.UUID) error {
	args := m.Called(ctx, orderID, productID)
	return args.Error(0)
}

func (m *MockOrderRepository) ItemExists(ctx context.Context, orderID, productID uuid.UUID) (bool, error) {
	args := m.Called(ctx, orderID, productID)
	return args.Bool(0), args.Error(1)
}

// MockEventPublisher is a mock implementation of orders.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, subject string, data []byte) error {
	args := m.Called(ctx, subject, data)
	return args.Error(0)
}

func newOrderTestHandler() (*OrderHandler, *MockOrderRepository, *MockProductRepository) {
	mockRepo := new(MockOrderRepository)
	mockProducts := new(MockProductRepository)
	mockPublisher := new(MockEventPublisher)
	// Events are published from a goroutine, so never assert on them here
	mockPublisher.On("Publish", mock.Anything, orders.EventsSubject, mock.Anything).Return(nil).Maybe()
	log := logger.New("test")
	service := orders.NewService(mockRepo, mockProducts, mockPublisher, log)
	return NewOrderHandler(service, log), mockRepo, mockProducts
}

func storedOrder() *domain.Order {
	orderID := uuid.New()
	return &domain.Order{
		ID:          orderID,
		Number:      "ORD-2024-001",
		Description: "two keyboards for the office",
		Status:      domain.StatusPending,
		OrderDate:   time.Now(),
		Version:     1,
		Items: []domain.OrderItem{
			{
				OrderID:   orderID,
				ProductID: uuid.New(),
				Quantity:  2,
				UnitPrice: decimal.NewFromFloat(10.00),
			},
		},
	}
}

func TestOrderHandler_Create_Success(t *testing.T) {
	handler, mockRepo, mockProducts := newOrderTestHandler()

	product := storedProduct()

	requestBody := CreateOrderRequest{
		Number:      "ORD-2024-001",
		Description: "two keyboards for the office",
		Items: []OrderItemRequest{
			{ProductID: product.ID, Quantity: 2},
		},
	}
	bodyBytes, _ := json.Marshal(requestBody)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewReader(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	created := storedOrder()
	created.Items[0].ProductID = product.ID
	created.Items[0].UnitPrice = product.Price

	mockRepo.On("NumberExists", mock.Anything, "ORD-2024-001").Return(false, nil)
	mockProducts.On("GetByID", mock.Anything, product.ID, domain.ScopeActive).Return(product, nil)
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(o *domain.Order) bool {
		return o.Number == "ORD-2024-001" && o.Status == domain.StatusPending
	})).Run(func(args mock.Arguments) {
		order := args.Get(1).(*domain.Order)
		order.ID = created.ID
	}).Return(nil)
	mockRepo.On("GetByID", mock.Anything, created.ID, domain.ScopeActive).Return(created, nil)

	handler.Create(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "/api/v1/orders/")
	mockRepo.AssertExpectations(t)

	var envelope struct {
		Success bool          `json:"success"`
		Data    OrderResponse `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &envelope)
	assert.True(t, envelope.Success)
	assert.Equal(t, "ORD-2024-001", envelope.Data.Number)
	assert.True(t, envelope.Data.TotalAmount.Equal(decimal.NewFromFloat(159.80)))
}

func TestOrderHandler_Create_InvalidJSON(t *testing.T) {
	handler, _, _ := newOrderTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.Create(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderHandler_Create_NoItems(t *testing.T) {
	handler, _, _ := newOrderTestHandler()

	requestBody := CreateOrderRequest{
		Number:      "ORD-2024-001",
		Description: "two keyboards for the office",
	}
	bodyBytes, _ := json.Marshal(requestBody)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewReader(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.Create(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderHandler_Create_DuplicateNumber(t *testing.T) {
	handler, mockRepo, _ := newOrderTestHandler()

	requestBody := CreateOrderRequest{
		Number:      "ORD-2024-001",
		Description: "two keyboards for the office",
		Items: []OrderItemRequest{
			{ProductID: uuid.New(), Quantity: 2},
		},
	}
	bodyBytes, _ := json.Marshal(requestBody)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewReader(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	mockRepo.On("NumberExists", mock.Anything, "ORD-2024-001").Return(true, nil)

	handler.Create(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var envelope map[string]any
	json.Unmarshal(w.Body.Bytes(), &envelope)
	assert.Contains(t, envelope["message"], "Duplicate value")
}

func TestOrderHandler_GetByID_Success(t *testing.T) {
	handler, mockRepo, _ := newOrderTestHandler()

	order := storedOrder()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+order.ID.String(), nil)
	req = withURLParam(req, "id", order.ID.String())
	w := httptest.NewRecorder()

	mockRepo.On("GetByID", mock.Anything, order.ID, domain.ScopeActive).Return(order, nil)

	handler.GetByID(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockRepo.AssertExpectations(t)

	var envelope struct {
		Data OrderResponse `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &envelope)
	assert.Equal(t, order.ID, envelope.Data.ID)
	assert.Len(t, envelope.Data.Items, 1)
	assert.Equal(t, 2, envelope.Data.TotalQuantity)
}

func TestOrderHandler_GetByID_NotFound(t *testing.T) {
	handler, mockRepo, _ := newOrderTestHandler()

	orderID := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+orderID.String(), nil)
	req = withURLParam(req, "id", orderID.String())
	w := httptest.NewRecorder()

	mockRepo.On("GetByID", mock.Anything, orderID, domain.ScopeActive).Return(nil, domain.ErrNotFound)

	handler.GetByID(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderHandler_GetByNumber_Success(t *testing.T) {
	handler, mockRepo, _ := newOrderTestHandler()

	order := storedOrder()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/number/ORD-2024-001", nil)
	req = withURLParam(req, "number", "ORD-2024-001")
	w := httptest.NewRecorder()

	mockRepo.On("GetByNumber", mock.Anything, "ORD-2024-001").Return(order, nil)

	handler.GetByNumber(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockRepo.AssertExpectations(t)
}

func TestOrderHandler_List_Success(t *testing.T) {
	handler, mockRepo, _ := newOrderTestHandler()

	list := []*domain.Order{storedOrder(), storedOrder()}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders?limit=10", nil)
	w := httptest.NewRecorder()

	mockRepo.On("List", mock.Anything, domain.ScopeActive, 10, 0).Return(list, nil)
	mockRepo.On("Count", mock.Anything, domain.ScopeActive).Return(2, nil)

	handler.List(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockRepo.AssertExpectations(t)

	var envelope struct {
		Data []OrderSummaryResponse `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &envelope)
	assert.Len(t, envelope.Data, 2)
}

func TestOrderHandler_GetByStatus_Success(t *testing.T) {
	handler, mockRepo, _ := newOrderTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/status/pending", nil)
	req = withURLParam(req, "status", "pending")
	w := httptest.NewRecorder()

	mockRepo.On("GetByStatus", mock.Anything, domain.StatusPending).Return([]*domain.Order{storedOrder()}, nil)

	handler.GetByStatus(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockRepo.AssertExpectations(t)
}

func TestOrderHandler_GetByStatus_Unknown(t *testing.T) {
	handler, _, _ := newOrderTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/status/shipped", nil)
	req = withURLParam(req, "status", "shipped")
	w := httptest.NewRecorder()

	handler.GetByStatus(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderHandler_GetByDateRange_Success(t *testing.T) {
	handler, mockRepo, _ := newOrderTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/date-range?start=2024-01-01&end=2024-01-31", nil)
	w := httptest.NewRecorder()

	mockRepo.On("GetByDateRange", mock.Anything, mock.Anything, mock.Anything).
		Return([]*domain.Order{storedOrder()}, nil)

	handler.GetByDateRange(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockRepo.AssertExpectations(t)
}

func TestOrderHandler_GetByDateRange_InvalidDate(t *testing.T) {
	handler, _, _ := newOrderTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/date-range?start=January&end=2024-01-31", nil)
	w := httptest.NewRecorder()

	handler.GetByDateRange(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderHandler_GetByDateRange_EndBeforeStart(t *testing.T) {
	handler, _, _ := newOrderTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/date-range?start=2024-01-31&end=2024-01-01", nil)
	w := httptest.NewRecorder()

	handler.GetByDateRange(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderHandler_GetByProduct_Success(t *testing.T) {
	handler, mockRepo, _ := newOrderTestHandler()

	productID := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/product/"+productID.String(), nil)
	req = withURLParam(req, "productId", productID.String())
	w := httptest.NewRecorder()

	mockRepo.On("GetByProductID", mock.Anything, productID).Return([]*domain.Order{storedOrder()}, nil)

	handler.GetByProduct(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockRepo.AssertExpectations(t)
}

func TestOrderHandler_Update_Success(t *testing.T) {
	handler, mockRepo, _ := newOrderTestHandler()

	existing := storedOrder()

	requestBody := UpdateOrderRequest{
		Number:      "ORD-2024-001",
		Description: "two keyboards and a mouse for the office",
		Status:      "processing",
	}
	bodyBytes, _ := json.Marshal(requestBody)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/orders/"+existing.ID.String(), bytes.NewReader(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	req = withURLParam(req, "id", existing.ID.String())
	w := httptest.NewRecorder()

	mockRepo.On("GetByID", mock.Anything, existing.ID, domain.ScopeActive).Return(existing, nil)
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(o *domain.Order) bool {
		return o.ID == existing.ID && o.Status == domain.StatusProcessing
	})).Run(func(args mock.Arguments) {
		existing.Status = domain.StatusProcessing
	}).Return(nil)

	handler.Update(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockRepo.AssertExpectations(t)

	// Updating fields must not flatten the line items in the response
	var envelope struct {
		Data OrderResponse `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &envelope)
	assert.Equal(t, domain.StatusProcessing, envelope.Data.Status)
	assert.Len(t, envelope.Data.Items, 1)
	assert.Equal(t, 1, envelope.Data.ProductCount)
	assert.True(t, envelope.Data.TotalAmount.Equal(decimal.NewFromFloat(20.00)))
}

func TestOrderHandler_Update_UnknownStatus(t *testing.T) {
	handler, _, _ := newOrderTestHandler()

	requestBody := UpdateOrderRequest{
		Number:      "ORD-2024-001",
		Description: "two keyboards and a mouse for the office",
		Status:      "shipped",
	}
	bodyBytes, _ := json.Marshal(requestBody)

	orderID := uuid.New()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/orders/"+orderID.String(), bytes.NewReader(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	req = withURLParam(req, "id", orderID.String())
	w := httptest.NewRecorder()

	handler.Update(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderHandler_Delete_Success(t *testing.T) {
	handler, mockRepo, _ := newOrderTestHandler()

	order := storedOrder()

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/orders/"+order.ID.String(), nil)
	req = withURLParam(req, "id", order.ID.String())
	w := httptest.NewRecorder()

	mockRepo.On("GetByID", mock.Anything, order.ID, domain.ScopeActive).Return(order, nil)
	mockRepo.On("Delete", mock.Anything, order.ID).Return(nil)

	handler.Delete(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockRepo.AssertExpectations(t)
}

func TestOrderHandler_AddProduct_Success(t *testing.T) {
	handler, mockRepo, mockProducts := newOrderTestHandler()

	order := storedOrder()
	product := storedProduct()

	requestBody := OrderItemRequest{ProductID: product.ID, Quantity: 1}
	bodyBytes, _ := json.Marshal(requestBody)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/"+order.ID.String()+"/products", bytes.NewReader(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	req = withURLParam(req, "id", order.ID.String())
	w := httptest.NewRecorder()

	mockRepo.On("GetByID", mock.Anything, order.ID, domain.ScopeActive).Return(order, nil)
	mockRepo.On("ItemExists", mock.Anything, order.ID, product.ID).Return(false, nil)
	mockProducts.On("GetByID", mock.Anything, product.ID, domain.ScopeActive).Return(product, nil)
	mockRepo.On("AddItem", mock.Anything, mock.MatchedBy(func(item *domain.OrderItem) bool {
		return item.OrderID == order.ID && item.ProductID == product.ID && item.UnitPrice.Equal(product.Price)
	})).Return(nil)

	handler.AddProduct(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockRepo.AssertExpectations(t)
}

func TestOrderHandler_AddProduct_AlreadyAssociated(t *testing.T) {
	handler, mockRepo, _ := newOrderTestHandler()

	order := storedOrder()
	productID := uuid.New()

	requestBody := OrderItemRequest{ProductID: productID, Quantity: 1}
	bodyBytes, _ := json.Marshal(requestBody)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/"+order.ID.String()+"/products", bytes.NewReader(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	req = withURLParam(req, "id", order.ID.String())
	w := httptest.NewRecorder()

	mockRepo.On("GetByID", mock.Anything, order.ID, domain.ScopeActive).Return(order, nil)
	mockRepo.On("ItemExists", mock.Anything, order.ID, productID).Return(true, nil)

	handler.AddProduct(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderHandler_RemoveProduct_Success(t *testing.T) {
	handler, mockRepo, _ := newOrderTestHandler()

	order := storedOrder()
	productID := uuid.New()

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/orders/"+order.ID.String()+"/products/"+productID.String(), nil)
	rctx := withURLParam(req, "id", order.ID.String())
	rctx = withURLParam(rctx, "productId", productID.String())
	w := httptest.NewRecorder()

	mockRepo.On("GetByID", mock.Anything, order.ID, domain.ScopeActive).Return(order, nil)
	mockRepo.On("RemoveItem", mock.Anything, order.ID, productID).Return(nil)

	handler.RemoveProduct(w, rctx)

	assert.Equal(t, http.StatusOK, w.Code)
	mockRepo.AssertExpectations(t)
}

func TestOrderHandler_RemoveProduct_NotAssociated(t *testing.T) {
	handler, mockRepo, _ := newOrderTestHandler()

	order := storedOrder()
	productID := uuid.New()

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/orders/"+order.ID.String()+"/products/"+productID.String(), nil)
	rctx := withURLParam(req, "id", order.ID.String())
	rctx = withURLParam(rctx, "productId", productID.String())
	w := httptest.NewRecorder()

	mockRepo.On("GetByID", mock.Anything, order.ID, domain.ScopeActive).Return(order, nil)
	mockRepo.On("RemoveItem", mock.Anything, order.ID, productID).Return(domain.ErrNotFound)

	handler.RemoveProduct(w, rctx)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderHandler_Approve_Success(t *testing.T) {
	handler, mockRepo, _ := newOrderTestHandler()

	order := storedOrder()

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/orders/"+order.ID.String()+"/approve", nil)
	req = withURLParam(req, "id", order.ID.String())
	w := httptest.NewRecorder()

	mockRepo.On("GetByID", mock.Anything, order.ID, domain.ScopeActive).Return(order, nil)
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(o *domain.Order) bool {
		return o.Status == domain.StatusApproved
	})).Return(nil)

	handler.Approve(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockRepo.AssertExpectations(t)

	var envelope struct {
		Data OrderResponse `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &envelope)
	assert.Equal(t, domain.StatusApproved, envelope.Data.Status)
}

func TestOrderHandler_Approve_NotPending(t *testing.T) {
	handler, mockRepo, _ := newOrderTestHandler()

	order := storedOrder()
	order.Status = domain.StatusCompleted

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/orders/"+order.ID.String()+"/approve", nil)
	req = withURLParam(req, "id", order.ID.String())
	w := httptest.NewRecorder()

	mockRepo.On("GetByID", mock.Anything, order.ID, domain.ScopeActive).Return(order, nil)

	handler.Approve(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var envelope map[string]any
	json.Unmarshal(w.Body.Bytes(), &envelope)
	assert.Contains(t, envelope["message"], "Invalid status transition")
}

func TestOrderHandler_Cancel_Success(t *testing.T) {
	handler, mockRepo, _ := newOrderTestHandler()

	order := storedOrder()
	order.Status = domain.StatusProcessing

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/orders/"+order.ID.String()+"/cancel", nil)
	req = withURLParam(req, "id", order.ID.String())
	w := httptest.NewRecorder()

	mockRepo.On("GetByID", mock.Anything, order.ID, domain.ScopeActive).Return(order, nil)
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(o *domain.Order) bool {
		return o.Status == domain.StatusCanceled
	})).Return(nil)

	handler.Cancel(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockRepo.AssertExpectations(t)
}

func TestOrderHandler_Cancel_NotCancelable(t *testing.T) {
	handler, mockRepo, _ := newOrderTestHandler()

	order := storedOrder()
	order.Status = domain.StatusApproved

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/orders/"+order.ID.String()+"/cancel", nil)
	req = withURLParam(req, "id", order.ID.String())
	w := httptest.NewRecorder()

	mockRepo.On("GetByID", mock.Anything, order.ID, domain.ScopeActive).Return(order, nil)

	handler.Cancel(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
