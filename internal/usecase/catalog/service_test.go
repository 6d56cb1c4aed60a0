package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/avolkau/storefront/internal/domain"
	"github.com/avolkau/storefront/internal/pkg/logger"
)

// MockProductRepository is a mock implementation of domain.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id uuid.UUID, scope domain.Scope) (*domain.Product, error) {
	args := m.Called(ctx, id, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context, scope domain.Scope, limit, offset int) ([]*domain.Product, error) {
	args := m.Called(ctx, scope, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context, scope domain.Scope) (int, error) {
	args := m.Called(ctx, scope)
	return args.Int(0), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) DeletePermanently(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) GetBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) GetByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Product), args.Error(1)
}

func (m *MockProductRepository) GetAvailable(ctx context.Context) ([]*domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Product), args.Error(1)
}

func (m *MockProductRepository) GetByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]*domain.Product, error) {
	args := m.Called(ctx, min, max)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Product), args.Error(1)
}

func (m *MockProductRepository) GetLowStock(ctx context.Context, threshold int) ([]*domain.Product, error) {
	args := m.Called(ctx, threshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Product), args.Error(1)
}

func (m *MockProductRepository) IsSKUUnique(ctx context.Context, sku string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, sku, excludeID)
	return args.Bool(0), args.Error(1)
}

// MockProductCache is a mock implementation of ProductCache
type MockProductCache struct {
	mock.Mock
}

func (m *MockProductCache) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductCache) GetProductBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductCache) SetProduct(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductCache) GetCategoryList(ctx context.Context, category string) ([]*domain.Product, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Product), args.Error(1)
}

func (m *MockProductCache) SetCategoryList(ctx context.Context, category string, products []*domain.Product) error {
	args := m.Called(ctx, category, products)
	return args.Error(0)
}

func (m *MockProductCache) Invalidate(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func validProduct() *domain.Product {
	return &domain.Product{
		ID:            uuid.New(),
		Name:          "Mechanical Keyboard",
		Price:         decimal.NewFromFloat(79.90),
		SKU:           "KBD-001",
		StockQuantity: 5,
		Category:      "peripherals",
		IsActive:      true,
	}
}

func newTestService() (*Service, *MockProductRepository, *MockProductCache) {
	mockRepo := new(MockProductRepository)
	mockCache := new(MockProductCache)
	log := logger.New("test")
	return NewService(mockRepo, mockCache, log), mockRepo, mockCache
}

func TestService_Create_Success(t *testing.T) {
	service, mockRepo, mockCache := newTestService()

	product := validProduct()

	mockRepo.On("IsSKUUnique", mock.Anything, product.SKU, uuid.Nil).Return(true, nil)
	mockRepo.On("Create", mock.Anything, product).Return(nil)
	mockCache.On("Invalidate", mock.Anything, product).Return(nil)

	err := service.Create(context.Background(), product)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestService_Create_DuplicateSKU(t *testing.T) {
	service, mockRepo, _ := newTestService()

	product := validProduct()

	mockRepo.On("IsSKUUnique", mock.Anything, product.SKU, uuid.Nil).Return(false, nil)

	err := service.Create(context.Background(), product)

	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	mockRepo.AssertNotCalled(t, "Create")
}

func TestService_Create_NonPositivePrice(t *testing.T) {
	service, mockRepo, _ := newTestService()

	product := validProduct()
	product.Price = decimal.Zero

	err := service.Create(context.Background(), product)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	mockRepo.AssertNotCalled(t, "IsSKUUnique")
	mockRepo.AssertNotCalled(t, "Create")
}

func TestService_Create_InvalidName(t *testing.T) {
	service, mockRepo, _ := newTestService()

	product := validProduct()
	product.Name = "x"

	err := service.Create(context.Background(), product)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	mockRepo.AssertNotCalled(t, "Create")
}

func TestService_GetByID_CacheHit(t *testing.T) {
	service, mockRepo, mockCache := newTestService()

	product := validProduct()

	mockCache.On("GetProduct", mock.Anything, product.ID).Return(product, nil)

	got, err := service.GetByID(context.Background(), product.ID)

	assert.NoError(t, err)
	assert.Equal(t, product, got)
	mockRepo.AssertNotCalled(t, "GetByID")
}

func TestService_GetByID_CacheMiss(t *testing.T) {
	service, mockRepo, mockCache := newTestService()

	product := validProduct()

	mockCache.On("GetProduct", mock.Anything, product.ID).Return(nil, domain.ErrNotFound)
	mockRepo.On("GetByID", mock.Anything, product.ID, domain.ScopeActive).Return(product, nil)
	mockCache.On("SetProduct", mock.Anything, product).Return(nil)

	got, err := service.GetByID(context.Background(), product.ID)

	assert.NoError(t, err)
	assert.Equal(t, product, got)
	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestService_GetByID_NotFound(t *testing.T) {
	service, mockRepo, mockCache := newTestService()

	id := uuid.New()

	mockCache.On("GetProduct", mock.Anything, id).Return(nil, domain.ErrNotFound)
	mockRepo.On("GetByID", mock.Anything, id, domain.ScopeActive).Return(nil, domain.ErrNotFound)

	got, err := service.GetByID(context.Background(), id)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, got)
}

func TestService_GetByPriceRange_InvalidBounds(t *testing.T) {
	service, mockRepo, _ := newTestService()

	cases := []struct {
		name     string
		min, max decimal.Decimal
	}{
		{"negative min", decimal.NewFromInt(-1), decimal.NewFromInt(10)},
		{"negative max", decimal.NewFromInt(0), decimal.NewFromInt(-5)},
		{"min above max", decimal.NewFromInt(20), decimal.NewFromInt(10)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.GetByPriceRange(context.Background(), tc.min, tc.max)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	mockRepo.AssertNotCalled(t, "GetByPriceRange")
}

func TestService_GetLowStock_DefaultThreshold(t *testing.T) {
	service, mockRepo, _ := newTestService()

	mockRepo.On("GetLowStock", mock.Anything, DefaultLowStockThreshold).Return([]*domain.Product{}, nil)

	_, err := service.GetLowStock(context.Background(), 0)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestService_Update_SKUCollision(t *testing.T) {
	service, mockRepo, _ := newTestService()

	existing := validProduct()
	product := validProduct()
	product.ID = existing.ID

	mockRepo.On("GetByID", mock.Anything, product.ID, domain.ScopeActive).Return(existing, nil)
	mockRepo.On("IsSKUUnique", mock.Anything, product.SKU, product.ID).Return(false, nil)

	err := service.Update(context.Background(), product)

	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	mockRepo.AssertNotCalled(t, "Update")
}

func TestService_Update_SameSKU_SingleInvalidation(t *testing.T) {
	service, mockRepo, mockCache := newTestService()

	existing := validProduct()
	product := validProduct()
	product.ID = existing.ID

	mockRepo.On("GetByID", mock.Anything, product.ID, domain.ScopeActive).Return(existing, nil)
	mockRepo.On("IsSKUUnique", mock.Anything, product.SKU, product.ID).Return(true, nil)
	mockRepo.On("Update", mock.Anything, product).Return(nil)
	mockCache.On("Invalidate", mock.Anything, product).Return(nil)

	err := service.Update(context.Background(), product)

	assert.NoError(t, err)
	mockCache.AssertNumberOfCalls(t, "Invalidate", 1)
}

func TestService_Update_SKURename_InvalidatesOldKey(t *testing.T) {
	service, mockRepo, mockCache := newTestService()

	existing := validProduct()
	product := validProduct()
	product.ID = existing.ID
	product.SKU = "KBD-002"

	mockRepo.On("GetByID", mock.Anything, product.ID, domain.ScopeActive).Return(existing, nil)
	mockRepo.On("IsSKUUnique", mock.Anything, product.SKU, product.ID).Return(true, nil)
	mockRepo.On("Update", mock.Anything, product).Return(nil)

	// Both the new and the prior SKU key must be dropped, or GetBySKU on
	// the old SKU keeps serving the renamed product until TTL
	mockCache.On("Invalidate", mock.Anything, mock.MatchedBy(func(p *domain.Product) bool {
		return p.SKU == "KBD-002"
	})).Return(nil).Once()
	mockCache.On("Invalidate", mock.Anything, mock.MatchedBy(func(p *domain.Product) bool {
		return p.SKU == "KBD-001"
	})).Return(nil).Once()

	err := service.Update(context.Background(), product)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestService_UpdateStock_Subtract(t *testing.T) {
	service, mockRepo, mockCache := newTestService()

	product := validProduct()
	product.StockQuantity = 10

	mockRepo.On("GetByID", mock.Anything, product.ID, domain.ScopeActive).Return(product, nil)
	mockRepo.On("Update", mock.Anything, product).Return(nil)
	mockCache.On("Invalidate", mock.Anything, product).Return(nil)

	updated, err := service.UpdateStock(context.Background(), product.ID, OpSubtract, 5)

	assert.NoError(t, err)
	assert.Equal(t, 5, updated.StockQuantity)
	mockRepo.AssertExpectations(t)
}

func TestService_UpdateStock_SubtractBelowZero(t *testing.T) {
	service, mockRepo, _ := newTestService()

	product := validProduct()
	product.StockQuantity = 5

	mockRepo.On("GetByID", mock.Anything, product.ID, domain.ScopeActive).Return(product, nil)

	_, err := service.UpdateStock(context.Background(), product.ID, OpSubtract, 10)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 5, product.StockQuantity)
	mockRepo.AssertNotCalled(t, "Update")
}

func TestService_UpdateStock_UnknownOperation(t *testing.T) {
	service, mockRepo, _ := newTestService()

	product := validProduct()

	mockRepo.On("GetByID", mock.Anything, product.ID, domain.ScopeActive).Return(product, nil)

	_, err := service.UpdateStock(context.Background(), product.ID, "multiply", 2)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	mockRepo.AssertNotCalled(t, "Update")
}

func TestService_Delete_Success(t *testing.T) {
	service, mockRepo, mockCache := newTestService()

	product := validProduct()

	mockRepo.On("GetByID", mock.Anything, product.ID, domain.ScopeActive).Return(product, nil)
	mockRepo.On("Delete", mock.Anything, product.ID).Return(nil)
	mockCache.On("Invalidate", mock.Anything, product).Return(nil)

	err := service.Delete(context.Background(), product.ID)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestService_Delete_NotFound(t *testing.T) {
	service, mockRepo, _ := newTestService()

	id := uuid.New()

	mockRepo.On("GetByID", mock.Anything, id, domain.ScopeActive).Return(nil, domain.ErrNotFound)

	err := service.Delete(context.Background(), id)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	mockRepo.AssertNotCalled(t, "Delete")
}

func TestService_List_ClampsPagination(t *testing.T) {
	service, mockRepo, _ := newTestService()

	mockRepo.On("List", mock.Anything, domain.ScopeActive, 20, 0).Return([]*domain.Product{}, nil)
	mockRepo.On("Count", mock.Anything, domain.ScopeActive).Return(0, nil)

	_, _, err := service.List(context.Background(), domain.ScopeActive, 500, -3)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}
