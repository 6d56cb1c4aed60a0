package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avolkau/storefront/internal/domain"
	"github.com/avolkau/storefront/internal/pkg/logger"
	pkgvalidator "github.com/avolkau/storefront/internal/pkg/validator"
)

// Stock adjustment operations accepted by UpdateStock
const (
	OpAdd      = "add"
	OpSubtract = "subtract"
)

// DefaultLowStockThreshold is applied when the caller does not supply one
const DefaultLowStockThreshold = 10

// ProductCache defines the caching collaborator the service needs
type ProductCache interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	GetProductBySKU(ctx context.Context, sku string) (*domain.Product, error)
	SetProduct(ctx context.Context, product *domain.Product) error
	GetCategoryList(ctx context.Context, category string) ([]*domain.Product, error)
	SetCategoryList(ctx context.Context, category string, products []*domain.Product) error
	Invalidate(ctx context.Context, product *domain.Product) error
}

// Service handles product business logic
type Service struct {
	repo     domain.ProductRepository
	cache    ProductCache
	validate *validator.Validate
	logger   *logger.Logger
}

// NewService creates a new catalog service
func NewService(repo domain.ProductRepository, cache ProductCache, log *logger.Logger) *Service {
	return &Service{
		repo:     repo,
		cache:    cache,
		validate: pkgvalidator.Get(),
		logger:   log,
	}
}

// Create creates a new product after checking SKU shape, price, and uniqueness
func (s *Service) Create(ctx context.Context, product *domain.Product) error {
	if err := s.validate.Struct(product); err != nil {
		s.logger.Error("Product validation failed", err)
		return domain.ErrInvalidInput
	}

	if !domain.IsSKUValid(product.SKU) {
		return fmt.Errorf("%w: sku must be at least 3 characters", domain.ErrInvalidInput)
	}

	if !product.Price.IsPositive() {
		return fmt.Errorf("%w: price must be greater than zero", domain.ErrInvalidInput)
	}

	unique, err := s.repo.IsSKUUnique(ctx, product.SKU, uuid.Nil)
	if err != nil {
		s.logger.Error("Failed to check SKU uniqueness", err)
		return err
	}
	if !unique {
		return fmt.Errorf("%w: sku %q is already in use", domain.ErrAlreadyExists, product.SKU)
	}

	if err := s.repo.Create(ctx, product); err != nil {
		s.logger.Error("Failed to create product", err)
		return err
	}

	s.invalidateCache(ctx, product)

	s.logger.WithFields(map[string]interface{}{
		"product_id": product.ID,
		"sku":        product.SKU,
	}).Info("Product created successfully")

	return nil
}

// GetByID retrieves a product by ID, reading through the cache
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	if cached, err := s.cache.GetProduct(ctx, id); err == nil {
		s.logger.Debugf("Cache hit for product %s", id)
		return cached, nil
	}

	product, err := s.repo.GetByID(ctx, id, domain.ScopeActive)
	if err != nil {
		if err == domain.ErrNotFound {
			s.logger.Debugf("Product not found: %s", id)
		} else {
			s.logger.Error("Failed to get product", err)
		}
		return nil, err
	}

	if err := s.cache.SetProduct(ctx, product); err != nil {
		s.logger.Warnf("Failed to cache product %s: %v", id, err)
	}

	return product, nil
}

// GetBySKU retrieves a product by SKU, reading through the cache
func (s *Service) GetBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	if cached, err := s.cache.GetProductBySKU(ctx, sku); err == nil {
		s.logger.Debugf("Cache hit for sku %s", sku)
		return cached, nil
	}

	product, err := s.repo.GetBySKU(ctx, sku)
	if err != nil {
		if err == domain.ErrNotFound {
			s.logger.Debugf("Product not found by sku: %s", sku)
		} else {
			s.logger.Error("Failed to get product by sku", err)
		}
		return nil, err
	}

	if err := s.cache.SetProduct(ctx, product); err != nil {
		s.logger.Warnf("Failed to cache product %s: %v", product.ID, err)
	}

	return product, nil
}

// List retrieves a paginated list of products in the requested visibility scope
func (s *Service) List(ctx context.Context, scope domain.Scope, limit, offset int) ([]*domain.Product, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	products, err := s.repo.List(ctx, scope, limit, offset)
	if err != nil {
		s.logger.Error("Failed to list products", err)
		return nil, 0, err
	}

	total, err := s.repo.Count(ctx, scope)
	if err != nil {
		s.logger.Error("Failed to count products", err)
		return nil, 0, err
	}

	return products, total, nil
}

// GetByCategory retrieves products in a category, reading through the cache
func (s *Service) GetByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	if cached, err := s.cache.GetCategoryList(ctx, category); err == nil {
		s.logger.Debugf("Cache hit for category %s", category)
		return cached, nil
	}

	products, err := s.repo.GetByCategory(ctx, category)
	if err != nil {
		s.logger.Error("Failed to get products by category", err)
		return nil, err
	}

	if err := s.cache.SetCategoryList(ctx, category, products); err != nil {
		s.logger.Warnf("Failed to cache category %s: %v", category, err)
	}

	return products, nil
}

// GetAvailable retrieves products that are active and in stock
func (s *Service) GetAvailable(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.repo.GetAvailable(ctx)
	if err != nil {
		s.logger.Error("Failed to get available products", err)
		return nil, err
	}

	return products, nil
}

// GetByPriceRange retrieves products priced within [min, max]. The bounds are
// checked before any query is issued.
func (s *Service) GetByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]*domain.Product, error) {
	if min.IsNegative() || max.IsNegative() || min.GreaterThan(max) {
		return nil, fmt.Errorf("%w: invalid price range [%s, %s]", domain.ErrInvalidInput, min, max)
	}

	products, err := s.repo.GetByPriceRange(ctx, min, max)
	if err != nil {
		s.logger.Error("Failed to get products by price range", err)
		return nil, err
	}

	return products, nil
}

// GetLowStock retrieves active products with stock at or below threshold
func (s *Service) GetLowStock(ctx context.Context, threshold int) ([]*domain.Product, error) {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}

	products, err := s.repo.GetLowStock(ctx, threshold)
	if err != nil {
		s.logger.Error("Failed to get low stock products", err)
		return nil, err
	}

	return products, nil
}

// Update updates an existing product, re-checking the SKU against other products
func (s *Service) Update(ctx context.Context, product *domain.Product) error {
	if err := s.validate.Struct(product); err != nil {
		s.logger.Error("Product validation failed", err)
		return domain.ErrInvalidInput
	}

	if !domain.IsSKUValid(product.SKU) {
		return fmt.Errorf("%w: sku must be at least 3 characters", domain.ErrInvalidInput)
	}

	if !product.Price.IsPositive() {
		return fmt.Errorf("%w: price must be greater than zero", domain.ErrInvalidInput)
	}

	existing, err := s.repo.GetByID(ctx, product.ID, domain.ScopeActive)
	if err != nil {
		if err != domain.ErrNotFound {
			s.logger.Error("Failed to get product for update", err)
		}
		return err
	}

	unique, err := s.repo.IsSKUUnique(ctx, product.SKU, product.ID)
	if err != nil {
		s.logger.Error("Failed to check SKU uniqueness", err)
		return err
	}
	if !unique {
		return fmt.Errorf("%w: sku %q is already in use by another product", domain.ErrAlreadyExists, product.SKU)
	}

	if err := s.repo.Update(ctx, product); err != nil {
		s.logger.Error("Failed to update product", err)
		return err
	}

	s.invalidateCache(ctx, product)
	// A renamed SKU leaves its old key behind until TTL; drop it as well
	if !strings.EqualFold(existing.SKU, product.SKU) {
		s.invalidateCache(ctx, existing)
	}

	s.logger.WithFields(map[string]interface{}{
		"product_id": product.ID,
		"sku":        product.SKU,
	}).Info("Product updated successfully")

	return nil
}

// UpdateStock adjusts a product's stock. A subtract that would go negative is
// rejected without persisting anything.
func (s *Service) UpdateStock(ctx context.Context, id uuid.UUID, operation string, quantity int) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id, domain.ScopeActive)
	if err != nil {
		if err != domain.ErrNotFound {
			s.logger.Error("Failed to get product for stock update", err)
		}
		return nil, err
	}

	switch operation {
	case OpAdd:
		err = product.AddStock(quantity)
	case OpSubtract:
		err = product.ReduceStock(quantity)
	default:
		return nil, fmt.Errorf("%w: unknown stock operation %q", domain.ErrInvalidInput, operation)
	}
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, product); err != nil {
		s.logger.Error("Failed to persist stock update", err)
		return nil, err
	}

	s.invalidateCache(ctx, product)

	s.logger.WithFields(map[string]interface{}{
		"product_id": product.ID,
		"operation":  operation,
		"quantity":   quantity,
		"stock":      product.StockQuantity,
	}).Info("Product stock updated")

	return product, nil
}

// Delete soft-deletes a product
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.repo.GetByID(ctx, id, domain.ScopeActive)
	if err != nil {
		if err != domain.ErrNotFound {
			s.logger.Error("Failed to get product for deletion", err)
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete product", err)
		return err
	}

	s.invalidateCache(ctx, product)

	s.logger.WithFields(map[string]interface{}{
		"product_id": id,
	}).Info("Product deleted successfully")

	return nil
}

// invalidateCache drops stale cache entries; cache failures are logged, never fatal
func (s *Service) invalidateCache(ctx context.Context, product *domain.Product) {
	if err := s.cache.Invalidate(ctx, product); err != nil {
		s.logger.Warnf("Failed to invalidate cache for product %s: %v", product.ID, err)
	}
}
