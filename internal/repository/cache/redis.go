package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/avolkau/storefront/internal/domain"
)

// ProductCache caches catalog reads in Redis. Products are stored under both
// an id key and a lowercased sku key; category pages are tracked in a SET per
// category so they can be dropped together on invalidation.
type ProductCache struct {
	client          *redis.Client
	productTTL      time.Duration
	categoryListTTL time.Duration
}

// NewProductCache creates a new Redis product cache
func NewProductCache(client *redis.Client, productTTL, categoryListTTL time.Duration) *ProductCache {
	return &ProductCache{
		client:          client,
		productTTL:      productTTL,
		categoryListTTL: categoryListTTL,
	}
}

func (c *ProductCache) productKey(id uuid.UUID) string {
	return fmt.Sprintf("product:%s", id.String())
}

func (c *ProductCache) skuKey(sku string) string {
	return fmt.Sprintf("product:sku:%s", strings.ToLower(sku))
}

func (c *ProductCache) categoryKey(category string) string {
	return fmt.Sprintf("category:%s:products", strings.ToLower(category))
}

func (c *ProductCache) categoryTrackingSet() string {
	return "category:cache_keys"
}

// GetProduct retrieves a cached product by ID
func (c *ProductCache) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return c.getProduct(ctx, c.productKey(id))
}

// GetProductBySKU retrieves a cached product by SKU
func (c *ProductCache) GetProductBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	return c.getProduct(ctx, c.skuKey(sku))
}

func (c *ProductCache) getProduct(ctx context.Context, key string) (*domain.Product, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	var product domain.Product
	if err := json.Unmarshal([]byte(val), &product); err != nil {
		return nil, err
	}

	return &product, nil
}

// SetProduct stores a product under both its id and sku keys
func (c *ProductCache) SetProduct(ctx context.Context, product *domain.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return err
	}

	pipe := c.client.Pipeline()
	pipe.Set(ctx, c.productKey(product.ID), data, c.productTTL)
	pipe.Set(ctx, c.skuKey(product.SKU), data, c.productTTL)
	_, err = pipe.Exec(ctx)
	return err
}

// GetCategoryList retrieves a cached category listing
func (c *ProductCache) GetCategoryList(ctx context.Context, category string) ([]*domain.Product, error) {
	val, err := c.client.Get(ctx, c.categoryKey(category)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	var products []*domain.Product
	if err := json.Unmarshal([]byte(val), &products); err != nil {
		return nil, err
	}

	return products, nil
}

// SetCategoryList stores a category listing and tracks its key
func (c *ProductCache) SetCategoryList(ctx context.Context, category string, products []*domain.Product) error {
	key := c.categoryKey(category)

	data, err := json.Marshal(products)
	if err != nil {
		return err
	}

	pipe := c.client.Pipeline()
	pipe.Set(ctx, key, data, c.categoryListTTL)
	pipe.SAdd(ctx, c.categoryTrackingSet(), key)
	pipe.Expire(ctx, c.categoryTrackingSet(), c.categoryListTTL)
	_, err = pipe.Exec(ctx)
	return err
}

// Invalidate drops all cache entries touched by a product mutation: the id
// and sku keys plus every tracked category page.
func (c *ProductCache) Invalidate(ctx context.Context, product *domain.Product) error {
	keys := []string{
		c.productKey(product.ID),
		c.skuKey(product.SKU),
	}

	tracked, err := c.client.SMembers(ctx, c.categoryTrackingSet()).Result()
	if err != nil && err != redis.Nil {
		return err
	}

	if len(tracked) > 0 {
		keys = append(keys, tracked...)
		keys = append(keys, c.categoryTrackingSet())
	}

	return c.client.Unlink(ctx, keys...).Err()
}
