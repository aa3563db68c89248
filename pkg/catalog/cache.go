package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"favorites-api/internal/customer/domain"
	"favorites-api/pkg/metrics"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

var ErrCacheMiss = errors.New("cache miss")

type ProductCache interface {
	Get(ctx context.Context, productID string) (*domain.Product, error)
	Set(ctx context.Context, product *domain.Product) error
}

// Catalog is the read side of the product catalog.
type Catalog interface {
	GetProductByID(ctx context.Context, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context, page int) (*domain.ProductPage, error)
}

type RedisCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func NewRedisCache(client *redis.Client, baseTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:  client,
		baseTTL: baseTTL,
	}
}

func (r *RedisCache) Get(ctx context.Context, productID string) (*domain.Product, error) {
	data, err := r.client.Get(ctx, cacheKey(productID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var product domain.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, fmt.Errorf("unmarshal product failed: %w", err)
	}
	return &product, nil
}

func (r *RedisCache) Set(ctx context.Context, product *domain.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("marshal product failed: %w", err)
	}

	ttl := r.baseTTL
	if spread := int64(r.baseTTL / 5); spread > 0 {
		ttl += time.Duration(rand.Int63n(spread))
	}
	if err := r.client.Set(ctx, cacheKey(product.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func cacheKey(productID string) string {
	return fmt.Sprintf("product:%s", productID)
}

// CachedCatalog serves product lookups from cache and falls back to the
// wrapped catalog. Unknown products are never cached.
type CachedCatalog struct {
	next   Catalog
	cache  ProductCache
	logger *logrus.Logger
	sfg    singleflight.Group
}

func NewCachedCatalog(next Catalog, cache ProductCache, logger *logrus.Logger) *CachedCatalog {
	return &CachedCatalog{
		next:   next,
		cache:  cache,
		logger: logger,
	}
}

func (c *CachedCatalog) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	v, err, _ := c.sfg.Do(productID, func() (interface{}, error) {
		product, err := c.cache.Get(ctx, productID)
		if err == nil {
			metrics.RecordCacheLookup(true)
			return product, nil
		}
		metrics.RecordCacheLookup(false)
		if !errors.Is(err, ErrCacheMiss) {
			c.logger.WithError(err).Warn("product cache get failed")
		}

		product, err = c.next.GetProductByID(ctx, productID)
		if err != nil || product == nil {
			return product, err
		}

		if err := c.cache.Set(ctx, product); err != nil {
			c.logger.WithError(err).Warn("product cache set failed")
		}
		return product, nil
	})
	if err != nil {
		return nil, err
	}

	product, _ := v.(*domain.Product)
	if product == nil {
		return nil, nil
	}
	cp := *product
	return &cp, nil
}

func (c *CachedCatalog) ListProducts(ctx context.Context, page int) (*domain.ProductPage, error) {
	return c.next.ListProducts(ctx, page)
}
