package cache

import (
	"admin-service/internal/models"
	"admin-service/internal/repository"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	allProductsKey = "products:all"
	notFoundMarker = "notfound"
)

// CachedProductRepository is a read-through Redis cache in front of a
// ProductRepository. Update and Delete drop the affected keys both before
// and after the underlying write, so a read racing the write cannot leave
// the old row cached once the write has returned.
type CachedProductRepository struct {
	realRepo repository.ProductRepository
	redis    *redis.Client
	ttl      time.Duration
}

func NewCachedProductRepository(realRepo repository.ProductRepository, redis *redis.Client, ttl time.Duration) *CachedProductRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedProductRepository{
		realRepo: realRepo,
		redis:    redis,
		ttl:      ttl,
	}
}

func productKey(id string) string {
	return fmt.Sprintf("product:%s", id)
}

func (c *CachedProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	key := productKey(id)

	data, err := c.redis.Get(ctx, key).Bytes()

	switch {
	case err == nil:
		if string(data) == notFoundMarker {
			return nil, repository.ErrNotFound
		}

		var product models.Product
		if err := json.Unmarshal(data, &product); err != nil {
			log.Printf("failed to unmarshal cached product (continuing with DB): %v", err)
			break
		}

		return &product, nil

	case errors.Is(err, redis.Nil):

	default:
		log.Printf("redis error (continuing with DB): %v", err)
	}

	product, err := c.realRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			if setErr := c.redis.Set(ctx, key, notFoundMarker, time.Minute).Err(); setErr != nil {
				log.Printf("failed to cache notfound: %v", setErr)
			}
		}
		return nil, err
	}

	jsonData, err := json.Marshal(product)
	if err != nil {
		log.Printf("failed to marshal product: %v", err)
		return product, nil
	}

	if err := c.redis.Set(ctx, key, jsonData, c.ttl).Err(); err != nil {
		log.Printf("failed to cache product: %v", err)
	}

	return product, nil
}

func (c *CachedProductRepository) invalidate(ctx context.Context, keys ...string) {
	if err := c.redis.Del(ctx, keys...).Err(); err != nil {
		log.Printf("failed to delete product cache %v: %v", keys, err)
	}
}

func (c *CachedProductRepository) Create(ctx context.Context, product *models.Product) error {
	if err := c.realRepo.Create(ctx, product); err != nil {
		return err
	}
	c.invalidate(ctx, allProductsKey, productKey(product.ID))
	return nil
}

func (c *CachedProductRepository) Update(ctx context.Context, product *models.Product) error {
	keys := []string{allProductsKey, productKey(product.ID)}
	c.invalidate(ctx, keys...)
	if err := c.realRepo.Update(ctx, product); err != nil {
		return err
	}
	c.invalidate(ctx, keys...)
	return nil
}

func (c *CachedProductRepository) Delete(ctx context.Context, id string) error {
	keys := []string{allProductsKey, productKey(id)}
	c.invalidate(ctx, keys...)
	if err := c.realRepo.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, keys...)
	return nil
}

func (c *CachedProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	data, err := c.redis.Get(ctx, allProductsKey).Bytes()

	if err == nil {
		var products []models.Product
		if err := json.Unmarshal(data, &products); err == nil {
			return products, nil
		}
		log.Printf("failed to unmarshal cached products (continuing with DB): %v", err)
	} else if !errors.Is(err, redis.Nil) {
		log.Printf("redis error: %v (continuing with DB)", err)
	}

	products, err := c.realRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	jsonData, err := json.Marshal(products)
	if err != nil {
		log.Printf("failed to marshal products: %v", err)
	} else if err := c.redis.Set(ctx, allProductsKey, jsonData, c.ttl).Err(); err != nil {
		log.Printf("failed to cache products: %v", err)
	}

	return products, nil
}
