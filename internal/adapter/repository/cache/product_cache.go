package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/catalog-service/internal/catalog/domain"
	"github.com/Abdurahmanit/GroupProject/catalog-service/internal/config"
	"github.com/Abdurahmanit/GroupProject/catalog-service/internal/platform/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	productKeyPrefix = "product:"
	categoriesKey    = "catalog:categories"
)

// NewRedisClient connects to cfg.Address and pings it.
func NewRedisClient(ctx context.Context, cfg *config.RedisConfig, log *logger.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Address, err)
	}
	log.Info("Successfully connected to Redis", zap.String("address", cfg.Address))
	return rdb, nil
}

// ProductCache stores products and the category list as JSON strings in Redis.
type ProductCache struct {
	client redis.UniversalClient
	logger *logger.Logger
}

func NewProductCache(client redis.UniversalClient, log *logger.Logger) *ProductCache {
	return &ProductCache{client: client, logger: log.Named("ProductCache")}
}

func productKey(id string) string { return productKeyPrefix + id }

func (c *ProductCache) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	if err := c.getJSON(ctx, productKey(id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *ProductCache) SetProduct(ctx context.Context, product *domain.Product, ttl time.Duration) error {
	return c.setJSON(ctx, productKey(product.ID), product, ttl)
}

func (c *ProductCache) DeleteProduct(ctx context.Context, id string) error {
	return c.del(ctx, productKey(id))
}

func (c *ProductCache) GetCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.getJSON(ctx, categoriesKey, &categories); err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []string{}
	}
	return categories, nil
}

func (c *ProductCache) SetCategories(ctx context.Context, categories []string, ttl time.Duration) error {
	return c.setJSON(ctx, categoriesKey, categories, ttl)
}

func (c *ProductCache) DeleteCategories(ctx context.Context) error {
	return c.del(ctx, categoriesKey)
}

func (c *ProductCache) getJSON(ctx context.Context, key string, dst any) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.ErrCacheMiss
		}
		c.logger.Error("Redis GET failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("redis get %q: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		c.logger.Warn("Dropping undecodable cache entry", zap.String("key", key), zap.Error(err))
		_ = c.client.Del(ctx, key).Err()
		return domain.ErrCacheMiss
	}
	return nil
}

func (c *ProductCache) setJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache entry %q: %w", key, err)
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		c.logger.Error("Redis SET failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	c.logger.Debug("Cached entry", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (c *ProductCache) del(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logger.Error("Redis DEL failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("redis del %q: %w", key, err)
	}
	return nil
}
