package domain

import (
	"context"
	"time"
)

// ProductRepository is the product record store. Count and Find take the same
// predicate so that pagination metadata and the fetched page agree.
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, pred Predicate) (int64, error)
	Find(ctx context.Context, pred Predicate, sort Sort, skip, limit int64) ([]*Product, error)
	Categories(ctx context.Context) ([]string, error)
}

// ImageStorage stores product images and returns their public URLs.
type ImageStorage interface {
	Upload(ctx context.Context, fileName, contentType string, data []byte) (string, error)
	Remove(ctx context.Context, url string) error
}

// ProductCache is a read-through cache for single products and the category list.
type ProductCache interface {
	GetProduct(ctx context.Context, id string) (*Product, error)
	SetProduct(ctx context.Context, product *Product, ttl time.Duration) error
	DeleteProduct(ctx context.Context, id string) error
	GetCategories(ctx context.Context) ([]string, error)
	SetCategories(ctx context.Context, categories []string, ttl time.Duration) error
	DeleteCategories(ctx context.Context) error
}

// EventPublisher announces catalog changes to other services.
type EventPublisher interface {
	PublishProductCreated(ctx context.Context, product *Product) error
	PublishProductDeleted(ctx context.Context, productID string) error
}
