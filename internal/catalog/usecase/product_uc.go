package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Abdurahmanit/GroupProject/catalog-service/internal/catalog/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// ImageUpload is one image file received with a create request.
type ImageUpload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// CreateProductInput holds the input parameters for creating a product.
type CreateProductInput struct {
	Name     string
	Price    float64
	Category string
	Images   []ImageUpload
}

func (uc *CatalogUsecase) validateCreate(in *CreateProductInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)

	if in.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if math.IsNaN(in.Price) || math.IsInf(in.Price, 0) || in.Price < 0 {
		return fmt.Errorf("%w: price must be a non-negative number", domain.ErrValidation)
	}
	if uc.opts.MaxImages > 0 && len(in.Images) > uc.opts.MaxImages {
		return fmt.Errorf("%w: at most %d images are allowed, got %d", domain.ErrValidation, uc.opts.MaxImages, len(in.Images))
	}
	for i, img := range in.Images {
		if len(img.Data) == 0 {
			return fmt.Errorf("%w: image %d is empty", domain.ErrValidation, i+1)
		}
		if uc.opts.MaxImageBytes > 0 && int64(len(img.Data)) > uc.opts.MaxImageBytes {
			return fmt.Errorf("%w: image %d exceeds %d bytes", domain.ErrValidation, i+1, uc.opts.MaxImageBytes)
		}
	}
	if len(in.Images) > 0 && uc.storage == nil {
		return fmt.Errorf("%w: image storage is not configured", domain.ErrStorage)
	}
	return nil
}

// CreateProduct validates input, uploads its images and stores the product.
// Images already uploaded are removed again if any later step fails.
func (uc *CatalogUsecase) CreateProduct(ctx context.Context, in CreateProductInput) (*domain.Product, error) {
	ctx, span := uc.tracer.Start(ctx, "CatalogUsecase.CreateProduct", trace.WithAttributes(
		attribute.Int("catalog.images", len(in.Images)),
	))
	defer span.End()

	uc.logger.Info("Creating product",
		zap.String("name", in.Name),
		zap.Float64("price", in.Price),
		zap.String("category", in.Category),
		zap.Int("images", len(in.Images)))

	if err := uc.validateCreate(&in); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	urls := make([]string, 0, len(in.Images))
	for _, img := range in.Images {
		url, err := uc.storage.Upload(ctx, img.FileName, img.ContentType, img.Data)
		if err != nil {
			uc.logger.Error("Failed to upload product image", zap.Error(err), zap.String("file_name", img.FileName))
			uc.removeImages(ctx, urls)
			span.RecordError(err)
			span.SetStatus(codes.Error, "image upload failed")
			return nil, fmt.Errorf("%w: upload %q: %v", domain.ErrStorage, img.FileName, err)
		}
		urls = append(urls, url)
	}

	product := &domain.Product{
		Name:     in.Name,
		Price:    in.Price,
		Category: in.Category,
		Images:   urls,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		uc.logger.Error("Failed to save product to repository", zap.Error(err))
		uc.removeImages(ctx, urls)
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
		return nil, fmt.Errorf("%w: create product: %v", domain.ErrQuery, err)
	}

	if uc.cache != nil && product.Category != "" {
		if err := uc.cache.DeleteCategories(ctx); err != nil {
			uc.logger.Warn("Failed to invalidate cached categories", zap.Error(err))
		}
	}
	if uc.publisher != nil {
		if err := uc.publisher.PublishProductCreated(ctx, product); err != nil {
			uc.logger.Warn("Failed to publish product.created event", zap.Error(err), zap.String("product_id", product.ID))
		}
	}
	if uc.metrics != nil {
		uc.metrics.ProductsCreatedTotal.Inc()
	}

	span.SetAttributes(attribute.String("catalog.product_id", product.ID))
	uc.logger.Info("Product created successfully", zap.String("product_id", product.ID))
	return product, nil
}

// DeleteProduct removes the product and, best effort, its images and cache entries.
func (uc *CatalogUsecase) DeleteProduct(ctx context.Context, id string) error {
	ctx, span := uc.tracer.Start(ctx, "CatalogUsecase.DeleteProduct", trace.WithAttributes(
		attribute.String("catalog.product_id", id),
	))
	defer span.End()

	uc.logger.Info("Deleting product", zap.String("product_id", id))

	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return uc.lookupError(span, id, err)
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return uc.lookupError(span, id, err)
	}

	uc.removeImages(ctx, product.Images)
	if uc.cache != nil {
		if err := uc.cache.DeleteProduct(ctx, id); err != nil {
			uc.logger.Warn("Failed to evict cached product", zap.Error(err), zap.String("product_id", id))
		}
		if err := uc.cache.DeleteCategories(ctx); err != nil {
			uc.logger.Warn("Failed to invalidate cached categories", zap.Error(err))
		}
	}
	if uc.publisher != nil {
		if err := uc.publisher.PublishProductDeleted(ctx, id); err != nil {
			uc.logger.Warn("Failed to publish product.deleted event", zap.Error(err), zap.String("product_id", id))
		}
	}
	if uc.metrics != nil {
		uc.metrics.ProductsDeletedTotal.Inc()
	}

	uc.logger.Info("Product deleted successfully", zap.String("product_id", id))
	return nil
}

// GetProduct returns a product by id, reading through the cache when one is configured.
func (uc *CatalogUsecase) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	ctx, span := uc.tracer.Start(ctx, "CatalogUsecase.GetProduct", trace.WithAttributes(
		attribute.String("catalog.product_id", id),
	))
	defer span.End()

	if uc.cache != nil {
		cached, err := uc.cache.GetProduct(ctx, id)
		switch {
		case err == nil:
			uc.countCacheLookup("product", "hit")
			return cached, nil
		case errors.Is(err, domain.ErrCacheMiss):
			uc.countCacheLookup("product", "miss")
		default:
			uc.countCacheLookup("product", "error")
			uc.logger.Warn("Product cache lookup failed", zap.Error(err), zap.String("product_id", id))
		}
	}

	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, uc.lookupError(span, id, err)
	}

	if uc.cache != nil {
		if err := uc.cache.SetProduct(ctx, product, uc.opts.ProductTTL); err != nil {
			uc.logger.Warn("Failed to cache product", zap.Error(err), zap.String("product_id", id))
		}
	}
	return product, nil
}

// ListCategories returns the distinct non-empty product categories in ascending order.
func (uc *CatalogUsecase) ListCategories(ctx context.Context) ([]string, error) {
	ctx, span := uc.tracer.Start(ctx, "CatalogUsecase.ListCategories")
	defer span.End()

	if uc.cache != nil {
		cached, err := uc.cache.GetCategories(ctx)
		switch {
		case err == nil:
			uc.countCacheLookup("categories", "hit")
			return cached, nil
		case errors.Is(err, domain.ErrCacheMiss):
			uc.countCacheLookup("categories", "miss")
		default:
			uc.countCacheLookup("categories", "error")
			uc.logger.Warn("Category cache lookup failed", zap.Error(err))
		}
	}

	categories, err := uc.repo.Categories(ctx)
	if err != nil {
		uc.logger.Error("Failed to list categories", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "distinct failed")
		return nil, fmt.Errorf("%w: list categories: %v", domain.ErrQuery, err)
	}
	if categories == nil {
		categories = []string{}
	}

	if uc.cache != nil {
		if err := uc.cache.SetCategories(ctx, categories, uc.opts.CategoriesTTL); err != nil {
			uc.logger.Warn("Failed to cache categories", zap.Error(err))
		}
	}
	return categories, nil
}

func (uc *CatalogUsecase) lookupError(span trace.Span, id string, err error) error {
	if errors.Is(err, domain.ErrProductNotFound) {
		span.SetStatus(codes.Error, "not found")
		return err
	}
	uc.logger.Error("Product store failure", zap.Error(err), zap.String("product_id", id))
	span.RecordError(err)
	span.SetStatus(codes.Error, "store failure")
	return fmt.Errorf("%w: product %s: %v", domain.ErrQuery, id, err)
}

func (uc *CatalogUsecase) removeImages(ctx context.Context, urls []string) {
	if uc.storage == nil {
		return
	}
	for _, url := range urls {
		if err := uc.storage.Remove(ctx, url); err != nil {
			uc.logger.Warn("Failed to remove product image", zap.Error(err), zap.String("url", url))
		}
	}
}

func (uc *CatalogUsecase) countCacheLookup(kind, result string) {
	if uc.metrics != nil {
		uc.metrics.CacheLookupsTotal.WithLabelValues(kind, result).Inc()
	}
}
