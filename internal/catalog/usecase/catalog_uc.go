package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/catalog-service/internal/catalog/domain"
	"github.com/Abdurahmanit/GroupProject/catalog-service/internal/catalog/query"
	"github.com/Abdurahmanit/GroupProject/catalog-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/catalog-service/internal/platform/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "catalog-service/usecase"

// Dependencies are the adapters a CatalogUsecase talks to. Cache, Publisher,
// Storage and Metrics may be nil; the corresponding side effects are skipped.
type Dependencies struct {
	Repo      domain.ProductRepository
	Storage   domain.ImageStorage
	Cache     domain.ProductCache
	Publisher domain.EventPublisher
	Metrics   *metrics.MetricsManager
}

// Options tune catalog behaviour. Location is the time zone of date filter day
// boundaries (nil means UTC). A zero QueryTimeout leaves search bounded only by
// the caller's context.
type Options struct {
	Location        *time.Location
	MaxItemsPerPage int
	QueryTimeout    time.Duration
	MaxImages       int
	MaxImageBytes   int64
	ProductTTL      time.Duration
	CategoriesTTL   time.Duration
}

// CatalogUsecase implements product search and the product write path.
type CatalogUsecase struct {
	repo      domain.ProductRepository
	storage   domain.ImageStorage
	cache     domain.ProductCache
	publisher domain.EventPublisher
	metrics   *metrics.MetricsManager
	builder   *query.Builder
	opts      Options
	tracer    trace.Tracer
	logger    *logger.Logger
}

// NewCatalogUsecase creates a new CatalogUsecase.
func NewCatalogUsecase(deps Dependencies, opts Options, log *logger.Logger) *CatalogUsecase {
	return &CatalogUsecase{
		repo:      deps.Repo,
		storage:   deps.Storage,
		cache:     deps.Cache,
		publisher: deps.Publisher,
		metrics:   deps.Metrics,
		builder:   query.NewBuilder(opts.Location),
		opts:      opts,
		tracer:    otel.Tracer(tracerName),
		logger:    log.Named("CatalogUsecase"),
	}
}

// SearchProducts returns one page of products matching spec together with the
// pagination of the whole match set. Count and fetch use the same predicate but
// are not isolated from concurrent writes.
func (uc *CatalogUsecase) SearchProducts(ctx context.Context, spec domain.FilterSpec, req domain.PageRequest) (*domain.SearchResult, error) {
	ctx, span := uc.tracer.Start(ctx, "CatalogUsecase.SearchProducts", trace.WithAttributes(
		attribute.Int("catalog.page", req.Page),
		attribute.Int("catalog.items_per_page", req.ItemsPerPage),
		attribute.String("catalog.sort_order", string(spec.SortOrder)),
	))
	defer span.End()

	if err := req.Validate(uc.opts.MaxItemsPerPage); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if uc.opts.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.opts.QueryTimeout)
		defer cancel()
	}

	pred, order := uc.builder.Build(spec)

	total, err := uc.repo.Count(ctx, pred)
	if err != nil {
		uc.logger.Error("Failed to count products", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "count failed")
		return nil, fmt.Errorf("%w: count products: %v", domain.ErrQuery, err)
	}

	window, err := domain.Paginate(total, req.Page, req.ItemsPerPage)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	products, err := uc.repo.Find(ctx, pred, order, window.Skip, window.Limit)
	if err != nil {
		uc.logger.Error("Failed to fetch products",
			zap.Error(err),
			zap.Int64("skip", window.Skip),
			zap.Int64("limit", window.Limit))
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		return nil, fmt.Errorf("%w: fetch products: %v", domain.ErrQuery, err)
	}
	if products == nil {
		products = []*domain.Product{}
	}

	span.SetAttributes(attribute.Int64("catalog.total_items", total), attribute.Int("catalog.returned", len(products)))
	if uc.metrics != nil {
		uc.metrics.SearchesTotal.Inc()
		uc.metrics.SearchResultItems.Observe(float64(total))
	}
	uc.logger.Debug("Search completed",
		zap.Int64("total_items", total),
		zap.Int64("total_pages", window.TotalPages),
		zap.Int("page", req.Page),
		zap.Int("returned", len(products)))

	return &domain.SearchResult{
		Products:   products,
		Pagination: window.Result(total, req.Page, req.ItemsPerPage),
	}, nil
}
