package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/Abdurahmanit/GroupProject/catalog-service/internal/adapter/http/middleware"
	"github.com/Abdurahmanit/GroupProject/catalog-service/internal/catalog/browse"
	"github.com/Abdurahmanit/GroupProject/catalog-service/internal/catalog/domain"
	"github.com/Abdurahmanit/GroupProject/catalog-service/internal/catalog/usecase"
	"github.com/Abdurahmanit/GroupProject/catalog-service/internal/platform/logger"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CatalogService is the catalog behaviour served over HTTP.
type CatalogService interface {
	SearchProducts(ctx context.Context, spec domain.FilterSpec, req domain.PageRequest) (*domain.SearchResult, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
	CreateProduct(ctx context.Context, in usecase.CreateProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// Options configures request decoding limits.
type Options struct {
	DefaultItemsPerPage int
	MaxBodyBytes        int64
}

// Handler serves the catalog HTTP API.
type Handler struct {
	svc    CatalogService
	opts   Options
	logger *logger.Logger
}

// NewHandler creates a catalog Handler.
func NewHandler(svc CatalogService, opts Options, log *logger.Logger) *Handler {
	if opts.DefaultItemsPerPage < 1 {
		opts.DefaultItemsPerPage = browse.DefaultItemsPerPage
	}
	return &Handler{svc: svc, opts: opts, logger: log.Named("CatalogHandler")}
}

// SearchProducts handles POST /api/products/search with the JSON envelope.
func (h *Handler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	req, err := decodeSearchBody(h.limitBody(w, r))
	if err != nil {
		h.fail(w, r, "SearchProducts", err)
		return
	}
	h.search(w, r, req)
}

// ListProducts handles GET /api/products with the envelope in the query string.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	req, err := searchRequestFromQuery(r.URL.Query())
	if err != nil {
		h.fail(w, r, "ListProducts", err)
		return
	}
	h.search(w, r, req)
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request, req searchRequest) {
	spec, page, err := req.toDomain(h.opts.DefaultItemsPerPage)
	if err != nil {
		h.fail(w, r, "SearchProducts", err)
		return
	}

	result, err := h.svc.SearchProducts(r.Context(), spec, page)
	if err != nil {
		h.fail(w, r, "SearchProducts", err)
		return
	}
	products := result.Products
	if products == nil {
		products = []*domain.Product{}
	}
	h.writeJSON(w, http.StatusOK, searchResponse{Success: true, Products: products, Pagination: result.Pagination})
}

// GetProduct handles GET /api/products/{id}.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	product, err := h.svc.GetProduct(r.Context(), id)
	if err != nil {
		h.fail(w, r, "GetProduct", err)
		return
	}
	h.writeJSON(w, http.StatusOK, productResponse{Success: true, Product: product})
}

// ListCategories handles GET /api/products/categories.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.ListCategories(r.Context())
	if err != nil {
		h.fail(w, r, "ListCategories", err)
		return
	}
	if categories == nil {
		categories = []string{}
	}
	h.writeJSON(w, http.StatusOK, categoriesResponse{Success: true, Categories: categories})
}

// CreateProduct handles POST /api/products. It accepts a JSON body with
// base64 images or a multipart form with "images" file parts.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	body := h.limitBody(w, r)

	var (
		in  usecase.CreateProductInput
		err error
	)
	if isMultipart(r) {
		in, err = createInputFromMultipart(r, h.opts.MaxBodyBytes)
	} else {
		var req createRequest
		if req, err = decodeCreateBody(body); err == nil {
			in, err = req.toInput()
		}
	}
	if err != nil {
		h.fail(w, r, "CreateProduct", err)
		return
	}

	product, err := h.svc.CreateProduct(r.Context(), in)
	if err != nil {
		h.fail(w, r, "CreateProduct", err)
		return
	}
	userID, _ := middleware.UserIDFromContext(r.Context())
	h.logger.Info("Product created", zap.String("product_id", product.ID), zap.String("user_id", userID))
	h.writeJSON(w, http.StatusCreated, productResponse{Success: true, Product: product})
}

// DeleteProduct handles DELETE /api/products/{id}.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.DeleteProduct(r.Context(), id); err != nil {
		h.fail(w, r, "DeleteProduct", err)
		return
	}
	userID, _ := middleware.UserIDFromContext(r.Context())
	h.logger.Info("Product deleted", zap.String("product_id", id), zap.String("user_id", userID))
	h.writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "Product deleted"})
}

// Health handles GET /healthz.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) limitBody(w http.ResponseWriter, r *http.Request) io.Reader {
	if h.opts.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxBodyBytes)
	}
	return r.Body
}
