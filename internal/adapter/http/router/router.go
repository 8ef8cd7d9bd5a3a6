package router

import (
	"net/http"

	"github.com/Abdurahmanit/GroupProject/catalog-service/internal/adapter/http/handler"
	"github.com/Abdurahmanit/GroupProject/catalog-service/internal/adapter/http/middleware"
	"github.com/Abdurahmanit/GroupProject/catalog-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/catalog-service/internal/platform/metrics"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Config holds the router-level settings.
type Config struct {
	JWTSecret          string
	CORSAllowedOrigins []string
}

// NewRouter builds the catalog HTTP router.
func NewRouter(h *handler.Handler, cfg Config, m *metrics.MetricsManager, log *logger.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recoverer(log))
	r.Use(middleware.Metrics(m))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", h.Health)
	SetupProductRoutes(r, h, cfg.JWTSecret, log)
	return r
}

// SetupProductRoutes adds the /api/products routes. Create and delete require
// a bearer token when jwtSecret is set.
func SetupProductRoutes(mux *chi.Mux, h *handler.Handler, jwtSecret string, log *logger.Logger) {
	mux.Group(func(r chi.Router) {
		if jwtSecret != "" {
			r.Use(middleware.JWTAuth(jwtSecret, log))
		}
		r.Post("/api/products", h.CreateProduct)
		r.Delete("/api/products/{id}", h.DeleteProduct)
	})

	mux.Get("/api/products", h.ListProducts)
	mux.Post("/api/products/search", h.SearchProducts)
	mux.Get("/api/products/categories", h.ListCategories)
	mux.Get("/api/products/{id}", h.GetProduct)
}
