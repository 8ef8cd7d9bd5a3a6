package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Abdurahmanit/GroupProject/catalog-service/internal/platform/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// MetricsManager holds the catalog service's Prometheus collectors.
type MetricsManager struct {
	Registry             *prometheus.Registry
	SearchesTotal        prometheus.Counter
	SearchResultItems    prometheus.Histogram
	ProductsCreatedTotal prometheus.Counter
	ProductsDeletedTotal prometheus.Counter
	CacheLookupsTotal    *prometheus.CounterVec
	APIErrorsTotal       *prometheus.CounterVec
	APILatency           *prometheus.HistogramVec
}

// NewMetricsManager registers all collectors on a private registry under the serviceName namespace.
func NewMetricsManager(serviceName string) *MetricsManager {
	registry := prometheus.NewRegistry()

	m := &MetricsManager{
		Registry: registry,
		SearchesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "product_searches_total",
			Help:      "Total number of catalog searches executed.",
		}),
		SearchResultItems: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: serviceName,
			Name:      "product_search_matches",
			Help:      "Number of products matching a search, before pagination.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		ProductsCreatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "products_created_total",
			Help:      "Total number of products created.",
		}),
		ProductsDeletedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "products_deleted_total",
			Help:      "Total number of products deleted.",
		}),
		CacheLookupsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "cache_lookups_total",
			Help:      "Cache lookups by key kind and outcome.",
		}, []string{"kind", "result"}),
		APIErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "api_errors_total",
			Help:      "Total number of API errors by route and error type.",
		}, []string{"method", "error_type"}),
		APILatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: serviceName,
			Name:      "api_request_latency_seconds",
			Help:      "Latency of API requests by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}

	registry.MustRegister(
		m.SearchesTotal,
		m.SearchResultItems,
		m.ProductsCreatedTotal,
		m.ProductsDeletedTotal,
		m.CacheLookupsTotal,
		m.APIErrorsTotal,
		m.APILatency,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *MetricsManager) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// MetricsServer exposes /metrics on its own port.
type MetricsServer struct {
	srv    *http.Server
	logger *logger.Logger
}

// NewMetricsServer returns nil when port is empty, which disables the endpoint.
func NewMetricsServer(port string, m *MetricsManager, appLogger *logger.Logger) *MetricsServer {
	if port == "" {
		appLogger.Info("Prometheus metrics server port not configured, server will not start")
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	return &MetricsServer{
		srv: &http.Server{
			Addr:              ":" + port,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: appLogger,
	}
}

// Start blocks serving metrics until Shutdown is called.
func (s *MetricsServer) Start() error {
	if s == nil {
		return nil
	}
	s.logger.Info("Prometheus metrics server starting", zap.String("addr", s.srv.Addr), zap.String("path", "/metrics"))
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *MetricsServer) Shutdown(ctx context.Context) error {
	if s == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
