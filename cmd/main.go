package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Abdurahmanit/GroupProject/catalog-service/internal/adapter/http/handler"
	"github.com/Abdurahmanit/GroupProject/catalog-service/internal/adapter/http/router"
	natsAdapter "github.com/Abdurahmanit/GroupProject/catalog-service/internal/adapter/messaging/nats"
	"github.com/Abdurahmanit/GroupProject/catalog-service/internal/adapter/repository/cache"
	"github.com/Abdurahmanit/GroupProject/catalog-service/internal/adapter/repository/memory"
	mongoRepo "github.com/Abdurahmanit/GroupProject/catalog-service/internal/adapter/repository/mongodb"
	"github.com/Abdurahmanit/GroupProject/catalog-service/internal/adapter/storage/s3"
	"github.com/Abdurahmanit/GroupProject/catalog-service/internal/catalog/usecase"
	"github.com/Abdurahmanit/GroupProject/catalog-service/internal/config"
	"github.com/Abdurahmanit/GroupProject/catalog-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/catalog-service/internal/platform/metrics"
	"github.com/Abdurahmanit/GroupProject/catalog-service/internal/platform/tracer"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const serviceName = "catalog-service"

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("INFO: .env file not found or error loading: %v. Relying on OS environment variables.\n", err)
	}

	appLogger := logger.NewLogger()
	defer func() { _ = appLogger.Sync() }()
	appLogger.Info("Application starting...", zap.String("service_name", serviceName))

	cfg, err := config.LoadConfig(os.Getenv("CONFIG_PATH"))
	if err != nil {
		appLogger.Fatal("Failed to load configuration", zap.Error(err))
	}
	appLogger.Info("Configuration loaded successfully",
		zap.String("http_port", cfg.HTTP.Port),
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.String("redis_address", cfg.Redis.Address),
		zap.String("nats_url", cfg.NATS.URL),
		zap.Bool("minio_enabled", cfg.MinIO.Endpoint != ""),
		zap.Bool("auth_enabled", cfg.Auth.JWTSecret != ""),
		zap.String("metrics_port", cfg.Metrics.Port),
	)

	serviceTracingName := cfg.Tracing.ServiceName
	if serviceTracingName == "" {
		serviceTracingName = serviceName
	}
	tp := tracer.InitTracer(serviceTracingName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio, appLogger)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			appLogger.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}()

	metricsManager := metrics.NewMetricsManager(cfg.Metrics.Namespace)
	metricsServer := metrics.NewMetricsServer(cfg.Metrics.Port, metricsManager, appLogger)
	go func() {
		if err := metricsServer.Start(); err != nil {
			appLogger.Error("Prometheus metrics server failed", zap.Error(err))
		}
	}()

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	deps := usecase.Dependencies{Metrics: metricsManager}

	switch cfg.Storage.Driver {
	case "memory":
		deps.Repo = memory.NewProductRepository()
		appLogger.Warn("Using in-memory product store; data is lost on restart")
	default:
		mongoClient, err := mongoRepo.NewMongoDBConnection(startupCtx, &cfg.Mongo)
		if err != nil {
			appLogger.Fatal("Failed to connect to MongoDB", zap.Error(err))
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := mongoClient.Disconnect(ctx); err != nil {
				appLogger.Error("Error disconnecting from MongoDB", zap.Error(err))
			}
		}()
		appLogger.Info("Successfully connected and pinged MongoDB.", zap.String("database", cfg.Mongo.Database))

		repo, err := mongoRepo.NewProductRepository(startupCtx, mongoClient.Database(cfg.Mongo.Database), cfg.Mongo.Collection, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize ProductRepository", zap.Error(err))
		}
		deps.Repo = repo
	}

	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(startupCtx, &cfg.Redis, appLogger)
		if err != nil {
			appLogger.Warn("Redis unavailable, continuing without product cache", zap.Error(err))
		} else {
			defer redisClient.Close()
			deps.Cache = cache.NewProductCache(redisClient, appLogger)
		}
	}

	if cfg.NATS.URL != "" {
		publisher, err := natsAdapter.NewPublisher(cfg.NATS.URL, cfg.NATS.ConnectTimeout, appLogger, serviceName)
		if err != nil {
			appLogger.Warn("NATS unavailable, continuing without product events", zap.Error(err))
		} else {
			defer publisher.Close()
			deps.Publisher = publisher
		}
	}

	if cfg.MinIO.Endpoint != "" {
		storage, err := s3.NewS3Storage(startupCtx, &cfg.MinIO, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize image storage", zap.Error(err))
		}
		deps.Storage = storage
	} else {
		appLogger.Info("MinIO endpoint not configured, products with images will be rejected")
	}

	catalogUsecase := usecase.NewCatalogUsecase(deps, usecase.Options{
		Location:        cfg.Location(),
		MaxItemsPerPage: cfg.Catalog.MaxItemsPerPage,
		QueryTimeout:    cfg.Catalog.QueryTimeout,
		MaxImages:       cfg.Catalog.MaxImages,
		MaxImageBytes:   cfg.HTTP.MaxImageBytes,
		ProductTTL:      cfg.Redis.ProductTTL,
		CategoriesTTL:   cfg.Redis.CategoriesTTL,
	}, appLogger)

	catalogHandler := handler.NewHandler(catalogUsecase, handler.Options{
		DefaultItemsPerPage: cfg.Catalog.DefaultItemsPerPage,
		MaxBodyBytes:        cfg.HTTP.MaxBodyBytes,
	}, appLogger)

	mux := router.NewRouter(catalogHandler, router.Config{
		JWTSecret:          cfg.Auth.JWTSecret,
		CORSAllowedOrigins: cfg.HTTP.CORSAllowedOrigins,
	}, metricsManager, appLogger)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      mux,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		appLogger.Info("Starting HTTP server", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		appLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-serverErr:
		appLogger.Error("HTTP server failed", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	if err := metricsServer.Shutdown(ctx); err != nil {
		appLogger.Error("Metrics server shutdown failed", zap.Error(err))
	}
	appLogger.Info("Application shutting down...")
}
