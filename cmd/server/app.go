package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	appbook "github.com/pricebook/backend/internal/application/pricebook"
	"github.com/pricebook/backend/internal/domain/pricebook"
	"github.com/pricebook/backend/internal/infrastructure/cache"
	"github.com/pricebook/backend/internal/infrastructure/config"
	csvimport "github.com/pricebook/backend/internal/infrastructure/import"
	"github.com/pricebook/backend/internal/infrastructure/event"
	"github.com/pricebook/backend/internal/infrastructure/logger"
	"github.com/pricebook/backend/internal/infrastructure/recognition"
	"github.com/pricebook/backend/internal/infrastructure/storage"
	"github.com/pricebook/backend/internal/infrastructure/telemetry"
	"github.com/pricebook/backend/internal/interfaces/http/dto"
	"github.com/pricebook/backend/internal/interfaces/http/handler"
	"github.com/pricebook/backend/internal/interfaces/http/middleware"
	"github.com/pricebook/backend/internal/interfaces/http/router"
	"go.uber.org/zap"

	_ "github.com/pricebook/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// maxSheetRows caps a single CSV upload.
const maxSheetRows = 5000

// application holds the wired services and the HTTP engine.
type application struct {
	engine  *gin.Engine
	catalog *appbook.CatalogService
	metrics *telemetry.BusinessMetrics

	snapshots pricebook.SnapshotStore
	reviews   pricebook.ReviewStore
}

// newApplication opens the stores, loads the catalog and builds the engine.
func newApplication(ctx context.Context, cfg *config.Config, log *zap.Logger, mp *telemetry.MeterProvider) (*application, error) {
	snapshots, err := storage.Open(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("open snapshot store: %w", err)
	}
	log.Info("Snapshot store opened",
		zap.String("driver", cfg.Storage.Driver),
		zap.String("key", cfg.Storage.Key),
	)

	reviews, err := cache.NewReviewStoreFactory(cfg.Review, cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(cfg.App.Env != "production"),
	).CreateStore(ctx)
	if err != nil {
		_ = snapshots.Close()
		return nil, fmt.Errorf("open review store: %w", err)
	}

	recognizer, err := newRecognizer(ctx, cfg, log)
	if err != nil {
		_ = snapshots.Close()
		_ = reviews.Close()
		return nil, err
	}

	eventBus := event.NewInMemoryEventBus(log)
	catalog := appbook.NewCatalogService(snapshots, cfg.Storage.Key, eventBus, log)

	metrics, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter:         mp.Meter("pricebook"),
		Logger:        log,
		StatsProvider: catalog,
	})
	if err != nil {
		_ = snapshots.Close()
		_ = reviews.Close()
		return nil, fmt.Errorf("create business metrics: %w", err)
	}

	// Subscribers must be in place before Load so a seeded catalog is persisted.
	eventBus.Subscribe(appbook.NewSnapshotWriter(snapshots, cfg.Storage.Key, cfg.Storage.Driver, metrics, log))
	eventBus.Subscribe(appbook.NewCatalogMetricsHandler(metrics))

	source := catalog.Load(ctx)
	log.Info("Catalog ready", zap.String("source", string(source)), zap.Uint64("revision", catalog.Revision()))

	editor := appbook.NewEditorService(catalog)
	reviewService := appbook.NewReviewService(
		reviews,
		catalog,
		recognizer,
		csvimport.NewSheetParser(maxSheetRows),
		appbook.ReviewSettings{
			TTL:                cfg.Review.TTL,
			PlaceholderName:    cfg.Review.PlaceholderName,
			RecognitionTimeout: cfg.Recognition.Timeout,
		},
		log,
		appbook.WithReviewMetrics(metrics),
	)

	handlers := router.APIHandlers{
		Products:   handler.NewProductHandler(catalog, editor),
		Pricing:    handler.NewPricingHandler(editor),
		Categories: handler.NewCategoryHandler(),
		Reviews:    handler.NewReviewHandler(reviewService, cfg.Recognition.MaxImageBytes),
		System: handler.NewSystemHandler(cfg.App.Name,
			handler.WithSnapshotStore(snapshots, cfg.Storage.Driver, cfg.Storage.Key),
			handler.WithRevision(catalog),
		),
	}

	return &application{
		engine:    newEngine(cfg, log, mp, handlers),
		catalog:   catalog,
		metrics:   metrics,
		snapshots: snapshots,
		reviews:   reviews,
	}, nil
}

// newRecognizer picks the recognition backend. Outside production a
// missing API key falls back to the stub so the rest of the API stays usable.
func newRecognizer(ctx context.Context, cfg *config.Config, log *zap.Logger) (pricebook.Recognizer, error) {
	if cfg.Recognition.Provider == "stub" {
		log.Info("Using stub recognizer", zap.String("fixture", cfg.Recognition.StubFixture))
		return recognition.NewStubAdapter(cfg.Recognition.StubFixture), nil
	}

	gemini, err := recognition.NewGeminiAdapter(ctx, &recognition.GeminiConfig{
		APIKey:  cfg.Recognition.APIKey,
		Model:   cfg.Recognition.Model,
		Timeout: cfg.Recognition.Timeout,
	}, log)
	if errors.Is(err, recognition.ErrGeminiMissingAPIKey) && cfg.App.Env != "production" {
		log.Warn("Gemini API key not configured, photo recognition uses the stub recognizer")
		return recognition.NewStubAdapter(cfg.Recognition.StubFixture), nil
	}
	if err != nil {
		return nil, fmt.Errorf("create gemini recognizer: %w", err)
	}
	return gemini, nil
}

// newEngine builds the gin engine with the global middleware chain and
// every route.
func newEngine(cfg *config.Config, log *zap.Logger, mp *telemetry.MeterProvider, h router.APIHandlers) *gin.Engine {
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Invalid trusted proxies, ignoring", zap.Error(err))
		}
	} else {
		_ = engine.SetTrustedProxies(nil)
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.SpanEnricher())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
		MeterProvider: mp,
		Enabled:       mp.IsEnabled(),
	}))
	engine.Use(middleware.Secure())

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	engine.Use(middleware.CORSWithConfig(corsCfg))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	engine.GET("/health", h.System.Health)

	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:    cfg.Swagger.Enabled,
			AllowedIPs: cfg.Swagger.AllowedIPs,
		}),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	limiter := middleware.NewRateLimiter(cfg.Recognition.RateLimitEvery, cfg.Recognition.RateLimitBurst)
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(router.Registrars(router.PricebookGroups(h, middleware.RateLimit(limiter)))...)
	r.Setup()

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeNotFound, "Route not found", middleware.GetRequestID(c)))
	})

	return engine
}

// Close stops metrics collection and releases the stores.
func (a *application) Close(log *zap.Logger) {
	a.metrics.Stop()
	if err := a.reviews.Close(); err != nil {
		log.Error("Error closing review store", zap.Error(err))
	}
	if err := a.snapshots.Close(); err != nil {
		log.Error("Error closing snapshot store", zap.Error(err))
	}
}
