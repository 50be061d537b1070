package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	activityapp "github.com/printmarket/backend/internal/application/activity"
	customizationapp "github.com/printmarket/backend/internal/application/customization"
	discountapp "github.com/printmarket/backend/internal/application/discount"
	"github.com/printmarket/backend/internal/application/fulfillment"
	"github.com/printmarket/backend/internal/domain/shared"
	"github.com/printmarket/backend/internal/infrastructure/auth"
	"github.com/printmarket/backend/internal/infrastructure/cache"
	"github.com/printmarket/backend/internal/infrastructure/config"
	"github.com/printmarket/backend/internal/infrastructure/event"
	"github.com/printmarket/backend/internal/infrastructure/ledger"
	"github.com/printmarket/backend/internal/infrastructure/logger"
	"github.com/printmarket/backend/internal/infrastructure/persistence"
	"github.com/printmarket/backend/internal/infrastructure/storage"
	"github.com/printmarket/backend/internal/interfaces/http/handler"
	"github.com/printmarket/backend/internal/interfaces/http/middleware"
	"github.com/printmarket/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Print Market Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	requestRepo := persistence.NewGormRequestRepository(db.DB)
	discountRepo := persistence.NewGormDiscountRepository(db.DB)
	shopRepo := persistence.NewGormShopRepository(db.DB)
	designerRepo := persistence.NewGormDesignerRepository(db.DB)
	activityRepo := persistence.NewGormActivityRepository(db.DB)

	// Shop matching cache: Redis when configured, in-process otherwise
	var matchCache shared.Cache
	if cfg.Redis.Host != "" {
		redisCache, err := cache.NewRedisCache(cfg.Redis)
		if err != nil {
			log.Warn("Redis unavailable, falling back to in-memory cache",
				zap.String("addr", cfg.Redis.Addr()),
				zap.Error(err),
			)
			matchCache = cache.NewInMemoryCache()
		} else {
			defer func() {
				if err := redisCache.Close(); err != nil {
					log.Error("Error closing redis", zap.Error(err))
				}
			}()
			matchCache = redisCache
			log.Info("Redis cache connected", zap.String("addr", cfg.Redis.Addr()))
		}
	} else {
		matchCache = cache.NewInMemoryCache()
	}

	// Escrow ledger: HTTP-backed when a base URL is configured
	var escrowLedger fulfillment.EscrowLedger
	if cfg.Escrow.BaseURL != "" {
		httpLedger, err := ledger.NewHTTPEscrowLedger(&cfg.Escrow, ledger.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize escrow ledger", zap.Error(err))
		}
		escrowLedger = httpLedger
		log.Info("Escrow ledger configured", zap.String("base_url", cfg.Escrow.BaseURL))
	} else {
		escrowLedger = ledger.NewNoopEscrowLedger(log)
		log.Warn("No escrow ledger configured, fund releases are log-only")
	}

	// Design file storage: S3 when a bucket is configured
	var objectStorage customizationapp.ObjectStorageService
	if cfg.Storage.Bucket != "" {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		objectStorage = s3Storage
		log.Info("Object storage configured",
			zap.String("bucket", cfg.Storage.Bucket),
			zap.String("region", cfg.Storage.Region),
		)
	} else {
		objectStorage = storage.NewStubObjectStorage()
		log.Warn("No object storage configured, presigned URLs are stubbed")
	}

	// Initialize application services
	orderService := fulfillment.NewOrderService(orderRepo, productRepo, requestRepo, discountRepo, escrowLedger)
	requestService := customizationapp.NewRequestService(requestRepo, productRepo, shopRepo)
	matchingService := customizationapp.NewShopMatchingService(
		requestRepo, productRepo, shopRepo, designerRepo, matchCache, log,
		customizationapp.WithMatchCacheTTL(cfg.Matching.CacheTTL),
	)
	fileService := customizationapp.NewFileService(requestRepo, objectStorage, cfg.Storage.PresignExpiry)
	requestService.SetMatchInvalidator(matchingService)
	discountService := discountapp.NewDiscountService(discountRepo)
	activityQueryService := activityapp.NewQueryService(activityRepo)

	// Initialize event bus and handlers
	eventBus := event.NewInMemoryEventBus(log)

	// Every domain event lands in the activity trail
	recorder := activityapp.NewRecorder(activityRepo, log)
	eventBus.Subscribe(recorder)

	// Order delivered -> close customization requests, credit the shop
	orderDeliveredHandler := fulfillment.NewOrderDeliveredHandler(requestRepo, shopRepo, log)
	orderDeliveredHandler.SetMatchInvalidator(matchingService)
	eventBus.Subscribe(orderDeliveredHandler)

	// Order cancelled -> reopen shop selection on linked approved requests
	orderCancelledHandler := fulfillment.NewOrderCancelledHandler(requestRepo, log)
	orderCancelledHandler.SetMatchInvalidator(matchingService)
	eventBus.Subscribe(orderCancelledHandler)

	log.Info("Event handlers registered",
		zap.Strings("order_delivered_events", orderDeliveredHandler.EventTypes()),
		zap.Strings("order_cancelled_events", orderCancelledHandler.EventTypes()),
	)

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Inject event bus into services that publish events
	orderService.SetEventPublisher(eventBus)
	requestService.SetEventPublisher(eventBus)

	// Initialize HTTP handlers
	orderHandler := handler.NewOrderHandler(orderService)
	customizationHandler := handler.NewCustomizationHandler(requestService, matchingService, fileService)
	discountHandler := handler.NewDiscountHandler(discountService)
	activityHandler := handler.NewActivityHandler(activityQueryService)
	systemHandler := handler.NewSystemHandler(db)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. Actor - Resolve the acting party from the bearer token
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	verifier := auth.NewTokenVerifier(cfg.JWT)
	actorConfig := middleware.ActorMiddlewareConfig{
		Verifier: verifier,
		// Header identities ease local testing; tokens only in production
		AllowHeaderFallback: cfg.App.Env != "production",
		SkipPaths: []string{
			"/health",
			"/api/v1/ping",
			"/api/v1/health",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		Logger: log,
	}
	engine.Use(middleware.ResolveActorWithConfig(actorConfig))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", systemHandler.Health)

	// Register API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(orderHandler).
		Register(customizationHandler).
		Register(discountHandler).
		Register(activityHandler).
		Register(systemHandler)
	r.Setup()

	// Simple ping at root API level for basic liveness checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
