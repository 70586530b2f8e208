package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/marketplace/backend/internal/application/catalog"
	identityapp "github.com/marketplace/backend/internal/application/identity"
	orderingapp "github.com/marketplace/backend/internal/application/ordering"
	"github.com/marketplace/backend/internal/infrastructure/auth"
	"github.com/marketplace/backend/internal/infrastructure/config"
	"github.com/marketplace/backend/internal/infrastructure/logger"
	"github.com/marketplace/backend/internal/infrastructure/mail"
	"github.com/marketplace/backend/internal/infrastructure/persistence"
	"github.com/marketplace/backend/internal/infrastructure/queue"
	"github.com/marketplace/backend/internal/infrastructure/storage"
	"github.com/marketplace/backend/internal/interfaces/http/handler"
	"github.com/marketplace/backend/internal/interfaces/http/middleware"
	"github.com/marketplace/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting marketplace backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

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
	userRepo := persistence.NewGormUserRepository(db.DB)
	tokenRepo := persistence.NewGormConfirmTokenRepository(db.DB)
	contactRepo := persistence.NewGormContactRepository(db.DB)
	shopRepo := persistence.NewGormShopRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)

	// Token infrastructure
	jwtService := auth.NewJWTService(cfg.JWT)
	blacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := blacklist.Close(); err != nil {
			log.Error("Error closing Redis connection", zap.Error(err))
		}
	}()

	// Outgoing mail
	mailer, err := mail.New(cfg.Mail, log)
	if err != nil {
		log.Fatal("Failed to initialize mailer", zap.Error(err))
	}

	// Price list storage and import queue
	fileStorage, err := storage.NewFromConfig(cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to initialize file storage", zap.Error(err))
	}
	publisher, err := queue.NewPublisher(cfg.Queue, log)
	if err != nil {
		log.Fatal("Failed to connect to message broker", zap.Error(err))
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error("Error closing broker connection", zap.Error(err))
		}
	}()

	// Initialize application services
	accountService := identityapp.NewAccountService(userRepo, tokenRepo, jwtService, blacklist, mailer, log)
	contactService := identityapp.NewContactService(contactRepo, log)
	catalogService := catalogapp.NewService(shopRepo, categoryRepo, productRepo, log)
	orderService := orderingapp.NewService(orderRepo, productRepo, shopRepo, contactRepo, userRepo, mailer, log)

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(accountService)
	accountHandler := handler.NewAccountHandler(accountService, contactService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	basketHandler := handler.NewBasketHandler(orderService)
	orderHandler := handler.NewOrderHandler(orderService)
	partnerHandler := handler.NewPartnerHandler(catalogService, orderService, fileStorage, publisher, cfg.Import.MaxFileSize, log)
	systemHandler := handler.NewSystemHandler()

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
	// 6. BodyLimit - Limit request body size
	// 7. RateLimit - Apply rate limiting (if enabled)
	// 8. JWT - Authenticate everything outside the public paths
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.TokenBlacklist = blacklist
	jwtConfig.Logger = log
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Register route groups
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(systemHandler).
		Register(authHandler).
		Register(accountHandler).
		Register(catalogHandler).
		Register(basketHandler).
		Register(orderHandler).
		Register(partnerHandler)
	r.Setup()

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
