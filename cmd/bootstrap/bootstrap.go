package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalog-service/config"
	"catalog-service/internal/delivery/dto"
	deliveryHttp "catalog-service/internal/delivery/http"
	"catalog-service/internal/delivery/http/handler"
	"catalog-service/internal/delivery/http/middleware"
	"catalog-service/internal/infrastructure/cache"
	"catalog-service/internal/infrastructure/database"
	"catalog-service/internal/repository"
	"catalog-service/internal/service"
	"catalog-service/internal/usecase"
	"catalog-service/pkg/clock"
	"catalog-service/pkg/jwt"
	"catalog-service/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
	Log         *logrus.Logger
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	log := setupLogger(cfg.App.LogLevel)
	app.Log = log
	log.Info("Configuration loaded successfully")

	// Prices travel as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	// Apply schema migrations before the pool is opened
	if cfg.DB.AutoMigrate {
		if err := database.RunMigrations(cfg.DB); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env)
	if err != nil {
		return nil, err
	}
	app.DB = db

	// Initialize Redis
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.RedisClient = redisClient

	// Initialize all layers
	server, err := initializeServer(ctx, cfg, log, db, redisClient)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(level string) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		log.Warnf("Unknown log level %q, falling back to info", level)
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)

	return log
}

func newStatisticsCache(cfg config.CacheConfig, log *logrus.Logger, redisClient *redis.Client) usecase.StatisticsCache {
	if cfg.StatsDriver == config.StatsCacheRedis {
		log.WithField("ttl", cfg.StatsTTL).Info("Using Redis statistics cache")
		return cache.NewRedisStatisticsCache(redisClient, cfg.StatsTTL, log)
	}

	log.WithField("ttl", cfg.StatsTTL).Info("Using in-memory statistics cache")
	return cache.NewMemoryStatisticsCache(cfg.StatsTTL, clock.New())
}

// initializeServer creates and configures the HTTP server
func initializeServer(ctx context.Context, cfg *config.Config, log *logrus.Logger, db *gorm.DB, redisClient *redis.Client) (*http.Server, error) {
	// Initialize JWT service and token allow-list
	jwtService := jwt.NewJWTService(cfg.JWT)
	tokenStore := cache.NewTokenStore(redisClient)

	// Initialize validator
	customValidator := validator.NewValidator()
	dto.RegisterValidations(customValidator)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	productRepo := repository.NewProductRepository(db)
	auditLogRepo := repository.NewAuditLogRepository(db)

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(log, userRepo, roleRepo, jwtService, tokenStore, auditService)
	productUsecase := usecase.NewProductUsecase(log, productRepo, auditService,
		newStatisticsCache(cfg.Cache, log, redisClient), clock.New())
	auditLogUsecase := usecase.NewAuditLogUsecase(log, auditLogRepo)

	if err := authUsecase.EnsureAdmin(ctx, cfg.Admin); err != nil {
		return nil, fmt.Errorf("failed to seed admin account: %w", err)
	}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	productHandler := handler.NewProductHandler(productUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase, customValidator)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, tokenStore, log)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSOrigin)
	loggingMiddleware := middleware.NewLoggingMiddleware(log)
	recoverMiddleware := middleware.NewRecoverMiddleware(log)

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		productHandler,
		auditLogHandler,
		authMiddleware,
		corsMiddleware,
		loggingMiddleware,
		recoverMiddleware,
	)

	// Create server
	return &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Log.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
