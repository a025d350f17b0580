package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	userUseCase "github.com/avesta-dev/backend-template/internal/domain/usecase/user"

	"github.com/avesta-dev/backend-template/internal/domain/port/messaging"
	"github.com/avesta-dev/backend-template/internal/infrastructure/adapter/api/handler"
	"github.com/avesta-dev/backend-template/internal/infrastructure/adapter/api/routes"
	"github.com/avesta-dev/backend-template/internal/infrastructure/adapter/cache"
	"github.com/avesta-dev/backend-template/internal/infrastructure/adapter/database"
	"github.com/avesta-dev/backend-template/internal/infrastructure/adapter/logger"
	messagingAdapter "github.com/avesta-dev/backend-template/internal/infrastructure/adapter/messaging"
	"github.com/avesta-dev/backend-template/internal/infrastructure/adapter/repository"
	timeProvider "github.com/avesta-dev/backend-template/internal/infrastructure/adapter/time"
	"github.com/avesta-dev/backend-template/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate essential configuration
	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create logger
	appLogger := logger.NewZapLogger(cfg.Environment == "production")

	// Setup database configuration
	dbConfig := &database.Config{
		Driver:          "postgres",
		Host:            cfg.Database.Host,
		Port:            database.ParsePort(cfg.Database.Port),
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		QueryTimeout:    cfg.Database.QueryTimeout,
		LogLevel:        cfg.Logger.Level,
		RetryAttempts:   cfg.Database.RetryAttempts,
		RetryDelay:      int(cfg.Database.RetryDelay.Seconds()),
	}

	// Initialize time provider
	tp := timeProvider.NewRealTimeProvider()

	// Connect to the database
	dbManager := database.NewManager(dbConfig, appLogger, tp)
	if _, err := dbManager.Connect(); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer dbManager.Close()

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Connect to the cache
	redisClient, err := cache.NewClient(context.Background(), &cfg.Redis, appLogger)
	if err != nil {
		appLogger.Error("Failed to connect to redis", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	cacheStore := cache.NewRedisStore(redisClient, appLogger)
	defer cacheStore.Close()

	// Connect to the event broker when enabled
	var publisher messaging.EventPublisher
	if cfg.Messaging.Enabled {
		natsPublisher, err := messagingAdapter.NewNatsPublisher(&cfg.Messaging, appLogger)
		if err != nil {
			appLogger.Error("Failed to connect to message broker", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
		publisher = natsPublisher
	} else {
		publisher = messagingAdapter.NewNoopPublisher()
	}
	defer publisher.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(dbManager.DB(), appLogger)

	// Unit of work (transaction manager)
	uow := database.NewUnitOfWorkManager(dbManager.DB(), appLogger)

	// Initialize use cases
	userUseCaseImpl := userUseCase.NewUserUseCase(uow, userRepo, cacheStore, publisher, tp, appLogger)

	// Initialize API handlers
	userHandler := handler.NewUserHandler(userUseCaseImpl, appLogger)
	healthHandler := handler.NewHealthHandler(dbManager, appLogger)

	// Initialize Gin router
	router := gin.New()

	// Setup middlewares
	routes.SetupMiddlewares(router, appLogger)

	// Setup routes
	routes.SetupRoutes(router, userHandler, healthHandler)

	// Create HTTP server with configurable timeout values
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"port": cfg.Server.Port,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	// Create a deadline to wait for
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Shutdown the server
	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missingConfigs []string

	// Validate server configuration
	if cfg.Server.Port == 0 {
		missingConfigs = append(missingConfigs, "server.port")
	}
	if cfg.Server.ReadTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.readTimeout")
	}
	if cfg.Server.WriteTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.writeTimeout")
	}
	if cfg.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}

	// Validate database configuration; production may supply these through
	// environment variables only
	requiredDB := map[string]string{
		"database.host":     cfg.Database.Host,
		"database.port":     cfg.Database.Port,
		"database.username": cfg.Database.Username,
		"database.password": cfg.Database.Password,
		"database.database": cfg.Database.Database,
	}
	for name, value := range requiredDB {
		if value == "" {
			missingConfigs = append(missingConfigs, name)
		}
	}
	if cfg.Database.QueryTimeout == 0 {
		missingConfigs = append(missingConfigs, "database.queryTimeout")
	}

	// Validate cache configuration
	if cfg.Redis.Addr == "" {
		missingConfigs = append(missingConfigs, "redis.addr")
	}

	// Validate messaging configuration
	if cfg.Messaging.Enabled {
		if cfg.Messaging.URL == "" {
			missingConfigs = append(missingConfigs, "messaging.url")
		}
		if cfg.Messaging.Subject == "" {
			missingConfigs = append(missingConfigs, "messaging.subject")
		}
	}

	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missingConfigs, ", "))
	}
	return nil
}
