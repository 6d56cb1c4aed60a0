package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avolkau/storefront/internal/config"
	"github.com/avolkau/storefront/internal/delivery/events"
	httpDelivery "github.com/avolkau/storefront/internal/delivery/http"
	"github.com/avolkau/storefront/internal/delivery/http/handler"
	"github.com/avolkau/storefront/internal/pkg/cache"
	"github.com/avolkau/storefront/internal/pkg/database"
	"github.com/avolkau/storefront/internal/pkg/logger"
	cacheRepo "github.com/avolkau/storefront/internal/repository/cache"
	"github.com/avolkau/storefront/internal/repository/postgres"
	"github.com/avolkau/storefront/internal/usecase/catalog"
	"github.com/avolkau/storefront/internal/usecase/orders"

	_ "github.com/avolkau/storefront/docs"
)

// @title Storefront API
// @version 1.0
// @description A product catalog and order management system with RESTful APIs, caching, and event notifications.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://github.com/avolkau/storefront
// @contact.email support@example.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @tag.name Products
// @tag.description Product catalog endpoints

// @tag.name Orders
// @tag.description Order management endpoints

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.New(cfg.Env)
	appLogger.Info("Starting Storefront API...")

	appLogger.Info("Connecting to PostgreSQL...")
	db, err := database.WaitForDB(cfg, 10, 2*time.Second)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", err)
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL successfully")

	appLogger.Info("Running database migrations...")
	if err := database.RunMigrations(db); err != nil {
		appLogger.Fatal("Failed to run migrations", err)
	}
	appLogger.Info("Database migrations applied")

	appLogger.Info("Connecting to Redis...")
	redisClient, err := cache.WaitForRedis(cfg, 10, 2*time.Second)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", err)
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis successfully")

	appLogger.Info("Connecting to NATS...")
	publisher, err := events.NewPublisher(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create NATS publisher", err)
	}
	defer publisher.Close()

	productRepo := postgres.NewProductRepository(db)
	orderRepo := postgres.NewOrderRepository(db)
	productCache := cacheRepo.NewProductCache(
		redisClient,
		cfg.Cache.ProductTTL,
		cfg.Cache.CategoryListTTL,
	)

	catalogService := catalog.NewService(productRepo, productCache, appLogger)
	orderService := orders.NewService(orderRepo, productRepo, publisher, appLogger)

	productHandler := handler.NewProductHandler(catalogService, appLogger)
	orderHandler := handler.NewOrderHandler(orderService, appLogger)

	router := httpDelivery.NewRouter(productHandler, orderHandler, cfg, appLogger)
	httpHandler := router.Setup()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      httpHandler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		appLogger.Infof("HTTP server listening on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("HTTP server failed", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", err)
	}

	appLogger.Info("Server stopped gracefully")
}
