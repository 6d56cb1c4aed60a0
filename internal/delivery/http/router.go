package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/avolkau/storefront/internal/config"
	"github.com/avolkau/storefront/internal/delivery/http/handler"
	"github.com/avolkau/storefront/internal/delivery/http/middleware"
	"github.com/avolkau/storefront/internal/delivery/http/response"
	"github.com/avolkau/storefront/internal/pkg/logger"
)

// Router holds HTTP handlers and router configuration
type Router struct {
	productHandler *handler.ProductHandler
	orderHandler   *handler.OrderHandler
	logger         *logger.Logger
	cfg            *config.Config
}

// NewRouter creates a new HTTP router
func NewRouter(
	productHandler *handler.ProductHandler,
	orderHandler *handler.OrderHandler,
	cfg *config.Config,
	log *logger.Logger,
) *Router {
	return &Router{
		productHandler: productHandler,
		orderHandler:   orderHandler,
		logger:         log,
		cfg:            cfg,
	}
}

// Setup configures and returns the HTTP router
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logger(rt.logger))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rt.cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "Location"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", rt.healthCheck)
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Post("/", rt.productHandler.Create)
			r.Get("/", rt.productHandler.List)
			r.Get("/available", rt.productHandler.GetAvailable)
			r.Get("/price-range", rt.productHandler.GetByPriceRange)
			r.Get("/low-stock", rt.productHandler.GetLowStock)
			r.Get("/sku/{sku}", rt.productHandler.GetBySKU)
			r.Get("/category/{category}", rt.productHandler.GetByCategory)
			r.Get("/{id}", rt.productHandler.GetByID)
			r.Put("/{id}", rt.productHandler.Update)
			r.Patch("/{id}/stock", rt.productHandler.UpdateStock)
			r.Delete("/{id}", rt.productHandler.Delete)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", rt.orderHandler.Create)
			r.Get("/", rt.orderHandler.List)
			r.Get("/date-range", rt.orderHandler.GetByDateRange)
			r.Get("/number/{number}", rt.orderHandler.GetByNumber)
			r.Get("/status/{status}", rt.orderHandler.GetByStatus)
			r.Get("/product/{productId}", rt.orderHandler.GetByProduct)
			r.Get("/{id}", rt.orderHandler.GetByID)
			r.Put("/{id}", rt.orderHandler.Update)
			r.Delete("/{id}", rt.orderHandler.Delete)
			r.Post("/{id}/products", rt.orderHandler.AddProduct)
			r.Delete("/{id}/products/{productId}", rt.orderHandler.RemoveProduct)
			r.Patch("/{id}/approve", rt.orderHandler.Approve)
			r.Patch("/{id}/cancel", rt.orderHandler.Cancel)
		})
	})

	return r
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
