// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"boletera/internal/events"
	"boletera/internal/inventory"
	"boletera/internal/layouts"
	"boletera/internal/notifications"
	"boletera/internal/orders"
	"boletera/internal/pricing"
	"boletera/internal/shared/config"
	"boletera/internal/shared/database"
	"boletera/pkg/cache"
	"boletera/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	cache    cache.Service
	logger   *logger.Logger
	producer notifications.Producer

	inventoryService inventory.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, cacheService cache.Service, log *logger.Logger, producer notifications.Producer) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		cache:    cacheService,
		logger:   log,
		producer: producer,
	}
}

// InventoryService exposes the wired inventory service so the server can
// attach background jobs to it. Valid after SetupRoutes.
func (r *Router) InventoryService() inventory.Service {
	return r.inventoryService
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	db := r.db.GetPostgreSQL()

	// Repositories
	eventsRepo := events.NewRepository(db)
	layoutsRepo := layouts.NewRepository(db)
	pricingRepo := pricing.NewRepository(db)
	ordersRepo := orders.NewRepository(db)
	inventoryRepo := inventory.NewRepository(db, ordersRepo)

	// Services
	pricingService := pricing.NewService(pricingRepo, r.cache, r.config.Currency)
	inventoryService := inventory.NewService(inventoryRepo, eventsRepo, layoutsRepo, ordersRepo,
		pricingService, r.producer, r.cache, r.logger,
		r.config.Reservation.HoldTTL, r.config.Reservation.MaxSeatsPerOrder, r.config.Currency)
	layoutsService := layouts.NewService(layoutsRepo, eventsRepo, pricingService,
		inventoryService, r.cache, r.logger, r.config.Reservation.HoldTTL)
	r.inventoryService = inventoryService

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		events.SetupEventRoutes(api, events.NewController(eventsRepo))
		layouts.SetupLayoutRoutes(api, layouts.NewController(layoutsService))
		pricing.SetupPricingRoutes(api, pricing.NewController(pricingService))
		inventory.SetupInventoryRoutes(api, inventory.NewController(inventoryService))
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "boletera-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "boletera-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}
