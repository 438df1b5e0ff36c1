package pricing

import (
	"boletera/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupPricingRoutes(rg *gin.RouterGroup, controller Controller) {
	// Public price reads for seat maps and checkout
	events := rg.Group("/events")
	{
		events.GET("/:eventId/price-tiers", controller.ListTiers)
		events.GET("/:eventId/quote", controller.GetQuote)
	}

	// Tier management
	admin := rg.Group("/admin")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.POST("/price-tiers", controller.CreateTier)
		admin.PUT("/price-tiers/:tierId", controller.UpdateTier)
		admin.DELETE("/price-tiers/:tierId", controller.DeleteTier)
	}
}
