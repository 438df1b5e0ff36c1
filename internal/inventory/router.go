package inventory

import (
	"boletera/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupInventoryRoutes(rg *gin.RouterGroup, controller Controller) {
	// Public purchase flow
	reservations := rg.Group("/reservations")
	{
		reservations.POST("", controller.Reserve)
		reservations.POST("/confirm", controller.Confirm)
		reservations.POST("/cancel", controller.Cancel)
		reservations.DELETE("/:holdId", controller.CancelHold)
	}

	// Public availability reads
	sessions := rg.Group("/sessions")
	{
		sessions.GET("/:sessionId/seat-map", controller.GetSessionSeatMap)
		sessions.GET("/:sessionId/seats/:seatId/availability", controller.GetSeatAvailability)
	}

	rg.GET("/orders/:orderId", controller.GetOrder)

	// Door scanning
	operator := rg.Group("/operator")
	operator.Use(middleware.JWTAuth(), middleware.RequireOperator())
	{
		operator.POST("/check-in", controller.CheckIn)
	}

	// Courtesy allocation overrides live holds
	admin := rg.Group("/admin")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.POST("/allocations", controller.AdminAllocate)
		admin.POST("/maintenance/cleanup-holds", controller.CleanupHolds)
	}
}
