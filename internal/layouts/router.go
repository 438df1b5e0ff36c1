package layouts

import (
	"boletera/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupLayoutRoutes(rg *gin.RouterGroup, controller Controller) {
	// Public seat-map reads
	layouts := rg.Group("/layouts")
	{
		layouts.GET("/:layoutId", controller.GetLayout)
		layouts.GET("/:layoutId/sections/stats", controller.GetSectionStats)
	}

	// Layout editing is an operator tool
	admin := rg.Group("/admin/layouts")
	admin.Use(middleware.JWTAuth(), middleware.RequireOperator())
	{
		admin.PUT("/:layoutId/sync", controller.SyncLayout)
	}
}
