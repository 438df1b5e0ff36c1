package events

import (
	"github.com/gin-gonic/gin"
)

func SetupEventRoutes(rg *gin.RouterGroup, controller Controller) {
	events := rg.Group("/events")
	{
		events.GET("", controller.ListEvents)
		events.GET("/:eventId", controller.GetEvent)
		events.GET("/:eventId/sessions", controller.GetSessions)
	}
}
