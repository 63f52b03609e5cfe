package routes

import (
	"github.com/gin-gonic/gin"

	"transit_api/internal/controllers"
)

func WebSocketRoutes(r *gin.Engine, hub *controllers.PositionHub) {
	ws := r.Group("/ws")
	{
		ws.GET("/posicoes", hub.Serve)
	}
}
