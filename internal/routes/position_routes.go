package routes

import (
	"github.com/gin-gonic/gin"

	"transit_api/internal/controllers"
)

func PositionRoutes(r *gin.Engine, h *controllers.PositionController, write gin.HandlerFunc) {
	positions := r.Group("/posicoes")
	{
		positions.GET("", h.List)
		positions.GET("/:id", h.Get)
		positions.POST("", write, h.Create)
		positions.PUT("/:id", write, h.Update)
		positions.DELETE("/:id", write, h.Delete)
	}
}
