package routes

import (
	"github.com/gin-gonic/gin"

	"transit_api/internal/controllers"
)

func StopRoutes(r *gin.Engine, h *controllers.StopController, write gin.HandlerFunc) {
	r.GET("/paradas-posicao", h.ListNear)

	stops := r.Group("/paradas")
	{
		stops.GET("", h.List)
		stops.GET("/:id", h.Get)
		stops.GET("/:id/linhas", h.GetLines)
		stops.POST("", write, h.Create)
		stops.PUT("/:id", write, h.Update)
		stops.DELETE("/:id", write, h.Delete)
	}
}
