package routes

import (
	"github.com/gin-gonic/gin"

	"transit_api/internal/controllers"
)

func LineRoutes(r *gin.Engine, h *controllers.LineController, write gin.HandlerFunc) {
	lines := r.Group("/linhas")
	{
		lines.GET("", h.List)
		lines.GET("/:id", h.Get)
		lines.GET("/:id/veiculos", h.GetVehicles)
		lines.GET("/:id/geojson", h.GeoJSON)
		lines.POST("", write, h.Create)
		lines.PUT("/:id", write, h.Update)
		lines.DELETE("/:id", write, h.Delete)
	}
}
