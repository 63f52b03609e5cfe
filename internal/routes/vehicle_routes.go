package routes

import (
	"github.com/gin-gonic/gin"

	"transit_api/internal/controllers"
)

func VehicleRoutes(r *gin.Engine, h *controllers.VehicleController, write gin.HandlerFunc) {
	vehicles := r.Group("/veiculos")
	{
		vehicles.GET("", h.List)
		vehicles.GET("/:id", h.Get)
		vehicles.POST("", write, h.Create)
		vehicles.PUT("/:id", write, h.Update)
		vehicles.DELETE("/:id", write, h.Delete)
	}
}
