package routes

import (
	"github.com/gin-gonic/gin"

	"transit_api/internal/controllers"
)

func AuthRoutes(r *gin.Engine, h *controllers.AuthController) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", h.Login)
	}
}
