package routes

import (
	"github.com/hbjsyndicate/syndicate-api/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// SetupHealthRoutes configures health check endpoints
func SetupHealthRoutes(router *gin.RouterGroup, health *handlers.HealthHandler) {
	router.GET("/health", health.Check)
}
