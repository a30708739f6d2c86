package routes

import (
	"github.com/hbjsyndicate/syndicate-api/internal/api/middleware"
	"github.com/hbjsyndicate/syndicate-api/internal/logging"
	"github.com/hbjsyndicate/syndicate-api/internal/utils"

	"github.com/gin-gonic/gin"
)

// Setup configures all route groups
func Setup(router *gin.Engine, h *Handlers, m *Middleware, logger *logging.Logger) {
	api := router.Group("/api")

	// Health check endpoint - never rate limited
	SetupHealthRoutes(api, h.Health)

	// Contact routes (public)
	SetupContactRoutes(api, h.Contact, m)

	// Anything else
	router.NoRoute(utils.HandleNotFound)

	logger.Info("All routes have been set up successfully")
}

// SetupGlobalMiddleware configures middleware that applies to all routes
func SetupGlobalMiddleware(router *gin.Engine, logger *logging.Logger, cfg GlobalConfig) {
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORS(middleware.CORSConfig{
		AllowOrigin:      cfg.FrontendURL,
		AllowCredentials: true,
	}))
}
