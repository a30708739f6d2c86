package routes

import (
	"github.com/hbjsyndicate/syndicate-api/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// SetupContactRoutes configures contact form routes
func SetupContactRoutes(router *gin.RouterGroup, contact *handlers.ContactHandler, m *Middleware) {
	// Rate limit first: a rejected caller's body is never read
	router.POST("/contact",
		m.RateLimit,
		m.BodyLimit,
		m.Validation.ValidateContactRequest(),
		contact.Submit,
	)
}
