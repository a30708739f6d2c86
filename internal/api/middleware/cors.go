package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSConfig defines which browser origin may call the API
type CORSConfig struct {
	AllowOrigin      string
	AllowCredentials bool
}

const defaultAllowOrigin = "http://localhost:3000"

// CORS allows the configured frontend origin, with credentials. Requests
// carrying any other Origin are refused with 403.
func CORS(cfg CORSConfig) gin.HandlerFunc {
	cfg.AllowOrigin = strings.TrimRight(cfg.AllowOrigin, "/")
	if cfg.AllowOrigin == "" {
		cfg.AllowOrigin = defaultAllowOrigin
	}

	config := cors.DefaultConfig()
	config.AllowOrigins = []string{cfg.AllowOrigin}
	config.AllowCredentials = cfg.AllowCredentials
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Request-ID"}
	config.ExposeHeaders = []string{
		"X-Request-ID",
		"X-RateLimit-Limit",
		"X-RateLimit-Remaining",
		"X-RateLimit-Reset",
		"Retry-After",
	}
	config.MaxAge = 24 * time.Hour

	return cors.New(config)
}
