package utils

import (
	"net"

	"github.com/gin-gonic/gin"
)

// GetRealIP returns the caller address used for rate limiting and logs.
// Forwarding headers are only honoured when the direct peer is one of the
// engine's trusted proxies, so a client cannot pick its own address.
func GetRealIP(c *gin.Context) string {
	if ip := c.ClientIP(); ip != "" {
		return ip
	}

	// Fall back to the raw peer address
	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	return host
}
