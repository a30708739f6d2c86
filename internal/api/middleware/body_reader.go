package middleware

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/hbjsyndicate/syndicate-api/internal/api/constants"
	"github.com/hbjsyndicate/syndicate-api/internal/api/dto/common"

	"github.com/gin-gonic/gin"
)

// DefaultMaxBodySize caps JSON request bodies
const DefaultMaxBodySize int64 = 10 * 1024 * 1024 // 10 MB

// MessageBodyTooLarge is returned with 413
const MessageBodyTooLarge = "Request entity too large"

// PreserveRequestBody middleware reads the request body once, enforcing
// maxBodySize, and restores it so validators and handlers can both read it.
func PreserveRequestBody(maxBodySize int64) gin.HandlerFunc {
	if maxBodySize <= 0 {
		maxBodySize = DefaultMaxBodySize
	}

	return func(c *gin.Context) {
		// Only process methods that carry a body
		if c.Request.Body == nil || (c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPut && c.Request.Method != http.MethodPatch) {
			c.Next()
			return
		}

		bodyBytes, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, common.NewMessageResponse(false, MessageBodyTooLarge))
				return
			}
			_ = c.AbortWithError(http.StatusBadRequest, err)
			return
		}

		// Restore the body for subsequent middleware
		c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))

		// Store body in context for potential use later
		c.Set(constants.ContextKeyRawBody, bodyBytes)

		c.Next()
	}
}
