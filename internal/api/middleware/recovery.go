package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/hbjsyndicate/syndicate-api/internal/api/constants"
	"github.com/hbjsyndicate/syndicate-api/internal/api/dto/common"
	"github.com/hbjsyndicate/syndicate-api/internal/logging"
	"github.com/hbjsyndicate/syndicate-api/internal/utils"

	"github.com/gin-gonic/gin"
)

// Recovery turns a panic anywhere below it into a generic 500. The panic
// value and stack go to the log only.
func Recovery(logger *logging.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = logging.GetLogger()
	}

	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				// Log the stack trace
				logger.Error("[PANIC] %s | %s | %s | %s | %v\n%s",
					c.Request.Method,
					c.Request.URL.Path,
					utils.GetRealIP(c),
					c.GetString(constants.ContextKeyRequestID),
					err,
					debug.Stack(),
				)

				if c.Writer.Written() {
					c.Abort()
					return
				}
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					common.NewMessageResponse(false, common.MessageInternalError))
			}
		}()

		c.Next()
	}
}
