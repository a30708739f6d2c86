package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/hbjsyndicate/syndicate-api/internal/api/dto/common"
	"github.com/hbjsyndicate/syndicate-api/internal/api/dto/v1/contact"
	"github.com/hbjsyndicate/syndicate-api/internal/logging"
	"github.com/hbjsyndicate/syndicate-api/internal/ratelimit"
	"github.com/hbjsyndicate/syndicate-api/internal/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware counts every request against the caller's window and
// rejects with 429 once the limiter's ceiling is exceeded. When the window
// store is unavailable the request is let through.
func RateLimitMiddleware(limiter *ratelimit.Limiter, logger *logging.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = logging.GetLogger()
	}

	// A single busy address must not flood the log
	rejectLog := rate.Sometimes{Interval: time.Minute}
	storeLog := rate.Sometimes{Interval: 10 * time.Second}

	return func(c *gin.Context) {
		clientIP := utils.GetRealIP(c)

		decision, err := limiter.Allow(c.Request.Context(), clientIP)
		if err != nil {
			storeLog.Do(func() {
				logger.Warn("Rate limiter failing open: %v", err)
			})
		}

		// Set rate limit headers
		c.Header("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		if !decision.ResetAt.IsZero() {
			c.Header("X-RateLimit-Reset", strconv.FormatInt(decision.ResetAt.Unix(), 10))
		}

		if !decision.Allowed {
			retryAfter := decision.RetryAfter(time.Now())
			c.Header("Retry-After", strconv.Itoa(int(retryAfter/time.Second)))

			rejectLog.Do(func() {
				logger.Warn("Rate limit exceeded for %s on %s (retry in %s)", clientIP, c.Request.URL.Path, retryAfter)
			})

			c.AbortWithStatusJSON(http.StatusTooManyRequests, common.NewErrorResponse(contact.MessageRateLimit))
			return
		}

		c.Next()
	}
}
