package utils

import (
	"net/http"

	"github.com/hbjsyndicate/syndicate-api/internal/api/constants"
	"github.com/hbjsyndicate/syndicate-api/internal/logging"

	"github.com/gin-gonic/gin"
)

// LogError logs an error with a message using the singleton logger
func LogError(err error, message string) {
	logging.GetLogger().Error("%s: %v", message, err)
}

// HandleAPIError logs err with the request details and answers with a generic
// {success:false, message} body. err itself never reaches the caller.
func HandleAPIError(c *gin.Context, logger *logging.Logger, err error, status int, publicMessage string) {
	if logger == nil {
		logger = logging.GetLogger()
	}
	logger.LogHTTPError(
		c.Request.Method,
		c.Request.URL.Path,
		GetRealIP(c),
		c.GetString(constants.ContextKeyRequestID),
		status,
		publicMessage,
		err,
	)

	HandleMessage(c, status, false, publicMessage)
}

// HandleInternalError is HandleAPIError with a 500 status
func HandleInternalError(c *gin.Context, logger *logging.Logger, err error, publicMessage string) {
	HandleAPIError(c, logger, err, http.StatusInternalServerError, publicMessage)
}
