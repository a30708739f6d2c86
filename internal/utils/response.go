package utils

import (
	"net/http"

	"github.com/hbjsyndicate/syndicate-api/internal/api/dto/common"

	"github.com/gin-gonic/gin"
)

// HandleSuccess sends a 200 response with the given payload
func HandleSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// HandleMessage sends a {success, message} response with the given status
func HandleMessage(c *gin.Context, status int, success bool, message string) {
	c.JSON(status, common.NewMessageResponse(success, message))
}

// HandleNotFound sends the generic 404 response
func HandleNotFound(c *gin.Context) {
	HandleMessage(c, http.StatusNotFound, false, common.MessageRouteNotFound)
}
