package handlers

import (
	"time"

	"github.com/hbjsyndicate/syndicate-api/internal/api/dto/common"
	"github.com/hbjsyndicate/syndicate-api/internal/utils"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	now func() time.Time
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{now: time.Now}
}

// Check reports that the process is up. It checks no dependencies.
func (h *HealthHandler) Check(c *gin.Context) {
	utils.HandleSuccess(c, common.NewHealthResponse(h.now()))
}
