package handlers

import (
	"context"
	"errors"

	"github.com/hbjsyndicate/syndicate-api/internal/api/constants"
	"github.com/hbjsyndicate/syndicate-api/internal/api/dto/common"
	"github.com/hbjsyndicate/syndicate-api/internal/api/dto/v1/contact"
	"github.com/hbjsyndicate/syndicate-api/internal/api/sanitization"
	"github.com/hbjsyndicate/syndicate-api/internal/logging"
	"github.com/hbjsyndicate/syndicate-api/internal/models"
	"github.com/hbjsyndicate/syndicate-api/internal/utils"

	"github.com/gin-gonic/gin"
)

// Dispatcher sends the emails for one validated submission
type Dispatcher interface {
	Dispatch(ctx context.Context, s models.Submission) error
}

type ContactHandler struct {
	dispatcher Dispatcher
	logger     *logging.Logger
}

func NewContactHandler(dispatcher Dispatcher, logger *logging.Logger) *ContactHandler {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &ContactHandler{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

func (h *ContactHandler) Submit(c *gin.Context) {
	// Get contact data from context (set by validation middleware)
	contactData, exists := c.Get(constants.ContextKeyContact)
	if !exists {
		utils.HandleInternalError(c, h.logger, errors.New("contact data not found in context"), common.MessageInternalError)
		return
	}

	submission, ok := contactData.(models.Submission)
	if !ok {
		utils.HandleInternalError(c, h.logger, errors.New("invalid contact data format"), common.MessageInternalError)
		return
	}

	submission = sanitization.SanitizeSubmission(submission)

	if err := h.dispatcher.Dispatch(c.Request.Context(), submission); err != nil {
		utils.HandleInternalError(c, h.logger, err, contact.MessageSendFailed)
		return
	}

	h.logger.Info("Contact form submitted: service=%s request=%s",
		submission.Service, c.GetString(constants.ContextKeyRequestID))

	utils.HandleSuccess(c, contact.ContactResponse{
		Success: true,
		Message: contact.MessageSent,
	})
}
