package middleware

import (
	"errors"
	"io"
	"net/http"

	"github.com/hbjsyndicate/syndicate-api/internal/api/constants"
	"github.com/hbjsyndicate/syndicate-api/internal/api/dto/v1/contact"
	"github.com/hbjsyndicate/syndicate-api/internal/api/validation"
	"github.com/hbjsyndicate/syndicate-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ValidationMiddleware handles request validation
type ValidationMiddleware struct {
	validate *validator.Validate
}

// NewValidationMiddleware creates a new validation middleware
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validate: validation.New(),
	}
}

// ValidateContactRequest decodes the contact form and checks every form rule.
// On success the submission is stored under constants.ContextKeyContact.
func (m *ValidationMiddleware) ValidateContactRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		// A missing body is an empty form, so every rule reports
		var submission models.Submission
		if err := c.ShouldBindJSON(&submission); err != nil && !errors.Is(err, io.EOF) {
			c.AbortWithStatusJSON(http.StatusBadRequest, contact.ValidationErrorResponse{
				Success: false,
				Errors:  []string{contact.ErrInvalidBody},
			})
			return
		}

		if errs := validation.ValidateWith(m.validate, submission); len(errs) > 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, contact.ValidationErrorResponse{
				Success: false,
				Errors:  errs,
			})
			return
		}

		c.Set(constants.ContextKeyContact, submission)
		c.Next()
	}
}
