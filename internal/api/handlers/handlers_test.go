package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hbjsyndicate/syndicate-api/internal/api/constants"
	"github.com/hbjsyndicate/syndicate-api/internal/api/dto/common"
	"github.com/hbjsyndicate/syndicate-api/internal/api/dto/v1/contact"
	"github.com/hbjsyndicate/syndicate-api/internal/logging"
	"github.com/hbjsyndicate/syndicate-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDispatcher struct {
	err   error
	calls []models.Submission
}

func (f *fakeDispatcher) Dispatch(_ context.Context, s models.Submission) error {
	f.calls = append(f.calls, s)
	return f.err
}

func newContactEngine(h *ContactHandler, submission *models.Submission) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.POST("/contact", func(c *gin.Context) {
		if submission != nil {
			c.Set(constants.ContextKeyContact, *submission)
		}
		c.Next()
	}, h.Submit)
	return engine
}

func post(engine *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/contact", nil))
	return w
}

func TestContactHandler_Submit(t *testing.T) {
	submission := models.Submission{
		FirstName: "  John ",
		LastName:  "Doe",
		Email:     " John@Example.com ",
		Service:   "web-development",
		Message:   "  I need a new website built quickly.  ",
	}

	t.Run("delivered", func(t *testing.T) {
		var buf bytes.Buffer
		dispatcher := &fakeDispatcher{}
		w := post(newContactEngine(NewContactHandler(dispatcher, logging.NewWriterLogger(&buf, "info")), &submission))

		assert.Equal(t, http.StatusOK, w.Code)
		var resp contact.ContactResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, contact.MessageSent, resp.Message)

		require.Len(t, dispatcher.calls, 1)
		assert.Equal(t, "John", dispatcher.calls[0].FirstName)
		assert.Equal(t, "john@example.com", dispatcher.calls[0].Email)
		assert.Equal(t, "  I need a new website built quickly.  ", dispatcher.calls[0].Message)
	})

	t.Run("delivery failure is logged, not returned", func(t *testing.T) {
		var buf bytes.Buffer
		dispatcher := &fakeDispatcher{err: errors.New("535 authentication failed")}
		w := post(newContactEngine(NewContactHandler(dispatcher, logging.NewWriterLogger(&buf, "info")), &submission))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"success":false,"message":"`+contact.MessageSendFailed+`"}`, w.Body.String())
		assert.NotContains(t, w.Body.String(), "535")
		assert.Contains(t, buf.String(), "535 authentication failed")
	})

	t.Run("missing submission", func(t *testing.T) {
		var buf bytes.Buffer
		dispatcher := &fakeDispatcher{}
		w := post(newContactEngine(NewContactHandler(dispatcher, logging.NewWriterLogger(&buf, "info")), nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"success":false,"message":"`+common.MessageInternalError+`"}`, w.Body.String())
		assert.Empty(t, dispatcher.calls)
	})
}

func TestHealthHandler_Check(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHealthHandler()
	h.now = func() time.Time { return time.Date(2025, 1, 1, 10, 0, 0, 5e6, time.UTC) }

	engine := gin.New()
	engine.GET("/health", h.Check)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"message":"Server is running","timestamp":"2025-01-01T10:00:00.005Z"}`, w.Body.String())
}
