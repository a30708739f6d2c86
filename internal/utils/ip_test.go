package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRealIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		trusted    []string
		remoteAddr string
		forwarded  string
		want       string
	}{
		{"direct peer", nil, "203.0.113.9:51000", "", "203.0.113.9"},
		{"untrusted peer cannot spoof", nil, "203.0.113.9:51000", "1.1.1.1", "203.0.113.9"},
		{"trusted proxy forwards client", []string{"127.0.0.1"}, "127.0.0.1:40000", "198.51.100.4, 127.0.0.1", "198.51.100.4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := gin.New()
			require.NoError(t, engine.SetTrustedProxies(tt.trusted))

			var got string
			engine.GET("/", func(c *gin.Context) { got = GetRealIP(c) })

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			engine.ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tt.want, got)
		})
	}
}
