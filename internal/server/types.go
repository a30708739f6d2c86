package server

import (
	"time"

	"github.com/hbjsyndicate/syndicate-api/internal/api/handlers"
	"github.com/hbjsyndicate/syndicate-api/internal/logging"
	"github.com/hbjsyndicate/syndicate-api/internal/ratelimit"
)

// Config holds the HTTP settings of the server
type Config struct {
	Port           string
	FrontendURL    string
	TrustedProxies []string
	Production     bool
	MaxBodySize    int64
	// ShutdownTimeout bounds how long in-flight requests may take to finish
	ShutdownTimeout time.Duration
}

// Dependencies are the collaborators the routes are built from
type Dependencies struct {
	Dispatcher handlers.Dispatcher
	Limiter    *ratelimit.Limiter
	Logger     *logging.Logger
}
