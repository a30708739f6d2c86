package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hbjsyndicate/syndicate-api/internal/api/handlers"
	"github.com/hbjsyndicate/syndicate-api/internal/api/middleware"
	"github.com/hbjsyndicate/syndicate-api/internal/logging"
	"github.com/hbjsyndicate/syndicate-api/internal/server/routes"
	"github.com/hbjsyndicate/syndicate-api/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const defaultShutdownTimeout = 15 * time.Second

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	cfg    Config
	logger *logging.Logger
}

// NewServer creates a new server instance with every route registered
func NewServer(cfg Config, deps Dependencies) (*Server, error) {
	if deps.Dispatcher == nil {
		return nil, errors.New("server: dispatcher is required")
	}
	if deps.Limiter == nil {
		return nil, errors.New("server: rate limiter is required")
	}
	if deps.Logger == nil {
		deps.Logger = logging.GetLogger()
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	// Set release mode for production
	if cfg.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	// Disable Gin's default logger entirely because we're using our custom logger
	gin.DisableConsoleColor()
	gin.DefaultWriter = io.Discard

	// Create a new engine without default middleware
	router := gin.New()
	router.RedirectTrailingSlash = false
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("server: invalid trusted proxies: %w", err)
	}

	router.Use(otelgin.Middleware(telemetry.ServiceName))
	routes.SetupGlobalMiddleware(router, deps.Logger, routes.GlobalConfig{
		FrontendURL: cfg.FrontendURL,
	})

	routes.Setup(router, &routes.Handlers{
		Contact: handlers.NewContactHandler(deps.Dispatcher, deps.Logger),
		Health:  handlers.NewHealthHandler(),
	}, &routes.Middleware{
		Validation: middleware.NewValidationMiddleware(),
		RateLimit:  middleware.RateLimitMiddleware(deps.Limiter, deps.Logger),
		BodyLimit:  middleware.PreserveRequestBody(cfg.MaxBodySize),
	}, deps.Logger)

	return &Server{
		router: router,
		cfg:    cfg,
		logger: deps.Logger,
	}, nil
}

// Handler returns the root handler. Paths are matched without a trailing slash.
func (s *Server) Handler() http.Handler {
	return stripTrailingSlash(s.router)
}

// Start serves until ctx is cancelled, then drains in-flight requests
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server listening on port %s", s.cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	s.logger.Info("Server stopped")
	return nil
}

// stripTrailingSlash removes a trailing slash before routing, so /api/health/
// matches /api/health
func stripTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if path := r.URL.Path; path != "/" && strings.HasSuffix(path, "/") {
			r.URL.Path = strings.TrimRight(path, "/")
			if r.URL.Path == "" {
				r.URL.Path = "/"
			}
		}
		next.ServeHTTP(w, r)
	})
}
