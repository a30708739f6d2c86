package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hbjsyndicate/syndicate-api/internal/api/middleware"
	"github.com/hbjsyndicate/syndicate-api/internal/config"
	"github.com/hbjsyndicate/syndicate-api/internal/logging"
	"github.com/hbjsyndicate/syndicate-api/internal/ratelimit"
	"github.com/hbjsyndicate/syndicate-api/internal/server"
	"github.com/hbjsyndicate/syndicate-api/internal/service"
	"github.com/hbjsyndicate/syndicate-api/internal/tasks"
	"github.com/hbjsyndicate/syndicate-api/internal/telemetry"
	"github.com/hbjsyndicate/syndicate-api/internal/version"
)

const windowCleanupInterval = time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.GetLogger().Error("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	// Configure and get logger
	logging.Configure(cfg.Logging())
	logger := logging.GetLogger()
	defer logger.Close()

	logger.Info("Starting server %s in %s mode", version.GetVersionString(), cfg.Environment)
	for _, warning := range cfg.Warnings() {
		logger.Warn("Configuration: %s", warning)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.OTLPEndpoint, cfg.Environment)
	if err != nil {
		logger.Error("Failed to initialize tracing: %v", err)
		os.Exit(1)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn("Failed to flush traces: %v", err)
		}
	}()

	// Email transport
	sender := service.NewSMTPSender(service.SMTPConfig{
		Host:     cfg.Email.Host,
		Port:     cfg.Email.Port,
		Username: cfg.Email.User,
		Password: cfg.Email.Password,
		FromName: cfg.Business.Name,
		Timeout:  cfg.Email.Timeout,
	})
	mailer := service.NewContactMailer(sender, service.MailerConfig{
		BusinessName:  cfg.Business.Name,
		BusinessInbox: cfg.Business.Inbox,
		Phone:         cfg.Business.Phone,
		WhatsAppURL:   cfg.Business.WhatsAppURL,
		ContactEmail:  cfg.Business.ContactEmail,
		Location:      cfg.Business.Location,
		SendTimeout:   cfg.Email.Timeout,
	})

	// Verifying the transport never blocks startup
	go func() {
		verifyCtx, cancel := context.WithTimeout(ctx, cfg.Email.Timeout)
		defer cancel()
		if err := mailer.Verify(verifyCtx); err != nil {
			logger.Error("Email transporter error: %v", err)
			return
		}
		logger.Info("Email transporter is ready")
	}()

	// Rate limit windows live in redis when configured, otherwise in memory
	var store ratelimit.Store
	if cfg.RedisURL != "" {
		redisStore, err := ratelimit.NewRedisStoreFromURL(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error("Failed to connect to redis: %v", err)
			os.Exit(1)
		}
		defer redisStore.Close()
		store = redisStore
		logger.Info("Rate limit windows are shared through redis")
	} else {
		memoryStore := ratelimit.NewMemoryStore()
		cleanup := tasks.NewWindowCleanup(memoryStore, windowCleanupInterval, logger)
		cleanup.Start()
		defer cleanup.Stop()
		store = memoryStore
		logger.Info("Started rate limit window cleanup task")
	}

	srv, err := server.NewServer(server.Config{
		Port:           cfg.Port,
		FrontendURL:    cfg.FrontendURL,
		TrustedProxies: cfg.TrustedProxies,
		Production:     cfg.IsProduction(),
		MaxBodySize:    middleware.DefaultMaxBodySize,
	}, server.Dependencies{
		Dispatcher: mailer,
		Limiter:    ratelimit.New(store, cfg.RateLimitMax, cfg.RateLimitWindow),
		Logger:     logger,
	})
	if err != nil {
		logger.Error("Failed to create server: %v", err)
		os.Exit(1)
	}

	if err := srv.Start(ctx); err != nil {
		logger.Error("Server error: %v", err)
		os.Exit(1)
	}
}
