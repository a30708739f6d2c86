package config

import (
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/hbjsyndicate/syndicate-api/internal/logging"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server Configuration
	Environment    string   `env:"ENV" envDefault:"development"`
	Port           string   `env:"PORT" envDefault:"5000"`
	FrontendURL    string   `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:"," envDefault:"127.0.0.1"`

	// Logging Configuration
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile     string `env:"LOG_FILE"`
	LogRequests bool   `env:"LOG_REQUESTS" envDefault:"false"`

	// Email Configuration
	Email EmailConfig

	// Business details rendered into outgoing mail
	Business BusinessConfig

	// Rate Limit Configuration
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"15m"`
	RateLimitMax    int           `env:"RATE_LIMIT_MAX" envDefault:"5"`
	RedisURL        string        `env:"REDIS_URL"`

	// Telemetry Configuration
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// EmailConfig describes the outbound SMTP account.
type EmailConfig struct {
	User     string        `env:"EMAIL_USER"`
	Password string        `env:"EMAIL_PASS"`
	Host     string        `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	Port     int           `env:"SMTP_PORT" envDefault:"587"`
	Timeout  time.Duration `env:"EMAIL_TIMEOUT" envDefault:"15s"`
}

// BusinessConfig describes who the site belongs to.
type BusinessConfig struct {
	Name         string `env:"BUSINESS_NAME" envDefault:"HBJ Syndicate"`
	Inbox        string `env:"BUSINESS_EMAIL"`
	Phone        string `env:"BUSINESS_PHONE" envDefault:"+91 9173922112"`
	WhatsAppURL  string `env:"BUSINESS_WHATSAPP" envDefault:"https://wa.me/919173922112"`
	ContactEmail string `env:"BUSINESS_CONTACT_EMAIL" envDefault:"info@hbjsyndicate.com"`
	Timezone     string `env:"SUBMISSION_TIMEZONE" envDefault:"Asia/Kolkata"`

	// Location is Timezone, resolved by Parse
	Location *time.Location `env:"-"`
}

// Load loads the configuration from environment variables and .env files
func Load() (*Config, error) {
	envLocations := []string{".env"}

	// If ENV is set, try to load that specific file first
	if envName := os.Getenv("ENV"); envName != "" {
		envLocations = append([]string{fmt.Sprintf(".env.%s", envName)}, envLocations...)
	}

	for _, loc := range envLocations {
		// godotenv never overrides variables already present in the environment
		if err := godotenv.Load(loc); err == nil {
			break
		}
	}

	return Parse()
}

// Parse builds a Config from the current process environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Set default log file if not set
	if cfg.LogFile == "" {
		if cfg.IsProduction() {
			cfg.LogFile = "/app/logs/api.log"
		} else {
			cfg.LogFile = "./logs/api.log"
		}
	}

	if cfg.RateLimitMax <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_MAX must be positive, got %d", cfg.RateLimitMax)
	}
	if cfg.RateLimitWindow <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %s", cfg.RateLimitWindow)
	}
	location, err := time.LoadLocation(cfg.Business.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid SUBMISSION_TIMEZONE %q: %w", cfg.Business.Timezone, err)
	}
	cfg.Business.Location = location

	return cfg, nil
}

// IsProduction reports whether ENV is production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// Warnings lists settings that are missing but do not prevent startup.
// Without them the server still answers, but deliveries will fail.
func (c *Config) Warnings() []string {
	var warnings []string
	if c.Email.User == "" {
		warnings = append(warnings, "EMAIL_USER is not set")
	}
	if c.Email.Password == "" {
		warnings = append(warnings, "EMAIL_PASS is not set")
	}
	if c.Business.Inbox == "" {
		warnings = append(warnings, "BUSINESS_EMAIL is not set")
	}
	return warnings
}

// Logging returns the logger configuration derived from c.
func (c *Config) Logging() *logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = strings.ToLower(c.LogLevel)
	cfg.File = c.LogFile
	cfg.Requests = c.LogRequests
	return cfg
}
