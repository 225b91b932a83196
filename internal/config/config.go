// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor principles.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// InsecureDevSecret is the fixed fallback signing secret used when
// JWT_SECRET is unset. It exists for local-development parity only; Load
// refuses it in production and main logs a warning whenever it is active.
const InsecureDevSecret = "secret"

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"APP_PORT" envDefault:"8080"`

	// Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// Cache (Redis), used for rate limiting
	RedisURL string `env:"REDIS_URL,required"`

	// Token signing. An empty JWT_SECRET falls back to InsecureDevSecret.
	JWTSecret string        `env:"JWT_SECRET" envDefault:""`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"168h"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Rate limiting. Auth limits are per client IP on the login/register
	// endpoints; API limits are per authenticated user on the task routes.
	RateLimitAuthEnabled bool `env:"RATE_LIMIT_AUTH_ENABLED" envDefault:"true"`
	RateLimitAuthRPS     int  `env:"RATE_LIMIT_AUTH_RPS" envDefault:"5"`
	RateLimitAuthBurst   int  `env:"RATE_LIMIT_AUTH_BURST" envDefault:"10"`
	RateLimitAPIEnabled  bool `env:"RATE_LIMIT_API_ENABLED" envDefault:"true"`
	RateLimitAPIRPM      int  `env:"RATE_LIMIT_API_RPM" envDefault:"300"`
	RateLimitAPIBurst    int  `env:"RATE_LIMIT_API_BURST" envDefault:"30"`

	// CORS configuration
	// Comma-separated list of allowed origins (e.g., "https://app.taskhive.dev")
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:""`

	// Request body size limit in bytes (default 1MB)
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"1048576"`
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// TokenSecret returns the configured signing secret, or the insecure
// development fallback when none is configured.
func (c *Config) TokenSecret() string {
	if c.JWTSecret == "" {
		return InsecureDevSecret
	}
	return c.JWTSecret
}

// UsingInsecureSecret reports whether the fallback signing secret is active.
func (c *Config) UsingInsecureSecret() bool {
	return c.JWTSecret == ""
}

// GetCORSAllowedOrigins parses the comma-separated origins string into a slice.
func (c *Config) GetCORSAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}

	origins := strings.Split(c.CORSAllowedOrigins, ",")
	result := make([]string, 0, len(origins))

	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// Load parses environment variables and returns a Config.
// Returns an error if required variables are missing, or if the insecure
// fallback signing secret would be used in production.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.IsProduction() && cfg.UsingInsecureSecret() {
		return nil, fmt.Errorf("JWT_SECRET must be set in production")
	}

	return cfg, nil
}
