package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port          string        `env:"PORT" envDefault:"8080"`
	APIBaseURL    string        `env:"API_BASE_URL" envDefault:"http://localhost:8000/api/"`
	APITimeout    time.Duration `env:"API_TIMEOUT" envDefault:"10s"`
	PageSize      int           `env:"PAGE_SIZE" envDefault:"10"`
	SessionCookie string        `env:"SESSION_COOKIE_NAME" envDefault:"bookx_session"`
	SessionSecret string        `env:"SESSION_SECRET"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	SecureCookies bool          `env:"SECURE_COOKIES" envDefault:"false"`
	DatabaseURL   string        `env:"DATABASE_URL"`
}

const minSecretLength = 16

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.Port = fallback(cfg.Port, "8080")
	cfg.APIBaseURL = strings.TrimSpace(cfg.APIBaseURL)
	cfg.SessionCookie = fallback(cfg.SessionCookie, "bookx_session")
	cfg.SessionSecret = strings.TrimSpace(cfg.SessionSecret)
	cfg.DatabaseURL = strings.TrimSpace(cfg.DatabaseURL)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("API_BASE_URL must be an absolute http(s) url, got %q", c.APIBaseURL)
	}
	if c.PageSize <= 0 {
		return errors.New("PAGE_SIZE must be positive")
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	if c.DatabaseURL == "" && c.SessionSecret == "" {
		return errors.New("SESSION_SECRET is required when DATABASE_URL is not set")
	}
	if c.SessionSecret != "" && len(c.SessionSecret) < minSecretLength {
		return fmt.Errorf("SESSION_SECRET must be at least %d characters", minSecretLength)
	}
	return nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

// ServerSideSessions reports whether tokens are kept in the database rather
// than in the cookie.
func (c Config) ServerSideSessions() bool {
	return c.DatabaseURL != ""
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}
