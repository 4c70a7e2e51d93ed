package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Backend BackendConfig
	Session SessionConfig
}

// AppConfig holds the local console configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
	// UIOrigin is the browser origin allowed to talk to the console.
	UIOrigin string
	// Variant selects the weekly or daily reporting page.
	Variant string
}

type BackendConfig struct {
	// URL is the backend's single request endpoint.
	URL     string
	Timeout time.Duration
}

type SessionConfig struct {
	// IdentityFile is where the logged-in identity record persists
	// between console restarts.
	IdentityFile string
	// InactivityTimeout is the idle window before automatic logout.
	InactivityTimeout time.Duration
	// UICookieLifetime bounds the local browser session cookie.
	UICookieLifetime time.Duration
}

func Load() (*Config, error) {
	// A missing .env file is fine; the environment may carry everything.
	_ = godotenv.Load()

	config := &Config{}

	appPort, err := strconv.Atoi(getEnv("CONSOLE_PORT", "8090"))
	if err != nil {
		return nil, fmt.Errorf("invalid CONSOLE_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		UIOrigin: getEnv("UI_ORIGIN", "http://localhost:8090"),
		Variant:  getEnv("REPORT_VARIANT", "weekly"),
	}

	backendTimeout, err := time.ParseDuration(getEnv("BACKEND_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid BACKEND_TIMEOUT: %w", err)
	}

	config.Backend = BackendConfig{
		URL:     getEnv("BACKEND_URL", ""),
		Timeout: backendTimeout,
	}

	inactivity, err := time.ParseDuration(getEnv("INACTIVITY_TIMEOUT", "30m"))
	if err != nil {
		return nil, fmt.Errorf("invalid INACTIVITY_TIMEOUT: %w", err)
	}

	cookieLifetime, err := time.ParseDuration(getEnv("UI_COOKIE_LIFETIME", "12h"))
	if err != nil {
		return nil, fmt.Errorf("invalid UI_COOKIE_LIFETIME: %w", err)
	}

	config.Session = SessionConfig{
		IdentityFile:      getEnv("IDENTITY_FILE", ".roster-session.json"),
		InactivityTimeout: inactivity,
		UICookieLifetime:  cookieLifetime,
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Backend.URL == "" {
		return fmt.Errorf("BACKEND_URL is required")
	}
	if c.App.Variant != "weekly" && c.App.Variant != "daily" {
		return fmt.Errorf("REPORT_VARIANT must be weekly or daily")
	}
	if c.Session.InactivityTimeout <= 0 {
		return fmt.Errorf("INACTIVITY_TIMEOUT must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
