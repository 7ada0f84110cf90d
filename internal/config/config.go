// Package config handles loading and validating configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the dashboard client.
type Config struct {
	// Dashboard server
	ServerBaseURL string
	ServerWSURL   string
	APIToken      string

	// Polling
	PollInterval time.Duration

	// Notifications
	NotifyWebhookURL string

	// UI
	EnableTUI bool

	// Logging
	LogLevel string
}

// Load reads configuration from environment variables with fallback to .env file.
// Priority order: Environment variables > .env file > hardcoded defaults
func Load() (*Config, error) {
	// Attempt to load .env file (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		ServerBaseURL: getEnv("SERVER_BASE_URL", "http://localhost:5000"),
		ServerWSURL:   getEnv("SERVER_WS_URL", "ws://localhost:5000/ws"),
		APIToken:      getEnv("API_TOKEN", ""),

		PollInterval: time.Duration(getEnvInt("POLL_INTERVAL_SECONDS", 30)) * time.Second,

		NotifyWebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),

		EnableTUI: getEnvBool("ENABLE_TUI", true),

		LogLevel: getEnv("LOG_LEVEL", "INFO"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration values are set and valid.
func (c *Config) Validate() error {
	if c.ServerBaseURL == "" {
		return fmt.Errorf("SERVER_BASE_URL is required")
	}

	if c.ServerWSURL == "" {
		return fmt.Errorf("SERVER_WS_URL is required")
	}

	if c.PollInterval < time.Second {
		return fmt.Errorf("POLL_INTERVAL_SECONDS must be at least 1")
	}

	return nil
}

// MaskedAPIToken returns the API token with most characters hidden for logging.
func (c *Config) MaskedAPIToken() string {
	return maskSecret(c.APIToken)
}

// MaskedWebhookURL returns the webhook URL with most characters hidden for logging.
func (c *Config) MaskedWebhookURL() string {
	return maskSecret(c.NotifyWebhookURL)
}

// maskSecret hides all but the first and last 4 characters of a secret.
func maskSecret(s string) string {
	if len(s) <= 8 {
		if len(s) == 0 {
			return "(not set)"
		}
		return "****"
	}
	return s[:4] + "****" + s[len(s)-4:]
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an environment variable as an integer or returns a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvBool retrieves an environment variable as a boolean or returns a default.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
