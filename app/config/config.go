package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	DriverBadger = "badger"
	DriverMySQL  = "mysql"

	// DevSessionSecret signs sessions when SESSION_SECRET is unset. Never use
	// it in production.
	DevSessionSecret = "yatube-development-secret"
)

// Config holds the application configuration.
type Config struct {
	Port int

	// DBDriver selects the store: "badger" (embedded) or "mysql" (gorm).
	DBDriver     string
	DatabasePath string
	DatabaseDSN  string

	SessionSecret string
	// SecureCookies marks the session cookie Secure.
	SecureCookies bool

	LogLevel  string
	LogFormat string
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// UsingDevSecret reports whether sessions are signed with the built-in secret.
func (c *Config) UsingDevSecret() bool {
	return c.SessionSecret == DevSessionSecret
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil || port < 1 || port > 65535 {
		return nil, fmt.Errorf("invalid PORT %q", os.Getenv("PORT"))
	}

	driver := strings.ToLower(getEnv("DB_DRIVER", DriverBadger))
	if driver != DriverBadger && driver != DriverMySQL {
		return nil, fmt.Errorf("invalid DB_DRIVER %q: want %s or %s", driver, DriverBadger, DriverMySQL)
	}

	dsn := getEnv("DATABASE_DSN", "")
	if driver == DriverMySQL && dsn == "" {
		return nil, fmt.Errorf("DATABASE_DSN is required when DB_DRIVER=%s", DriverMySQL)
	}

	secure, err := strconv.ParseBool(getEnv("SECURE_COOKIES", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid SECURE_COOKIES: %w", err)
	}

	format := strings.ToLower(getEnv("LOG_FORMAT", "console"))
	if format != "console" && format != "json" {
		return nil, fmt.Errorf("invalid LOG_FORMAT %q: want console or json", format)
	}

	return &Config{
		Port:          port,
		DBDriver:      driver,
		DatabasePath:  getEnv("DATABASE_PATH", "data/badger"),
		DatabaseDSN:   dsn,
		SessionSecret: getEnv("SESSION_SECRET", DevSessionSecret),
		SecureCookies: secure,
		LogLevel:      strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:     format,
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}
