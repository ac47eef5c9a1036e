package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the environment-provided settings for the application.
type Config struct {
	Host        string
	Port        string
	DatabaseURL string
	SessionPath string
	LogLevel    string
}

// Load reads configuration from a .env file (if present) and the process
// environment. Environment variables take precedence over the file.
func Load() (*Config, error) {
	// A missing .env file is fine; values may come from the environment.
	_ = godotenv.Load()

	cfg := &Config{
		Host:        getEnv("HOST", "localhost"),
		Port:        getEnv("PORT", "3002"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		SessionPath: getEnv("SESSION_PATH", "data/sessions"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

// Addr returns the host:port the HTTP server should listen on.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
