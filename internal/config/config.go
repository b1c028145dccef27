package config

import (
	"os"
	"time"
)

// Config holds application configuration
type Config struct {
	Env             string
	ServerPort      string
	BackendBaseURL  string
	SessionSecret   string
	CSRFKey         string
	SessionDuration time.Duration
	BackendTimeout  time.Duration
	StaticFilesPath string
	TemplatesPath   string
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	return &Config{
		Env:             getEnv("ENV", "development"),
		ServerPort:      getEnv("PORT", "8080"),
		BackendBaseURL:  getEnv("BACKEND_URL", "http://localhost:9090"),
		SessionSecret:   getEnv("SESSION_SECRET", "dev-only-session-secret"),
		CSRFKey:         getEnv("CSRF_KEY", "dev-only-32-byte-csrf-key-please"),
		SessionDuration: 7 * 24 * time.Hour,
		BackendTimeout:  10 * time.Second,
		StaticFilesPath: getEnv("STATIC_PATH", "./static"),
		TemplatesPath:   getEnv("TEMPLATES_PATH", "./internal/templates"),
	}
}

// IsProduction reports whether the app runs with production hardening
// (secure cookies, JSON logs).
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
