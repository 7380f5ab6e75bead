package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the daemon.
type Config struct {
	Port          string
	Env           string
	APIBaseURL    string
	SessionDBPath string

	// UIOrigins are the browser origins of the local UI allowed to call
	// the bridge (comma-separated in BARINSTA_UI_ORIGINS).
	UIOrigins []string
}

// Load reads configuration from environment variables.
// In development, it loads from .env file if present.
func Load() *Config {
	// Load .env file if it exists (for development)
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnv("PORT", "7710"),
		Env:           getEnv("ENV", "development"),
		APIBaseURL:    getEnv("BARINSTA_API_BASE_URL", ""),
		SessionDBPath: getEnv("BARINSTA_SESSION_DB", "./data/session.db"),
	}

	// Parse UI origins (comma-separated)
	origins := getEnv("BARINSTA_UI_ORIGINS", "http://localhost:5173")
	for _, entry := range strings.Split(origins, ",") {
		entry = strings.TrimSpace(entry)
		if entry != "" {
			cfg.UIOrigins = append(cfg.UIOrigins, entry)
		}
	}

	return cfg
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
