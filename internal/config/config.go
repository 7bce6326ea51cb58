package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP server
	Port string

	// Keyed store
	StoreBackend string // "memory" or "sqlite"
	SQLiteDBPath string

	// Sessions
	SessionSecret string
	SessionTTL    time.Duration

	// Idea generation
	GeminiAPIKey string
	GeminiModel  string

	// Change feed (optional; empty URL disables it)
	FeedURL      string
	FeedExchange string
	FeedQueue    string
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8080"),

		StoreBackend: getEnv("STORE_BACKEND", "memory"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/shuttersync.db"),

		SessionSecret: getEnv("SESSION_SECRET", ""),
		SessionTTL:    getEnvDuration("SESSION_TTL", 24*time.Hour),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", ""),

		FeedURL:      getEnv("FEED_AMQP_URL", ""),
		FeedExchange: getEnv("FEED_EXCHANGE", "shuttersync"),
		FeedQueue:    getEnv("FEED_QUEUE", "event_changes"),
	}
}

// Validate checks the configuration and returns an error listing every
// problem found.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port %q: must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.StoreBackend {
	case "memory", "sqlite":
	default:
		problems = append(problems, fmt.Sprintf("invalid store backend %q: must be memory or sqlite", c.StoreBackend))
	}

	if c.StoreBackend == "sqlite" && strings.TrimSpace(c.SQLiteDBPath) == "" {
		problems = append(problems, "sqlite backend requires SQLITE_DB_PATH")
	}

	if strings.TrimSpace(c.SessionSecret) == "" {
		problems = append(problems, "SESSION_SECRET must be set")
	}

	if c.SessionTTL <= 0 {
		problems = append(problems, "session TTL must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(problems, "; "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
