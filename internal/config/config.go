package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string

	// Database connection string. Either a plain SQLite file path or a
	// postgres:// URL, after normalization.
	DatabaseURL string

	// SecretKey signs the flash-message cookie.
	SecretKey string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: NormalizeDatabaseURL(getEnv("DATABASE_URL", "jbucks.db")),
		SecretKey:   getEnv("SECRET_KEY", "dev-secret-key"),
	}

	return config, nil
}

// NormalizeDatabaseURL rewrites legacy connection-string schemes to the forms
// the drivers understand:
//
//   - "sqlite:///path" and "sqlite://path" become the plain file path
//   - "postgresql://" becomes "postgres://"
//
// Anything else is passed through untouched.
func NormalizeDatabaseURL(url string) string {
	switch {
	case strings.HasPrefix(url, "sqlite:///"):
		return strings.TrimPrefix(url, "sqlite:///")
	case strings.HasPrefix(url, "sqlite://"):
		return strings.TrimPrefix(url, "sqlite://")
	case strings.HasPrefix(url, "postgresql://"):
		return "postgres://" + strings.TrimPrefix(url, "postgresql://")
	}
	return url
}

// IsPostgres reports whether the configured store is PostgreSQL rather than
// the default file-backed SQLite.
func (c *Config) IsPostgres() bool {
	return strings.HasPrefix(c.DatabaseURL, "postgres://")
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
