package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Database DatabaseConfig
	App      AppConfig
}

// DatabaseConfig holds database configuration.
type DatabaseConfig struct {
	// Path is the sqlite file; it is created on first launch.
	Path string
}

// AppConfig holds application configuration.
type AppConfig struct {
	Environment string
	Addr        string
}

// Load loads configuration from environment variables, reading a .env
// file first if one exists.
func Load() (*Config, error) {
	// It's okay if .env doesn't exist
	_ = godotenv.Load()

	config := &Config{
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "catalog.db"),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			Addr:        getEnv("APP_ADDR", "127.0.0.1:8080"),
		},
	}

	return config, nil
}

// getEnv gets an environment variable with a fallback value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
