package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server settings
	Port string `json:"port"`
	Host string `json:"host"`

	// Review store (sqlite)
	ReviewDBPath string `json:"review_db_path"`

	// Batch output
	OutputCSVPath string `json:"output_csv_path"`

	// Document store
	DocstoreBucket string `json:"docstore_bucket"`

	// Query service request timeout
	RequestTimeout time.Duration `json:"request_timeout"`

	// Logging
	LogLevel string `json:"log_level"`
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	config := &Config{
		Port:           getEnvOrDefault("PORT", "8080"),
		Host:           getEnvOrDefault("HOST", "0.0.0.0"),
		ReviewDBPath:   getEnvOrDefault("REVIEW_DB_PATH", "gangmom_reviews.db"),
		OutputCSVPath:  getEnvOrDefault("OUTPUT_CSV_PATH", "final_academy_reputation_scores.csv"),
		DocstoreBucket: getEnvOrDefault("DOCSTORE_BUCKET", "academy-reputation-data"),
		RequestTimeout: time.Duration(getEnvOrDefaultInt("REQUEST_TIMEOUT_SECONDS", 30)) * time.Second,
		LogLevel:       getEnvOrDefault("LOG_LEVEL", "info"),
	}

	return config, nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvOrDefaultInt returns environment variable value as int or default if not set
func getEnvOrDefaultInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
