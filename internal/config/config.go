// Package config reads runtime configuration from environment variables.
package config

import (
	"os"
	"strconv"
)

// Config holds all runtime configuration, loaded from environment variables.
type Config struct {
	// Server
	Port int

	// Feature-set cache
	StoragePath string

	// Analysis service connection
	ExtractorURL          string
	ExtractorClientID     string
	ExtractorClientSecret string
	ExtractorTokenURL     string
	CueSensitivity        float64 // default onset sensitivity passed to the extractor

	// Batch analysis
	BatchWorkers int
	QueueSize    int
}

// Load reads configuration from environment variables with sane defaults.
func Load() Config {
	return Config{
		Port: envInt("SEGUE_PORT", 8080),

		StoragePath: envStr("SEGUE_DB_PATH", "segue.db"),

		ExtractorURL:          envStr("EXTRACTOR_URL", ""),
		ExtractorClientID:     envStr("EXTRACTOR_CLIENT_ID", ""),
		ExtractorClientSecret: envStr("EXTRACTOR_CLIENT_SECRET", ""),
		ExtractorTokenURL:     envStr("EXTRACTOR_TOKEN_URL", ""),
		CueSensitivity:        envFloat("EXTRACTOR_SENSITIVITY", 0),

		BatchWorkers: envInt("SEGUE_BATCH_WORKERS", 4),
		QueueSize:    envInt("SEGUE_QUEUE_SIZE", 100),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
