package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application-level configuration
type Config struct {
	// Database
	DatabaseURL string

	// Scraper
	BaseURL       string
	UserAgent     string
	HTTPTimeoutMS int // per-request timeout in milliseconds

	// Output
	CSVFilePath string
}

// Load reads configuration from a .env file (if present) and environment
// variables, falling back to defaults
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		BaseURL:       getEnv("BASE_URL", "https://247sports.com"),
		UserAgent:     getEnv("USER_AGENT", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/67.0.3396.87 Safari/537.36"),
		HTTPTimeoutMS: getEnvInt("HTTP_TIMEOUT_MS", 10000),
		CSVFilePath:   getEnv("CSV_FILE_PATH", "output/recruits.csv"),
	}
}

// HTTPTimeout returns the per-request timeout as a duration
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutMS) * time.Millisecond
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}
