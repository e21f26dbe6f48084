package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration
type Config struct {
	APIBaseURL     string
	AssetBaseURL   string
	UserToken      string
	AdminToken     string
	RequestTimeout time.Duration
	LogFile        string
}

// LoadConfig loads configuration from environment variables or defaults
func LoadConfig() *Config {
	return &Config{
		APIBaseURL:     getEnv("BITSA_API_URL", "http://localhost:5500/api"),
		AssetBaseURL:   getEnv("BITSA_ASSET_URL", "https://bitsa-backend-vrx7.onrender.com"),
		UserToken:      getEnv("BITSA_TOKEN", ""),
		AdminToken:     getEnv("BITSA_ADMIN_TOKEN", ""),
		RequestTimeout: getEnvDuration("BITSA_REQUEST_TIMEOUT", 15*time.Second),
		LogFile:        getEnv("BITSA_LOG_FILE", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
