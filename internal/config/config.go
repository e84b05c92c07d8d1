package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Config holds the environment-driven settings for the API.
type Config struct {
	JWTSecret string
	JWTIssuer string
	JWTExpiry time.Duration

	// PageSize is the fixed page size for the resale item list.
	PageSize int
	// GoalsTTL bounds how long the goals cache serves without re-loading.
	GoalsTTL time.Duration
}

// Load reads configuration from the environment with defaults.
func Load() *Config {
	config := &Config{
		JWTSecret: getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTIssuer: getEnv("JWT_ISS", "rfid-inventory-api"),
		JWTExpiry: 24 * time.Hour,
		PageSize:  20,
		GoalsTTL:  5 * time.Minute,
	}

	if expiryStr := os.Getenv("JWT_EXPIRY"); expiryStr != "" {
		if expiry, err := time.ParseDuration(expiryStr); err == nil {
			config.JWTExpiry = expiry
		}
	}
	if sizeStr := os.Getenv("RESALE_PAGE_SIZE"); sizeStr != "" {
		if size, err := strconv.Atoi(sizeStr); err == nil && size > 0 {
			config.PageSize = size
		}
	}
	if ttlStr := os.Getenv("GOALS_CACHE_TTL"); ttlStr != "" {
		if ttl, err := time.ParseDuration(ttlStr); err == nil && ttl > 0 {
			config.GoalsTTL = ttl
		}
	}

	return config
}

// LoadAndValidate loads the configuration and rejects values the server
// cannot run with.
func LoadAndValidate() (*Config, error) {
	config := Load()
	if len(config.JWTSecret) < 16 {
		return nil, errors.New("JWT_SECRET must be at least 16 bytes")
	}
	if config.JWTExpiry <= 0 {
		return nil, errors.New("JWT_EXPIRY must be positive")
	}
	if config.PageSize <= 0 {
		return nil, errors.New("RESALE_PAGE_SIZE must be positive")
	}
	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
