package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	SecretKey    string        // Required: HMAC secret for signing access tokens
	Algorithm    string        // Optional: JWT signing algorithm (HS256, HS384, HS512) (default: HS256)
	TokenTTL     time.Duration // Optional: access token lifetime (default: 15m)
	DatabaseFile string        // Optional: path to SQLite database file (default: ./buklat.db)
	PepperFile   string        // Optional: path to file containing pepper for password hashing (default: ./pepper)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		SecretKey:           os.Getenv("BUKLAT_SECRET_KEY"),
		Algorithm:           getEnvOrDefault("BUKLAT_ALGORITHM", "HS256"),
		TokenTTL:            getEnvDurationOrDefault("BUKLAT_TOKEN_TTL", 15*time.Minute),
		DatabaseFile:        getEnvOrDefault("BUKLAT_DATABASE_FILE", "buklat.db"),
		PepperFile:          getEnvOrDefault("BUKLAT_PEPPER_FILE", "pepper"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
