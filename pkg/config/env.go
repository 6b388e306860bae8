// Package config provides helpers for reading typed settings from the environment.
//
// Every helper falls back to the supplied default when the variable is unset or
// empty. Malformed values also fall back, with a warning logged through slog,
// so a typo in a deployment never prevents start-up.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// GetEnvString returns the value of an environment variable or the default value if not set.
//
// Example:
//
//	addr := GetEnvString("SERVER_ADDR", ":8080")
func GetEnvString(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

// GetEnvInt returns the value of an environment variable as an integer.
func GetEnvInt(key string, defaultValue int) int {
	return getEnvParsed(key, defaultValue, strconv.Atoi)
}

// GetEnvInt64 returns the value of an environment variable as an int64.
// Used for byte sizes.
func GetEnvInt64(key string, defaultValue int64) int64 {
	return getEnvParsed(key, defaultValue, func(s string) (int64, error) {
		return strconv.ParseInt(s, 10, 64)
	})
}

// GetEnvFloat returns the value of an environment variable as a float64.
func GetEnvFloat(key string, defaultValue float64) float64 {
	return getEnvParsed(key, defaultValue, func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})
}

// GetEnvBool returns the value of an environment variable as a boolean.
//
// Accepted values are those of strconv.ParseBool ("1", "t", "true", "0", "f",
// "false" and their capitalized forms).
//
// Example:
//
//	enabled := GetEnvBool("RATE_LIMIT_ENABLED", true)
func GetEnvBool(key string, defaultValue bool) bool {
	return getEnvParsed(key, defaultValue, strconv.ParseBool)
}

// GetEnvDuration returns the value of an environment variable as a time.Duration.
//
// The value must be parseable by time.ParseDuration (e.g., "1m", "30s", "1h30m").
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	return getEnvParsed(key, defaultValue, time.ParseDuration)
}

func getEnvParsed[T any](key string, defaultValue T, parse func(string) (T, error)) T {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}

	value, err := parse(raw)
	if err != nil {
		slog.Warn("invalid value for environment variable, using default",
			slog.String("key", key),
			slog.String("value", raw),
			slog.Any("default", defaultValue),
			slog.String("error", err.Error()))
		return defaultValue
	}
	return value
}
