package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// lookupEnv returns the trimmed value of key. Blank values count as unset so
// that an exported-but-empty variable does not clobber a default.
func lookupEnv(key string) (string, bool) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return "", false
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}

// GetEnvAsInt retrieves an environment variable and converts it to an integer
func GetEnvAsInt(key string, defaultVal int) int {
	if value, exists := lookupEnv(key); exists {
		if result, err := strconv.Atoi(value); err == nil {
			return result
		}
	}
	return defaultVal
}

// GetEnvAsInt64 retrieves an environment variable and converts it to int64
func GetEnvAsInt64(key string, defaultVal int64) int64 {
	if value, exists := lookupEnv(key); exists {
		if result, err := strconv.ParseInt(value, 10, 64); err == nil {
			return result
		}
	}
	return defaultVal
}

// GetEnvAsUint64 retrieves an environment variable and converts it to uint64
func GetEnvAsUint64(key string, defaultVal uint64) uint64 {
	if value, exists := lookupEnv(key); exists {
		if result, err := strconv.ParseUint(value, 10, 64); err == nil {
			return result
		}
	}
	return defaultVal
}

// GetEnvAsDuration accepts Go duration strings ("5s") and bare integers,
// which are read as seconds.
func GetEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value, exists := lookupEnv(key); exists {
		if result, err := time.ParseDuration(value); err == nil {
			return result
		}
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultVal
}

// GetEnvAsBool retrieves an environment variable and converts it to boolean
func GetEnvAsBool(key string, defaultVal bool) bool {
	if value, exists := lookupEnv(key); exists {
		if result, err := strconv.ParseBool(value); err == nil {
			return result
		}
	}
	return defaultVal
}

// GetEnvAsString retrieves an environment variable or returns a default value
func GetEnvAsString(key string, defaultVal string) string {
	if value, exists := lookupEnv(key); exists {
		return value
	}
	return defaultVal
}
