// Package config loads server settings. Values are resolved in order of
// increasing precedence: compiled defaults, an optional YAML file named by
// CONFIG_FILE, a .env file, and finally the process environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port         string         `yaml:"port"`
	GinMode      string         `yaml:"gin_mode"`
	MaxBodyBytes int64          `yaml:"max_body_bytes"`
	ReadTimeout  time.Duration  `yaml:"read_timeout"`
	WriteTimeout time.Duration  `yaml:"write_timeout"`
	Database     DatabaseConfig `yaml:"database"`
	Redis        RedisConfig    `yaml:"redis"`
	Log          LogConfig      `yaml:"log"`
}

type RedisConfig struct {
	// URL enables idempotent creates when set, e.g. redis://localhost:6379/0.
	URL            string        `yaml:"url"`
	IdempotencyTTL time.Duration `yaml:"idempotency_ttl"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Defaults() Config {
	return Config{
		Port:         "5001",
		GinMode:      "release",
		MaxBodyBytes: 1 << 20,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		Database:     defaultDatabaseConfig(),
		Redis: RedisConfig{
			IdempotencyTTL: 10 * time.Minute,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load resolves the configuration for the server process.
func Load() (Config, error) {
	cfg := Defaults()

	if path := GetEnvAsString("CONFIG_FILE", ""); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	// godotenv never overrides variables that are already set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg = cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c Config) applyEnv() Config {
	c.Port = GetEnvAsString("PORT", c.Port)
	c.GinMode = GetEnvAsString("GIN_MODE", c.GinMode)
	c.MaxBodyBytes = GetEnvAsInt64("MAX_BODY_BYTES", c.MaxBodyBytes)
	c.ReadTimeout = GetEnvAsDuration("HTTP_READ_TIMEOUT", c.ReadTimeout)
	c.WriteTimeout = GetEnvAsDuration("HTTP_WRITE_TIMEOUT", c.WriteTimeout)
	c.Database = c.Database.applyEnv()
	c.Redis.URL = GetEnvAsString("REDIS_URL", c.Redis.URL)
	c.Redis.IdempotencyTTL = GetEnvAsDuration("IDEMPOTENCY_TTL", c.Redis.IdempotencyTTL)
	c.Log.Level = GetEnvAsString("LOG_LEVEL", c.Log.Level)
	c.Log.Format = GetEnvAsString("LOG_FORMAT", c.Log.Format)
	return c
}

// Validate rejects settings the server cannot start with.
func (c Config) Validate() error {
	if c.Port == "" {
		return errors.New("port must not be empty")
	}
	if c.Database.URI == "" {
		return errors.New("MONGO_URI must not be empty")
	}
	if c.Database.DatabaseName == "" || c.Database.Collection == "" {
		return errors.New("database and collection names must not be empty")
	}
	switch c.Database.StartupPolicy {
	case StartupFailFast, StartupDegraded:
	default:
		return fmt.Errorf("unknown STORE_STARTUP_POLICY %q", c.Database.StartupPolicy)
	}
	if c.MaxBodyBytes <= 0 {
		return errors.New("MAX_BODY_BYTES must be positive")
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown LOG_FORMAT %q", c.Log.Format)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}
