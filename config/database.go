package config

import (
	"time"
)

// Store startup policies.
const (
	// StartupFailFast exits the process when the store cannot be reached.
	StartupFailFast = "fail-fast"
	// StartupDegraded serves anyway; store-backed routes answer 500 and the
	// health endpoint answers 503 until the store comes back.
	StartupDegraded = "degraded"
)

type DatabaseConfig struct {
	URI             string        `yaml:"uri"`
	DatabaseName    string        `yaml:"database"`
	Collection      string        `yaml:"collection"`
	MaxPoolSize     uint64        `yaml:"max_pool_size"`
	MinPoolSize     uint64        `yaml:"min_pool_size"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time"`
	RetryWrites     bool          `yaml:"retry_writes"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout"`
	OpTimeout       time.Duration `yaml:"op_timeout"`
	StartupPolicy   string        `yaml:"startup_policy"`
}

func defaultDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		URI:             "mongodb://localhost:27017",
		DatabaseName:    "notesapp",
		Collection:      "notes",
		MaxPoolSize:     100,
		MinPoolSize:     0,
		MaxConnIdleTime: 60 * time.Second,
		RetryWrites:     true,
		ConnectTimeout:  10 * time.Second,
		OpTimeout:       5 * time.Second,
		StartupPolicy:   StartupFailFast,
	}
}

// applyEnv overlays environment variables on top of c. The current values
// of c act as the defaults, so the environment always wins.
func (c DatabaseConfig) applyEnv() DatabaseConfig {
	return DatabaseConfig{
		URI:             GetEnvAsString("MONGO_URI", c.URI),
		DatabaseName:    GetEnvAsString("MONGO_DB", c.DatabaseName),
		Collection:      GetEnvAsString("NOTES_COLLECTION", c.Collection),
		MaxPoolSize:     GetEnvAsUint64("MONGO_MAX_POOL_SIZE", c.MaxPoolSize),
		MinPoolSize:     GetEnvAsUint64("MONGO_MIN_POOL_SIZE", c.MinPoolSize),
		MaxConnIdleTime: GetEnvAsDuration("MONGO_MAX_CONN_IDLE_TIME", c.MaxConnIdleTime),
		RetryWrites:     GetEnvAsBool("MONGO_RETRY_WRITES", c.RetryWrites),
		ConnectTimeout:  GetEnvAsDuration("MONGO_CONNECT_TIMEOUT", c.ConnectTimeout),
		OpTimeout:       GetEnvAsDuration("MONGO_OP_TIMEOUT", c.OpTimeout),
		StartupPolicy:   GetEnvAsString("STORE_STARTUP_POLICY", c.StartupPolicy),
	}
}
