package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("PORT", "")
	t.Setenv("MONGO_URI", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5001", cfg.Port)
	assert.Equal(t, ":5001", cfg.Addr())
	assert.Equal(t, "mongodb://localhost:27017", cfg.Database.URI)
	assert.Equal(t, "notes", cfg.Database.Collection)
	assert.Equal(t, StartupFailFast, cfg.Database.StartupPolicy)
	assert.Empty(t, cfg.Redis.URL)
}

func TestEnvironmentOverridesDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("PORT", "8088")
	t.Setenv("MONGO_URI", "mongodb://mongo.internal:27017")
	t.Setenv("MONGO_DB", "notes_prod")
	t.Setenv("MONGO_OP_TIMEOUT", "2s")
	t.Setenv("STORE_STARTUP_POLICY", StartupDegraded)
	t.Setenv("REDIS_URL", "redis://cache:6379/1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8088", cfg.Port)
	assert.Equal(t, "mongodb://mongo.internal:27017", cfg.Database.URI)
	assert.Equal(t, "notes_prod", cfg.Database.DatabaseName)
	assert.Equal(t, 2*time.Second, cfg.Database.OpTimeout)
	assert.Equal(t, StartupDegraded, cfg.Database.StartupPolicy)
	assert.Equal(t, "redis://cache:6379/1", cfg.Redis.URL)
}

func TestConfigFileIsOverriddenByEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.yaml")
	content := `
port: "7000"
database:
  uri: mongodb://from-file:27017
  database: filedb
log:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "7100")
	t.Setenv("MONGO_URI", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")
	t.Setenv("MONGO_DB", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "7100", cfg.Port, "environment beats the file")
	assert.Equal(t, "mongodb://from-file:27017", cfg.Database.URI, "file beats defaults")
	assert.Equal(t, "filedb", cfg.Database.DatabaseName)
	assert.Equal(t, "notes", cfg.Database.Collection, "unset keys keep defaults")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")

	t.Run("unknown startup policy", func(t *testing.T) {
		t.Setenv("STORE_STARTUP_POLICY", "sometimes")
		_, err := Load()
		assert.ErrorContains(t, err, "STORE_STARTUP_POLICY")
	})

	t.Run("missing config file", func(t *testing.T) {
		t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
		_, err := Load()
		assert.ErrorContains(t, err, "failed to read config file")
	})

	t.Run("unknown log format", func(t *testing.T) {
		t.Setenv("LOG_FORMAT", "xml")
		_, err := Load()
		assert.ErrorContains(t, err, "LOG_FORMAT")
	})
}
