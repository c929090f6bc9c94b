package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"alcyxob/workout-builder/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
server:
  address: ":9090"
storage:
  backend: s3
  export_url_expiry: 5m
s3:
  endpoint: "http://localhost:9000"
  bucket_name: "lifts"
session:
  tick_interval: 2s
catalog:
  seed_file: "catalog.yaml"
  cache_ttl: 1m
log:
  level: debug
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644))
	return dir
}

func TestLoadConfig_File(t *testing.T) {
	cfg, err := config.LoadConfig(writeConfig(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, config.BackendS3, cfg.Storage.Backend)
	assert.Equal(t, 5*time.Minute, cfg.Storage.ExportURLExpiry)
	assert.Equal(t, "http://localhost:9000", cfg.S3.Endpoint)
	assert.Equal(t, "lifts", cfg.S3.BucketName)
	assert.Equal(t, 2*time.Second, cfg.Session.TickInterval)
	assert.Equal(t, "catalog.yaml", cfg.Catalog.SeedFile)
	assert.Equal(t, time.Minute, cfg.Catalog.CacheTTL)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, config.BackendMongo, cfg.Storage.Backend)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Database.URI)
	assert.Equal(t, time.Second, cfg.Session.TickInterval)
	assert.Equal(t, 10*time.Minute, cfg.Catalog.CacheTTL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Log.ToStdout)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":7070")
	t.Setenv("STORAGE_BACKEND", "memory")
	t.Setenv("SESSION_TICK_INTERVAL", "500ms")

	cfg, err := config.LoadConfig(writeConfig(t, validYAML))
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Address)
	assert.Equal(t, config.BackendMemory, cfg.Storage.Backend)
	assert.Equal(t, 500*time.Millisecond, cfg.Session.TickInterval)
}

func TestLoadConfig_Invalid(t *testing.T) {
	_, err := config.LoadConfig(writeConfig(t, "storage:\n  backend: postgres\n"))
	assert.Error(t, err)

	_, err = config.LoadConfig(writeConfig(t, "session:\n  tick_interval: 0s\n"))
	assert.Error(t, err)

	_, err = config.LoadConfig(writeConfig(t, "server: [unclosed\n"))
	assert.Error(t, err)
}
