package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr)
	assert.Equal(t, "praxis", cfg.Auth.Issuer)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, int64(20), cfg.Storage.MaxUploadMB)
	assert.Equal(t, "dev", cfg.Log.Env)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NotEmpty(t, cfg.Storage.DatabasePath)
}

func TestSaveAndLoadConfig(t *testing.T) {
	dir := t.TempDir()

	cfg := Default()
	cfg.UserID = "user-42"
	cfg.Server.Addr = ":9999"
	cfg.Auth.JWTSecret = "s3cret"
	require.NoError(t, SaveConfig(dir, cfg))

	_, err := os.Stat(filepath.Join(dir, ".praxis", "config.yaml"))
	require.NoError(t, err)

	loaded, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "user-42", loaded.UserID)
	assert.Equal(t, ":9999", loaded.Server.Addr)
	assert.Equal(t, "s3cret", loaded.Auth.JWTSecret)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PRAXIS_USER_ID", "env-user")
	t.Setenv("PRAXIS_LOG_LEVEL", "debug")
	t.Setenv("PRAXIS_METRICS", "true")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "env-user", cfg.UserID)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Server.Metrics)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".praxis"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".praxis", "config.yaml"), []byte("server: [unclosed"), 0644))

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}
