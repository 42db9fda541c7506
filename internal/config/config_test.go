package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:8080", cfg.APIURL)
	assert.Equal(t, int64(1), cfg.UserID)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "pt", cfg.Lang)
	assert.False(t, cfg.Debug)
	assert.Equal(t, "postos.db", cfg.DBPath)
	assert.Equal(t, "127.0.0.1:8080", cfg.Addr)
	assert.Equal(t, 120, cfg.RequestsPerMinute)
}

func TestLoad_EnvAndDotenv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(
		"POSTOS_USER_ID=42\nPOSTOS_API_URL=http://from-file\nPOSTOS_DB=/tmp/file.db\n"), 0o600))

	t.Setenv("POSTOS_API_URL", "http://from-env")
	t.Setenv("POSTOS_TIMEOUT", "5s")
	t.Setenv("POSTOS_DEBUG", "true")
	// Unset so the file provides them; t.Setenv restores them afterwards.
	t.Setenv("POSTOS_USER_ID", "")
	os.Unsetenv("POSTOS_USER_ID")
	t.Setenv("POSTOS_DB", "")
	os.Unsetenv("POSTOS_DB")

	cfg, err := Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, "http://from-env", cfg.APIURL, "environment wins over .env")
	assert.Equal(t, int64(42), cfg.UserID)
	assert.Equal(t, "/tmp/file.db", cfg.DBPath)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.True(t, cfg.Debug)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("POSTOS_USER_ID", "abc")
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}
