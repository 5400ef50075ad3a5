package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ReadsFileAndDefaults(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("service:\n  name: auth\nauth:\n  token_expiry_seconds: 60\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "auth.yaml"), yaml, 0o600))
	t.Setenv("CONFIG_PATH", dir)

	cfg, err := Load("auth", map[string]interface{}{
		"auth.token_expiry_seconds": 1800,
		"otp.valid_seconds":         300,
	})
	require.NoError(t, err)

	assert.Equal(t, "auth", cfg.GetString("service.name"))
	assert.Equal(t, 60, cfg.GetInt("auth.token_expiry_seconds"))
	assert.Equal(t, 300, cfg.GetInt("otp.valid_seconds"))
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "auth.yaml"), []byte("otp:\n  valid_seconds: 120\n"), 0o600))
	t.Setenv("CONFIG_PATH", dir)
	t.Setenv("AUTH_OTP_VALID_SECONDS", "45")

	cfg, err := Load("auth", nil)
	require.NoError(t, err)

	assert.Equal(t, 45, cfg.GetInt("otp.valid_seconds"))
}

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", t.TempDir())

	cfg, err := Load("auth", map[string]interface{}{"auth.timezone": "UTC"})
	require.NoError(t, err)

	assert.Equal(t, "UTC", cfg.GetString("auth.timezone"))
	assert.False(t, cfg.IsSet("database.host"))
}
