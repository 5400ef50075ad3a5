package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Minute, cfg.TokenTTL())
	assert.Equal(t, 300, cfg.OTP.ValidSeconds)
	assert.Equal(t, 6, cfg.OTP.Digits)
	assert.Equal(t, 86400, cfg.OTP.MaxAgeSeconds)
	assert.True(t, cfg.Auth.BindRoleToToken)
	assert.Equal(t, time.UTC, cfg.Location())
	assert.NotNil(t, cfg.Logger)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CONFIG_PATH", t.TempDir())
	t.Setenv("AUTH_AUTH_TOKEN_EXPIRY_SECONDS", "60")
	t.Setenv("AUTH_AUTH_BIND_ROLE_TO_TOKEN", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, time.Minute, cfg.TokenTTL())
	assert.False(t, cfg.Auth.BindRoleToToken)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	t.Setenv("CONFIG_PATH", t.TempDir())
	t.Setenv("AUTH_OTP_DIGITS", "7")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("AUTH_OTP_DIGITS", "6")
	t.Setenv("AUTH_AUTH_TIMEZONE", "Nowhere/Atlantis")
	_, err = Load()
	assert.Error(t, err)
}
