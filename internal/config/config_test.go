package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DB_DSN", "postgres://localhost/shareit")
	t.Setenv("JWT_SECRET", "secret")
}

func TestFromEnvDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := fromEnv()
	require.NoError(t, err)

	assert.False(t, cfg.IsProduction)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 15*time.Minute, cfg.JWTAccessTokenTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, 20, cfg.MaxPageSize)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10.0, cfg.RateLimitRPS)
	assert.Equal(t, 20, cfg.RateLimitBurst)
}

func TestFromEnvOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "prod")
	t.Setenv("JWT_ACCESS_TOKEN_TTL", "1h")
	t.Setenv("MAX_PAGE_SIZE", "50")
	t.Setenv("LOG_FORMAT", "console")

	cfg, err := fromEnv()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction)
	assert.Equal(t, time.Hour, cfg.JWTAccessTokenTTL)
	assert.Equal(t, 50, cfg.MaxPageSize)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestFromEnvErrors(t *testing.T) {
	t.Run("MissingDSN", func(t *testing.T) {
		t.Setenv("DB_DSN", "")
		t.Setenv("JWT_SECRET", "secret")
		_, err := fromEnv()
		assert.ErrorContains(t, err, "DB_DSN")
	})

	t.Run("MissingSecret", func(t *testing.T) {
		t.Setenv("DB_DSN", "postgres://localhost/shareit")
		t.Setenv("JWT_SECRET", "")
		_, err := fromEnv()
		assert.ErrorContains(t, err, "JWT_SECRET")
	})

	t.Run("BadTTL", func(t *testing.T) {
		setRequired(t)
		t.Setenv("JWT_ACCESS_TOKEN_TTL", "soon")
		_, err := fromEnv()
		assert.ErrorContains(t, err, "JWT_ACCESS_TOKEN_TTL")
	})

	t.Run("BadPageSize", func(t *testing.T) {
		setRequired(t)
		t.Setenv("MAX_PAGE_SIZE", "0")
		_, err := fromEnv()
		assert.ErrorContains(t, err, "MAX_PAGE_SIZE")
	})
}
