package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gripe-service", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, defaultPostgresDSN, cfg.Postgres.DSN)
	assert.Equal(t, "127.0.0.1:6379", cfg.Redis.Addr)
	assert.Equal(t, "gripe_session", cfg.Session.CookieName)
	assert.Equal(t, "happy", cfg.Giphy.Tag)
	assert.Equal(t, 75, cfg.Giphy.OffsetBound)
	assert.Equal(t, 5*time.Second, cfg.Giphy.Timeout())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "postgres://db.internal:5432/gripes")
	t.Setenv("APP_PORT", "9000")
	t.Setenv("SESSION_TTL_MINUTES", "30")
	t.Setenv("GIPHY_API_KEY", "secret-key")
	t.Setenv("GIPHY_OFFSET_BOUND", "10")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://db.internal:5432/gripes", cfg.Postgres.DSN)
	assert.Equal(t, "9000", cfg.App.Port)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL())
	assert.Equal(t, "secret-key", cfg.Giphy.APIKey)
	assert.Equal(t, 10, cfg.Giphy.OffsetBound)
}

func TestLoad_InvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")

	_, err := Load()
	require.Error(t, err)
}

func TestGetEnvAsInt_BadValueFallsBack(t *testing.T) {
	t.Setenv("SESSION_TTL_MINUTES", "abc")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL())
}
