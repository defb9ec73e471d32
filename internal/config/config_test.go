package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "DATABASE_URL", "ACCESS_TOKEN_SECRET", "CLIENT_ORIGIN",
		"TOKEN_TTL", "COOKIE_MAX_AGE", "COOKIE_SECURE", "SESSION_REVOCATION",
		"REVOCATION_PURGE_SCHEDULE", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("ACCESS_TOKEN_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.ClientOrigins)
	assert.Equal(t, "blog.sqlite", cfg.Database.URL)
	assert.Equal(t, "s3cret", cfg.Auth.TokenSecret)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 24*time.Hour, cfg.Auth.CookieMaxAge)
	assert.True(t, cfg.Auth.CookieSecure)
	assert.False(t, cfg.Auth.Revocation)
	assert.Equal(t, "@hourly", cfg.Auth.PurgeSchedule)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ACCESS_TOKEN_SECRET", "s3cret")
	t.Setenv("PORT", "8081")
	t.Setenv("CLIENT_ORIGIN", "https://blog.example.com, http://localhost:5173")
	t.Setenv("TOKEN_TTL", "15m")
	t.Setenv("COOKIE_SECURE", "false")
	t.Setenv("SESSION_REVOCATION", "true")
	t.Setenv("LOG_FORMAT", "CONSOLE")
	t.Setenv("REVOCATION_PURGE_SCHEDULE", "*/15 * * * *")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Server.Port)
	assert.Equal(t, []string{"https://blog.example.com", "http://localhost:5173"}, cfg.Server.ClientOrigins)
	assert.Equal(t, 15*time.Minute, cfg.Auth.TokenTTL)
	assert.False(t, cfg.Auth.CookieSecure)
	assert.True(t, cfg.Auth.Revocation)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "*/15 * * * *", cfg.Auth.PurgeSchedule)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "missing secret",
			env:  map[string]string{},
		},
		{
			name: "non numeric port",
			env:  map[string]string{"ACCESS_TOKEN_SECRET": "x", "PORT": "http"},
		},
		{
			name: "bad duration",
			env:  map[string]string{"ACCESS_TOKEN_SECRET": "x", "TOKEN_TTL": "an hour"},
		},
		{
			name: "negative duration",
			env:  map[string]string{"ACCESS_TOKEN_SECRET": "x", "COOKIE_MAX_AGE": "-1h"},
		},
		{
			name: "bad bool",
			env:  map[string]string{"ACCESS_TOKEN_SECRET": "x", "SESSION_REVOCATION": "maybe"},
		},
		{
			name: "unknown log format",
			env:  map[string]string{"ACCESS_TOKEN_SECRET": "x", "LOG_FORMAT": "xml"},
		},
		{
			name: "origin is not a url",
			env:  map[string]string{"ACCESS_TOKEN_SECRET": "x", "CLIENT_ORIGIN": "localhost"},
		},
		{
			name: "unparsable purge schedule",
			env:  map[string]string{"ACCESS_TOKEN_SECRET": "x", "REVOCATION_PURGE_SCHEDULE": "whenever"},
		},
		{
			name: "purge schedule with seconds field",
			env:  map[string]string{"ACCESS_TOKEN_SECRET": "x", "REVOCATION_PURGE_SCHEDULE": "0 */5 * * * *"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
