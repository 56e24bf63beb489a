package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "0123456789abcdef")
	t.Setenv("DATABASE_URL", "")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTPAddress())
	assert.Equal(t, "http://localhost:8000/api/", cfg.APIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.APITimeout)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, "bookx_session", cfg.SessionCookie)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.False(t, cfg.SecureCookies)
	assert.False(t, cfg.ServerSideSessions())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("API_BASE_URL", " https://api.example.com/v1/ ")
	t.Setenv("API_TIMEOUT", "3s")
	t.Setenv("PAGE_SIZE", "25")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("SECURE_COOKIES", "true")
	t.Setenv("DATABASE_URL", "postgres://localhost/bookx")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.HTTPAddress())
	assert.Equal(t, "https://api.example.com/v1/", cfg.APIBaseURL)
	assert.Equal(t, 3*time.Second, cfg.APITimeout)
	assert.Equal(t, 25, cfg.PageSize)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.True(t, cfg.SecureCookies)
	assert.True(t, cfg.ServerSideSessions())
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing secret", env: map[string]string{}},
		{name: "short secret", env: map[string]string{"SESSION_SECRET": "short"}},
		{name: "relative api url", env: map[string]string{"SESSION_SECRET": "0123456789abcdef", "API_BASE_URL": "/api/"}},
		{name: "zero page size", env: map[string]string{"SESSION_SECRET": "0123456789abcdef", "PAGE_SIZE": "0"}},
		{name: "bad page size", env: map[string]string{"SESSION_SECRET": "0123456789abcdef", "PAGE_SIZE": "ten"}},
		{name: "bad ttl", env: map[string]string{"SESSION_SECRET": "0123456789abcdef", "SESSION_TTL": "-1h"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("SESSION_SECRET", "")
			t.Setenv("DATABASE_URL", "")
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
