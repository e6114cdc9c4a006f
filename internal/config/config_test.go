package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://localhost:5173", cfg.AllowedOrigin)
	assert.NotEmpty(t, cfg.PostgresDSN)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("ENV", "prod")
	t.Setenv("PORT", "9090")
	t.Setenv("POSTGRES_DSN", "postgres://app:app@db:5432/site")
	t.Setenv("ALLOWED_ORIGIN", "https://thefamilyalliance.org")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "postgres://app:app@db:5432/site", cfg.PostgresDSN)
	assert.Equal(t, "https://thefamilyalliance.org", cfg.AllowedOrigin)
}
