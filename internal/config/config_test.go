package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, "rfid-inventory-api", cfg.JWTIssuer)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 20, cfg.PageSize)
	assert.Equal(t, 5*time.Minute, cfg.GoalsTTL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "an-actual-secret-value")
	t.Setenv("JWT_EXPIRY", "2h")
	t.Setenv("RESALE_PAGE_SIZE", "50")
	t.Setenv("GOALS_CACHE_TTL", "30s")

	cfg := Load()
	assert.Equal(t, "an-actual-secret-value", cfg.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 50, cfg.PageSize)
	assert.Equal(t, 30*time.Second, cfg.GoalsTTL)
}

func TestLoadIgnoresBadValues(t *testing.T) {
	t.Setenv("JWT_EXPIRY", "not-a-duration")
	t.Setenv("RESALE_PAGE_SIZE", "-3")
	t.Setenv("GOALS_CACHE_TTL", "0")

	cfg := Load()
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 20, cfg.PageSize)
	assert.Equal(t, 5*time.Minute, cfg.GoalsTTL)
}

func TestLoadAndValidate(t *testing.T) {
	t.Setenv("JWT_SECRET", "long-enough-secret-key")
	cfg, err := LoadAndValidate()
	require.NoError(t, err)
	assert.NotNil(t, cfg)

	t.Setenv("JWT_SECRET", "short")
	_, err = LoadAndValidate()
	assert.Error(t, err)
}
