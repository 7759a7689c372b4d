package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qrforge/internal/plan"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 15*time.Second, cfg.ReadTimeout)
	assert.Equal(t, "*", cfg.AllowedOrigin)
	assert.Equal(t, 512, cfg.CacheSize)
	assert.Equal(t, 4096, cfg.MaxImageSize)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.APIKeys)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("QRFORGE_ADDR", ":9090")
	t.Setenv("QRFORGE_READ_TIMEOUT", "5s")
	t.Setenv("QRFORGE_CACHE_SIZE", "64")
	t.Setenv("QRFORGE_API_KEYS", "alpha:pro, beta:business ,gamma")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 5*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 64, cfg.CacheSize)

	assert.Equal(t, plan.Pro, cfg.PlanForKey("alpha"))
	assert.Equal(t, plan.Business, cfg.PlanForKey("beta"))
	assert.Equal(t, plan.Free, cfg.PlanForKey("gamma"), "key without a tier is free")
	assert.Equal(t, plan.Free, cfg.PlanForKey("unknown"))
	assert.Equal(t, plan.Free, cfg.PlanForKey(""))
}

func TestLoadMalformedValuesFallBack(t *testing.T) {
	t.Setenv("QRFORGE_CACHE_SIZE", "not-a-number")
	t.Setenv("QRFORGE_WRITE_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 512, cfg.CacheSize)
	assert.Equal(t, 30*time.Second, cfg.WriteTimeout)
}

func TestLoadValidation(t *testing.T) {
	t.Setenv("QRFORGE_CACHE_SIZE", "-1")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("QRFORGE_CACHE_SIZE", "16")
	t.Setenv("QRFORGE_MAX_IMAGE_SIZE", "10")
	_, err = Load()
	assert.Error(t, err)
}
