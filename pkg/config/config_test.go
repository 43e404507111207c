package config_test

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/subastas-admin/pkg/config"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := config.FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, 2*time.Minute, cfg.Cache.ProductsTTL)
	assert.Equal(t, 5*time.Minute, cfg.Cache.CategoriesTTL)
	assert.Equal(t, 5, cfg.Push.MaxRetries)
	assert.Equal(t, time.Second, cfg.Push.RetryDelay)
	assert.Equal(t, 90*time.Second, cfg.Push.ReadTimeout)
	assert.Equal(t, "admin", cfg.Push.Room)
	assert.Equal(t, int64(5*1024*1024), cfg.Upload.MaxBytes)
	assert.False(t, cfg.Push.Enabled())
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("API_BASE_URL", "https://api.example.com/")
	v.Set("CACHE_PRODUCTS_TTL_SECONDS", "10")
	v.Set("PUSH_URL", "wss://push.example.com/socket")
	v.Set("HTTP_PORT", 9090)

	cfg, err := config.FromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.API.BaseURL, "se recorta la barra final")
	assert.Equal(t, 10*time.Second, cfg.Cache.ProductsTTL)
	assert.True(t, cfg.Push.Enabled())
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestFromViper_RejectsNegativeRetries(t *testing.T) {
	v := viper.New()
	v.Set("PUSH_MAX_RETRIES", -1)
	_, err := config.FromViper(v)
	assert.Error(t, err)
}
