package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/dex/internal/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestLoadClientConfig_Defaults(t *testing.T) {
	cfg, err := LoadClientConfig(newViper())
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Zero(t, cfg.Retries)
	assert.Zero(t, cfg.RateLimit)
}

func TestLoadClientConfig_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
	}{
		{name: "not a url", key: "pokeapi.base_url", value: "pokeapi"},
		{name: "ftp scheme", key: "pokeapi.base_url", value: "ftp://pokeapi.co"},
		{name: "negative retries", key: "pokeapi.retries", value: -1},
		{name: "negative rate", key: "pokeapi.rate_limit", value: -2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newViper()
			v.Set(tt.key, tt.value)

			_, err := LoadClientConfig(v)
			assert.ErrorIs(t, err, common.ErrInvalidConfig)
		})
	}
}

func TestLoadCatalogConfig(t *testing.T) {
	v := newViper()
	cfg, err := LoadCatalogConfig(v)
	require.NoError(t, err)
	assert.Equal(t, DefaultCatalogLimit, cfg.Limit)
	assert.Equal(t, DefaultPageSize, cfg.PageSize)
	assert.Zero(t, cfg.Concurrency)
	assert.Zero(t, cfg.CacheTTL)

	v.Set("catalog.cache_ttl", "1h")
	v.Set("catalog.concurrency", 8)
	cfg, err = LoadCatalogConfig(v)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.Equal(t, 8, cfg.Concurrency)

	v.Set("catalog.page_size", -3)
	_, err = LoadCatalogConfig(v)
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestLoadServerConfig(t *testing.T) {
	v := newViper()
	cfg, err := LoadServerConfig(v)
	require.NoError(t, err)
	assert.Equal(t, DefaultServerAddr, cfg.Addr)
	assert.Empty(t, cfg.AllowOrigins, "cross-origin access is opt-in")

	v.Set("server.addr", ":9000")
	v.Set("server.allow_origins", []string{"http://localhost:3000"})
	cfg, err = LoadServerConfig(v)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowOrigins)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("DEX_TEST_DIR", "/tmp/dex")

	assert.Equal(t, "", ExpandPath(""))
	assert.Equal(t, ":memory:", ExpandPath(":memory:"))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, filepath.Join(home, "dex.db"), ExpandPath("~/dex.db"))
	assert.Equal(t, "/tmp/dex/dex.db", ExpandPath("$DEX_TEST_DIR/dex.db"))
	assert.Equal(t, "/var/lib/dex.db", ExpandPath("/var/lib/dex.db"))
}
