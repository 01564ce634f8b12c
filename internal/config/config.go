package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/Veraticus/dex/internal/common"
	"github.com/spf13/viper"
)

// Defaults mirror what the browsing page did: the first 150 entries of the
// public PokeAPI, twelve per page, every detail request in flight at once.
const (
	DefaultBaseURL      = "https://pokeapi.co/api/v2"
	DefaultTimeout      = 30 * time.Second
	DefaultCatalogLimit = 150
	DefaultPageSize     = 12
	DefaultDatabasePath = "$HOME/.local/share/dex/dex.db"
	DefaultServerAddr   = "127.0.0.1:8080"
)

// ClientConfig configures the PokeAPI client.
type ClientConfig struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	Retries   int
	RateLimit float64
}

// CatalogConfig configures loading and paging of the catalog.
type CatalogConfig struct {
	CacheTTL    time.Duration
	Limit       int
	PageSize    int
	Concurrency int
}

// ServerConfig configures the JSON API.
type ServerConfig struct {
	Addr         string
	AllowOrigins []string
}

// SetDefaults registers default values with viper.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("database.path", DefaultDatabasePath)
	v.SetDefault("pokeapi.base_url", DefaultBaseURL)
	v.SetDefault("pokeapi.timeout", DefaultTimeout)
	v.SetDefault("pokeapi.retries", 0)
	v.SetDefault("pokeapi.rate_limit", 0)
	v.SetDefault("catalog.limit", DefaultCatalogLimit)
	v.SetDefault("catalog.page_size", DefaultPageSize)
	v.SetDefault("catalog.concurrency", 0)
	v.SetDefault("catalog.cache_ttl", time.Duration(0))
	v.SetDefault("server.addr", DefaultServerAddr)
	v.SetDefault("server.allow_origins", []string{})
}

// LoadClientConfig reads the pokeapi section.
func LoadClientConfig(v *viper.Viper) (ClientConfig, error) {
	cfg := ClientConfig{
		BaseURL:   v.GetString("pokeapi.base_url"),
		UserAgent: "dex/1.0",
		Timeout:   v.GetDuration("pokeapi.timeout"),
		Retries:   v.GetInt("pokeapi.retries"),
		RateLimit: v.GetFloat64("pokeapi.rate_limit"),
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	if err := cfg.Validate(); err != nil {
		return ClientConfig{}, err
	}
	return cfg, nil
}

// Validate checks the client configuration.
func (c ClientConfig) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: pokeapi.base_url %q must be an http(s) URL", common.ErrInvalidConfig, c.BaseURL)
	}
	if c.Retries < 0 {
		return fmt.Errorf("%w: pokeapi.retries must not be negative", common.ErrInvalidConfig)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("%w: pokeapi.rate_limit must not be negative", common.ErrInvalidConfig)
	}
	return nil
}

// LoadCatalogConfig reads the catalog section.
func LoadCatalogConfig(v *viper.Viper) (CatalogConfig, error) {
	cfg := CatalogConfig{
		Limit:       v.GetInt("catalog.limit"),
		PageSize:    v.GetInt("catalog.page_size"),
		Concurrency: v.GetInt("catalog.concurrency"),
		CacheTTL:    v.GetDuration("catalog.cache_ttl"),
	}
	if cfg.Limit == 0 {
		cfg.Limit = DefaultCatalogLimit
	}
	if cfg.PageSize == 0 {
		cfg.PageSize = DefaultPageSize
	}

	if err := cfg.Validate(); err != nil {
		return CatalogConfig{}, err
	}
	return cfg, nil
}

// Validate checks the catalog configuration.
func (c CatalogConfig) Validate() error {
	switch {
	case c.Limit < 0:
		return fmt.Errorf("%w: catalog.limit must be positive", common.ErrInvalidConfig)
	case c.PageSize < 0:
		return fmt.Errorf("%w: catalog.page_size must be positive", common.ErrInvalidConfig)
	case c.Concurrency < 0:
		return fmt.Errorf("%w: catalog.concurrency must not be negative", common.ErrInvalidConfig)
	case c.CacheTTL < 0:
		return fmt.Errorf("%w: catalog.cache_ttl must not be negative", common.ErrInvalidConfig)
	}
	return nil
}

// DatabasePath returns the expanded database location.
func DatabasePath(v *viper.Viper) string {
	dbPath := v.GetString("database.path")
	if dbPath == "" {
		dbPath = DefaultDatabasePath
	}
	return ExpandPath(dbPath)
}

// LoadServerConfig reads the server section.
func LoadServerConfig(v *viper.Viper) (ServerConfig, error) {
	cfg := ServerConfig{
		Addr:         v.GetString("server.addr"),
		AllowOrigins: v.GetStringSlice("server.allow_origins"),
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultServerAddr
	}
	return cfg, nil
}
