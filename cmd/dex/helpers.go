package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/Veraticus/dex/internal/auth"
	"github.com/Veraticus/dex/internal/catalog"
	"github.com/Veraticus/dex/internal/config"
	"github.com/Veraticus/dex/internal/pokeapi"
	"github.com/Veraticus/dex/internal/session"
	"github.com/Veraticus/dex/internal/storage"
	"github.com/spf13/viper"
)

// envKeyReplacer maps nested keys to env names: pokeapi.base_url reads
// DEX_POKEAPI_BASE_URL.
var envKeyReplacer = strings.NewReplacer(".", "_")

// initStorage opens the configured database and brings its schema up to date.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(config.DatabasePath(viper.GetViper()))
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// newSource builds the PokeAPI loader behind the catalog cache. progress may
// be nil.
func newSource(cache catalog.Cache, progress catalog.ProgressFunc) (*catalog.CachedLoader, config.CatalogConfig, error) {
	clientCfg, err := config.LoadClientConfig(viper.GetViper())
	if err != nil {
		return nil, config.CatalogConfig{}, err
	}
	catalogCfg, err := config.LoadCatalogConfig(viper.GetViper())
	if err != nil {
		return nil, config.CatalogConfig{}, err
	}

	client, err := pokeapi.NewClient(clientCfg)
	if err != nil {
		return nil, config.CatalogConfig{}, fmt.Errorf("failed to create PokeAPI client: %w", err)
	}

	opts := []catalog.LoaderOption{
		catalog.WithLimit(catalogCfg.Limit),
		catalog.WithConcurrency(catalogCfg.Concurrency),
	}
	if progress != nil {
		opts = append(opts, catalog.WithProgress(progress))
	}

	loader := catalog.NewLoader(client, opts...)
	return catalog.NewCachedLoader(loader, cache, catalogCfg.CacheTTL), catalogCfg, nil
}

// newAuth creates the account service and restores the persisted session.
func newAuth(ctx context.Context, store auth.Provider) (*auth.Service, error) {
	_, writer := session.New()
	svc := auth.NewService(store, writer)
	if _, err := svc.Restore(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}
