package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/Veraticus/dex/internal/model"
)

// Cache persists the last successfully loaded working set and registry.
// A zero time means nothing is cached.
type Cache interface {
	CachedPokemon(ctx context.Context) ([]model.Pokemon, time.Time, error)
	SavePokemon(ctx context.Context, pokemon []model.Pokemon) error
	CachedTypes(ctx context.Context) ([]string, time.Time, error)
	SaveTypes(ctx context.Context, types []string) error
}

// CachedLoader serves a fresh cached copy instead of going to the network,
// and refreshes the cache after every successful network load.
type CachedLoader struct {
	source Source
	cache  Cache
	now    func() time.Time
	ttl    time.Duration
}

// NewCachedLoader wraps source. A ttl of zero disables cache reads; writes
// still happen so a later run with a ttl can use them.
func NewCachedLoader(source Source, cache Cache, ttl time.Duration) *CachedLoader {
	return &CachedLoader{
		source: source,
		cache:  cache,
		ttl:    ttl,
		now:    time.Now,
	}
}

// LoadWorkingSet implements Source.
func (c *CachedLoader) LoadWorkingSet(ctx context.Context) ([]model.Pokemon, error) {
	if c.ttl > 0 {
		cached, at, err := c.cache.CachedPokemon(ctx)
		switch {
		case err != nil:
			slog.Warn("Failed to read cached working set, loading from network", "error", err)
		case c.fresh(at) && len(cached) > 0:
			slog.Debug("Using cached working set", "count", len(cached), "fetched_at", at)
			return cached, nil
		}
	}

	working, err := c.source.LoadWorkingSet(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.cache.SavePokemon(ctx, working); err != nil {
		slog.Warn("Failed to cache working set", "error", err)
	}
	return working, nil
}

// LoadTypes implements Source.
func (c *CachedLoader) LoadTypes(ctx context.Context) ([]string, error) {
	if c.ttl > 0 {
		cached, at, err := c.cache.CachedTypes(ctx)
		switch {
		case err != nil:
			slog.Warn("Failed to read cached types, loading from network", "error", err)
		case c.fresh(at) && len(cached) > 0:
			return cached, nil
		}
	}

	types, err := c.source.LoadTypes(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.cache.SaveTypes(ctx, types); err != nil {
		slog.Warn("Failed to cache types", "error", err)
	}
	return types, nil
}

// Refresh reloads both from the network and rewrites the cache regardless
// of freshness.
func (c *CachedLoader) Refresh(ctx context.Context) (pokemon, types int, err error) {
	working, err := c.source.LoadWorkingSet(ctx)
	if err != nil {
		return 0, 0, err
	}
	registry, err := c.source.LoadTypes(ctx)
	if err != nil {
		return 0, 0, err
	}

	if err := c.cache.SavePokemon(ctx, working); err != nil {
		return 0, 0, err
	}
	if err := c.cache.SaveTypes(ctx, registry); err != nil {
		return 0, 0, err
	}
	return len(working), len(registry), nil
}

func (c *CachedLoader) fresh(at time.Time) bool {
	return !at.IsZero() && c.now().Sub(at) < c.ttl
}
