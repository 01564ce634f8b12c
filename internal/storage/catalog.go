package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/dex/internal/model"
)

// Cache keys in the catalog_cache table.
const (
	cacheKeyPokemon = "pokemon"
	cacheKeyTypes   = "types"
)

// CachedPokemon returns the cached working set and when it was fetched.
// A zero time means nothing is cached.
func (s *SQLiteStorage) CachedPokemon(ctx context.Context) ([]model.Pokemon, time.Time, error) {
	var pokemon []model.Pokemon
	at, err := s.readCache(ctx, cacheKeyPokemon, &pokemon)
	if err != nil {
		return nil, time.Time{}, err
	}
	return pokemon, at, nil
}

// SavePokemon replaces the cached working set.
func (s *SQLiteStorage) SavePokemon(ctx context.Context, pokemon []model.Pokemon) error {
	if pokemon == nil {
		return fmt.Errorf("%w: pokemon", ErrNilParameter)
	}
	return s.writeCache(ctx, cacheKeyPokemon, pokemon)
}

// CachedTypes returns the cached type registry and when it was fetched.
func (s *SQLiteStorage) CachedTypes(ctx context.Context) ([]string, time.Time, error) {
	var types []string
	at, err := s.readCache(ctx, cacheKeyTypes, &types)
	if err != nil {
		return nil, time.Time{}, err
	}
	return types, at, nil
}

// SaveTypes replaces the cached type registry.
func (s *SQLiteStorage) SaveTypes(ctx context.Context, types []string) error {
	if types == nil {
		return fmt.Errorf("%w: types", ErrNilParameter)
	}
	return s.writeCache(ctx, cacheKeyTypes, types)
}

// ClearCatalog drops every cached entry.
func (s *SQLiteStorage) ClearCatalog(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM catalog_cache`); err != nil {
		return fmt.Errorf("failed to clear catalog cache: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) readCache(ctx context.Context, key string, out any) (time.Time, error) {
	if err := validateContext(ctx); err != nil {
		return time.Time{}, err
	}

	var payload string
	var fetchedAt time.Time
	err := s.db.QueryRowContext(ctx, `
		SELECT payload, fetched_at FROM catalog_cache WHERE key = ?
	`, key).Scan(&payload, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read %s cache: %w", key, err)
	}

	if err := json.Unmarshal([]byte(payload), out); err != nil {
		return time.Time{}, fmt.Errorf("failed to decode %s cache: %w", key, err)
	}
	return fetchedAt, nil
}

func (s *SQLiteStorage) writeCache(ctx context.Context, key string, v any) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s cache: %w", key, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO catalog_cache (key, payload, fetched_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at
	`, key, string(payload), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to write %s cache: %w", key, err)
	}
	return nil
}
