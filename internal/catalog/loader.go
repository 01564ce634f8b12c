package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync/atomic"
	"time"

	"github.com/Veraticus/dex/internal/model"
	"golang.org/x/sync/errgroup"
)

// DefaultLimit is the number of catalog entries loaded per session.
const DefaultLimit = 150

// ExcludedTypes are placeholder labels PokeAPI lists alongside the real types.
var ExcludedTypes = []string{"stellar", "unknown"}

// Fetcher is the remote side of the catalog. *pokeapi.Client implements it.
type Fetcher interface {
	ListPokemon(ctx context.Context, limit int) ([]model.Summary, error)
	GetPokemon(ctx context.Context, url string) (model.Pokemon, error)
	ListTypes(ctx context.Context) ([]string, error)
}

// Source produces a working set and a type registry.
// Loader and CachedLoader implement it.
type Source interface {
	LoadWorkingSet(ctx context.Context) ([]model.Pokemon, error)
	LoadTypes(ctx context.Context) ([]string, error)
}

// ProgressFunc is called once per completed detail fetch. It is called from
// loader goroutines and must be safe for concurrent use.
type ProgressFunc func(done, total int)

// Loader fetches the working set and type registry from a Fetcher.
type Loader struct {
	fetcher     Fetcher
	progress    ProgressFunc
	limit       int
	concurrency int
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLimit sets how many summaries are requested.
func WithLimit(n int) LoaderOption {
	return func(l *Loader) {
		if n > 0 {
			l.limit = n
		}
	}
}

// WithConcurrency bounds in-flight detail requests. Zero means unbounded.
func WithConcurrency(n int) LoaderOption {
	return func(l *Loader) {
		l.concurrency = n
	}
}

// WithProgress registers a progress callback for the detail fan-out.
func WithProgress(fn ProgressFunc) LoaderOption {
	return func(l *Loader) {
		l.progress = fn
	}
}

// NewLoader creates a Loader.
func NewLoader(f Fetcher, opts ...LoaderOption) *Loader {
	l := &Loader{
		fetcher: f,
		limit:   DefaultLimit,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadWorkingSet fetches the summaries, then every detail concurrently, and
// returns the records in summary order once all of them have arrived.
// The first failing detail cancels the rest and fails the whole load; no
// partial working set is returned.
func (l *Loader) LoadWorkingSet(ctx context.Context) ([]model.Pokemon, error) {
	start := time.Now()

	summaries, err := l.fetcher.ListPokemon(ctx, l.limit)
	if err != nil {
		return nil, err
	}

	records := make([]model.Pokemon, len(summaries))
	total := len(summaries)
	var done atomic.Int32

	g, gctx := errgroup.WithContext(ctx)
	if l.concurrency > 0 {
		g.SetLimit(l.concurrency)
	}

	for i, s := range summaries {
		g.Go(func() error {
			p, err := l.fetcher.GetPokemon(gctx, s.URL)
			if err != nil {
				return fmt.Errorf("detail for %q: %w", s.Name, err)
			}
			// Each goroutine owns index i, so no lock is needed.
			records[i] = p
			if l.progress != nil {
				l.progress(int(done.Add(1)), total)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Debug("Loaded working set",
		"count", len(records),
		"duration", time.Since(start).Round(time.Millisecond))

	return records, nil
}

// LoadTypes fetches the type registry without the placeholder labels.
func (l *Loader) LoadTypes(ctx context.Context) ([]string, error) {
	all, err := l.fetcher.ListTypes(ctx)
	if err != nil {
		return nil, err
	}
	return ValidTypes(all), nil
}

// ValidTypes drops ExcludedTypes from labels, preserving order.
func ValidTypes(labels []string) []string {
	out := make([]string, 0, len(labels))
	for _, t := range labels {
		if !slices.Contains(ExcludedTypes, t) {
			out = append(out, t)
		}
	}
	return out
}
