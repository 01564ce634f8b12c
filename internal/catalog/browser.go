package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/Veraticus/dex/internal/common"
	"github.com/Veraticus/dex/internal/model"
)

// ErrUnknownType is returned when selecting a type outside the registry.
var ErrUnknownType = errors.New("unknown type")

// Browser is the state behind the browsing page: the working set, the type
// registry, the criteria being edited, the criteria last applied, and the
// page of the filtered view.
//
// Editing criteria never re-filters; only Apply does. Browser is not safe
// for concurrent use.
type Browser struct {
	source   Source
	pager    *Paginator
	working  []model.Pokemon
	types    []string
	filtered []model.Pokemon
	pending  model.Criteria
	applied  model.Criteria
}

// NewBrowser creates an empty browser that loads from source.
func NewBrowser(source Source, pageSize int) *Browser {
	return &Browser{
		source: source,
		pager:  NewPaginator(nil, pageSize),
	}
}

// Snapshot is the outcome of one fetch of the working set and type registry.
// Either half may have failed independently.
type Snapshot struct {
	WorkingErr error
	TypesErr   error
	Working    []model.Pokemon
	Types      []string
}

// Fetch loads the type registry and working set from source concurrently.
// It does not touch any browser, so it is safe to run off the UI loop.
func Fetch(ctx context.Context, source Source) Snapshot {
	var (
		snap Snapshot
		wg   sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		snap.Working, snap.WorkingErr = source.LoadWorkingSet(ctx)
	}()
	go func() {
		defer wg.Done()
		snap.Types, snap.TypesErr = source.LoadTypes(ctx)
	}()
	wg.Wait()

	return snap
}

// Load fetches from the browser's source and publishes the result.
func (b *Browser) Load(ctx context.Context) error {
	return b.Publish(Fetch(ctx, b.source))
}

// Publish installs whichever halves of snap succeeded. Failures are logged
// and returned joined; a failed registry leaves type filtering unavailable,
// a failed catalog leaves the working set empty.
func (b *Browser) Publish(snap Snapshot) error {
	var errs []error
	if snap.TypesErr != nil {
		slog.Error("Failed to load pokemon types", "error", snap.TypesErr)
		errs = append(errs, fmt.Errorf("%w: %w", common.ErrTypesUnavailable, snap.TypesErr))
	} else {
		b.SetTypes(snap.Types)
	}
	if snap.WorkingErr != nil {
		slog.Error("Failed to load pokemon", "error", snap.WorkingErr)
		errs = append(errs, fmt.Errorf("%w: %w", common.ErrCatalogUnavailable, snap.WorkingErr))
	} else {
		b.SetWorkingSet(snap.Working)
	}

	return errors.Join(errs...)
}

// SetWorkingSet publishes the working set and derives the view from the
// applied criteria.
func (b *Browser) SetWorkingSet(working []model.Pokemon) {
	b.working = working
	b.refilter()
}

// SetTypes publishes the type registry.
func (b *Browser) SetTypes(types []string) {
	b.types = types
}

// Working returns the working set. Callers must not modify it.
func (b *Browser) Working() []model.Pokemon { return b.working }

// Types returns the type registry.
func (b *Browser) Types() []string { return b.types }

// TypeOptions returns the selectable types, led by "" for any type.
func (b *Browser) TypeOptions() []string {
	return append([]string{""}, b.types...)
}

// Pending returns the criteria being edited.
func (b *Browser) Pending() model.Criteria { return b.pending }

// Applied returns the criteria behind the current view.
func (b *Browser) Applied() model.Criteria { return b.applied }

// Dirty reports whether edited criteria have not been applied yet.
func (b *Browser) Dirty() bool { return b.pending != b.applied }

// SetName edits the name fragment.
func (b *Browser) SetName(name string) { b.pending.Name = name }

// SetMinWeight edits the minimum weight. Any string is accepted; unparsable
// values filter as unset.
func (b *Browser) SetMinWeight(w string) { b.pending.MinWeight = w }

// SetType edits the type. Only "" or a registry label is accepted.
func (b *Browser) SetType(label string) error {
	if label != "" && !slices.Contains(b.types, label) {
		return fmt.Errorf("%w: %q", ErrUnknownType, label)
	}
	b.pending.Type = label
	return nil
}

// SetCriteria replaces the pending criteria wholesale, validating the type.
func (b *Browser) SetCriteria(c model.Criteria) error {
	if err := b.SetType(c.Type); err != nil {
		return err
	}
	b.pending = c
	return nil
}

// Apply makes the pending criteria current, recomputes the filtered view
// and returns to page 1.
func (b *Browser) Apply() {
	b.applied = b.pending
	b.refilter()
	slog.Debug("Applied filters",
		"name", b.applied.Name,
		"type", b.applied.Type,
		"min_weight", b.applied.MinWeight,
		"matches", len(b.filtered))
}

// Filtered returns the current filtered view.
func (b *Browser) Filtered() []model.Pokemon { return b.filtered }

// Find returns the working-set record with the given name.
func (b *Browser) Find(name string) (model.Pokemon, bool) {
	for _, p := range b.working {
		if p.Name == name {
			return p, true
		}
	}
	return model.Pokemon{}, false
}

// Pager exposes page navigation over the filtered view.
func (b *Browser) Pager() *Paginator { return b.pager }

// CurrentPage returns the records on the current page.
func (b *Browser) CurrentPage() []model.Pokemon { return b.pager.Items() }

func (b *Browser) refilter() {
	b.filtered = Filter(b.working, b.applied)
	b.pager.SetView(b.filtered)
}
