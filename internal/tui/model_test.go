package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/Veraticus/dex/internal/catalog"
	"github.com/Veraticus/dex/internal/model"
	"github.com/Veraticus/dex/internal/pokeapi/pokeapitest"
	"github.com/Veraticus/dex/internal/session"
	"github.com/Veraticus/dex/internal/tui/components"
	"github.com/Veraticus/dex/internal/tui/tuitest"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errFetch = errors.New("fetch failed")

type stubSource struct {
	workErr  error
	typesErr error
	working  []model.Pokemon
	types    []string
}

func (s stubSource) LoadWorkingSet(context.Context) ([]model.Pokemon, error) {
	return s.working, s.workErr
}

func (s stubSource) LoadTypes(context.Context) ([]string, error) {
	return s.types, s.typesErr
}

func newTestModel(t *testing.T, src catalog.Source, opts ...Option) Model {
	t.Helper()
	opts = append([]Option{WithSource(src), WithSize(100, 40)}, opts...)
	m, err := New(context.Background(), opts...)
	require.NoError(t, err)
	return m
}

// loaded runs the load command synchronously and feeds its result back.
func loaded(t *testing.T, src catalog.Source, opts ...Option) Model {
	t.Helper()
	m := newTestModel(t, src, opts...)
	return update(t, m, m.loadCatalog()())
}

func update(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	next, _ := tuitest.Apply(m, msgs...)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

// press sends msg and feeds back the message its command produces.
func press(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	require.NotNil(t, cmd)
	return update(t, m, cmd())
}

func view(m Model) string {
	return tuitest.StripANSI(m.View())
}

func starters() stubSource {
	return stubSource{working: pokeapitest.Starters, types: catalog.ValidTypes(pokeapitest.Types)}
}

func TestNew_RequiresSource(t *testing.T) {
	_, err := New(context.Background())
	assert.ErrorIs(t, err, ErrNoSource)
}

func TestModel_Loading(t *testing.T) {
	m := newTestModel(t, starters())

	assert.Equal(t, StateLoading, m.State())
	assert.NotNil(t, m.Init())
	assert.Contains(t, view(m), "Catching pokemon")
}

func TestModel_LoadedShowsFirstPage(t *testing.T) {
	m := loaded(t, stubSource{working: pokeapitest.Generate(150), types: catalog.ValidTypes(pokeapitest.Types)})

	assert.Equal(t, StateBrowsing, m.State())
	assert.Len(t, m.Browser().Working(), 150)
	assert.Len(t, m.Browser().TypeOptions(), 19)

	out := view(m)
	assert.True(t, tuitest.ContainsInOrder(out, "Home", "Register", "Login", "Contact"))
	assert.Contains(t, out, "any type")
	assert.Contains(t, out, "page 1 of 13 (150 matches)")
}

func TestModel_Paging(t *testing.T) {
	m := loaded(t, stubSource{working: pokeapitest.Generate(150)})

	tests := []struct {
		name string
		msg  tea.Msg
		want int
	}{
		{"next", tuitest.KeyPress("n"), 2},
		{"previous", tuitest.KeyPress("p"), 1},
		{"previous at first stays", tuitest.KeyPress("p"), 1},
		{"last", tuitest.KeyPress("G"), 13},
		{"next at last stays", tuitest.KeyPress("n"), 13},
		{"first", tuitest.KeyPress("g"), 1},
	}
	for _, tt := range tests {
		m = update(t, m, tt.msg)
		assert.Equal(t, tt.want, m.Browser().Pager().Page(), tt.name)
	}

	m = update(t, m, tuitest.KeyPress("G"))
	assert.Len(t, m.Browser().CurrentPage(), 6)
	assert.Contains(t, view(m), "page 13 of 13")
}

func TestModel_FilterFlow(t *testing.T) {
	m := loaded(t, stubSource{working: pokeapitest.Generate(150), types: catalog.ValidTypes(pokeapitest.Types)})
	m = update(t, m, tuitest.KeyPress("n"))

	m = update(t, m, tuitest.KeyPress("/"))
	m = update(t, m, tuitest.Type("pika")...)

	// Editing does not filter.
	assert.Equal(t, "pika", m.Browser().Pending().Name)
	assert.True(t, m.Browser().Dirty())
	assert.Len(t, m.Browser().Filtered(), 150)
	assert.Contains(t, view(m), "Filters changed")

	// The weight select: tab twice, then right to "50".
	m = update(t, m, tuitest.KeyTab(), tuitest.KeyTab(), tuitest.KeyRight())
	assert.Equal(t, "50", m.Browser().Pending().MinWeight)

	m = press(t, m, tuitest.KeyEnter())
	assert.False(t, m.Browser().Dirty())
	require.Len(t, m.Browser().Filtered(), 1)
	assert.Equal(t, "pikachu", m.Browser().Filtered()[0].Name)
	assert.Equal(t, catalog.PageInfo{Page: 1, PageSize: 12, Total: 1, TotalPages: 1}, m.Browser().Pager().Info())
	assert.Contains(t, view(m), "Pikachu")

	// Focus is back on the grid, so "q" quits instead of typing.
	_, cmd := m.Update(tuitest.KeyPress("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_TypeFilter(t *testing.T) {
	m := loaded(t, starters())

	m = update(t, m, tuitest.KeyPress("/"), tuitest.KeyTab())
	// ValidTypes(pokeapitest.Types) starts normal, fighting, flying.
	m = update(t, m, tuitest.KeyRight(), tuitest.KeyRight(), tuitest.KeyRight())
	assert.Equal(t, "flying", m.Browser().Pending().Type)

	m = press(t, m, tuitest.KeyEnter())
	require.Len(t, m.Browser().Filtered(), 1)
	assert.Equal(t, "charizard", m.Browser().Filtered()[0].Name)
}

func TestModel_EscClosesFilters(t *testing.T) {
	m := loaded(t, starters())

	m = update(t, m, tuitest.KeyPress("/"))
	m = update(t, m, tuitest.Type("char")...)
	m = press(t, m, tuitest.KeyEsc())

	// Pending edits survive but are not applied.
	assert.True(t, m.Browser().Dirty())
	assert.Len(t, m.Browser().Filtered(), len(pokeapitest.Starters))

	m = update(t, m, tuitest.KeyPress("n"))
	assert.Equal(t, "char", m.Browser().Pending().Name)
}

func TestModel_NoMatches(t *testing.T) {
	m := loaded(t, starters())

	m = update(t, m, tuitest.KeyPress("/"))
	m = update(t, m, tuitest.Type("zzz")...)
	m = press(t, m, tuitest.KeyEnter())

	out := view(m)
	assert.Contains(t, out, "No pokemon match these filters.")
	assert.Contains(t, out, "page 1 of 1 (0 matches)")
}

func TestModel_Detail(t *testing.T) {
	m := loaded(t, starters())

	m = update(t, m, tuitest.KeyRight())
	m = press(t, m, tuitest.KeyEnter())

	assert.Equal(t, StateDetail, m.State())
	out := view(m)
	assert.Contains(t, out, "#004 Charmander")
	assert.Contains(t, out, pokeapitest.Starters[1].Sprite)

	m = update(t, m, tuitest.KeyEsc())
	assert.Equal(t, StateBrowsing, m.State())
}

func TestModel_Help(t *testing.T) {
	m := loaded(t, starters())

	m = update(t, m, tuitest.KeyPress("?"))
	assert.Equal(t, StateHelp, m.State())
	assert.Contains(t, view(m), "Keyboard shortcuts")
	assert.Contains(t, view(m), "next page")

	m = update(t, m, tuitest.KeyPress("?"))
	assert.Equal(t, StateBrowsing, m.State())
}

func TestModel_LoadFailures(t *testing.T) {
	tests := []struct {
		name       string
		src        stubSource
		wantStatus string
		wantCount  int
	}{
		{
			name:       "types unavailable",
			src:        stubSource{working: pokeapitest.Starters, typesErr: errFetch},
			wantStatus: "Type filtering is unavailable",
			wantCount:  len(pokeapitest.Starters),
		},
		{
			name:       "catalog unavailable",
			src:        stubSource{workErr: errFetch, types: []string{"fire"}},
			wantStatus: "Could not load pokemon",
			wantCount:  0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := loaded(t, tt.src)

			assert.Equal(t, StateBrowsing, m.State())
			assert.Len(t, m.Browser().Working(), tt.wantCount)
			assert.Contains(t, view(m), tt.wantStatus)
		})
	}
}

func TestModel_Reload(t *testing.T) {
	m := loaded(t, stubSource{workErr: errFetch})

	next, cmd := m.Update(tuitest.KeyPress("r"))
	m = next.(Model)
	assert.Equal(t, StateLoading, m.State())
	assert.NotNil(t, cmd)

	m.config.Source = starters()
	m = update(t, m, m.loadCatalog()())
	assert.Equal(t, StateBrowsing, m.State())
	assert.Len(t, m.Browser().Working(), len(pokeapitest.Starters))
	assert.NotContains(t, view(m), "Could not load")
}

func TestModel_NavbarFollowsSession(t *testing.T) {
	sess, writer := session.New()
	m := loaded(t, starters(), WithSession(sess))
	assert.Contains(t, view(m), "Login")

	writer.Set(&model.User{ID: "u1", DisplayName: "Ash"})
	m = update(t, m, sessionChangedMsg{})

	out := view(m)
	assert.True(t, tuitest.ContainsInOrder(out, "Home", "Ash", "Logout", "Contact"))
	assert.NotContains(t, out, "Login")
}

func TestModel_QuitWhileLoading(t *testing.T) {
	m := newTestModel(t, starters())

	next, cmd := m.Update(tuitest.KeyPress("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, next.View())
}

func TestModel_ApplyRejectsUnknownType(t *testing.T) {
	m := loaded(t, starters())

	m = update(t, m, components.ApplyFiltersMsg{Criteria: model.Criteria{Type: "plasma"}})
	assert.Contains(t, view(m), "unknown type")
	assert.Len(t, m.Browser().Filtered(), len(pokeapitest.Starters))
}

func TestPageIndicator(t *testing.T) {
	assert.Equal(t, "page 1 of 1 (0 matches)", pageIndicator(catalog.PageInfo{Page: 1, PageSize: 12}))
	assert.Equal(t, "page 2 of 3 (25 matches)", pageIndicator(catalog.PageInfo{Page: 2, PageSize: 12, Total: 25, TotalPages: 3}))
}
