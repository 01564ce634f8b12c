package tui

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Veraticus/dex/internal/catalog"
	"github.com/Veraticus/dex/internal/common"
	"github.com/Veraticus/dex/internal/model"
	"github.com/Veraticus/dex/internal/session"
	"github.com/Veraticus/dex/internal/tui/components"
	"github.com/Veraticus/dex/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// State represents the current screen.
type State int

// Screens.
const (
	StateLoading State = iota
	StateBrowsing
	StateDetail
	StateHelp
)

type focusArea int

const (
	focusGrid focusArea = iota
	focusFilters
)

// Model is the browse screen.
type Model struct {
	ctx      context.Context
	loadErr  error
	theme    themes.Theme
	browser  *catalog.Browser
	session  *session.Session
	detail   *model.Pokemon
	status   string
	keymap   KeyMap
	help     help.Model
	spinner  spinner.Model
	filters  components.FilterBarModel
	grid     components.PokemonGridModel
	config   Config
	state    State
	prev     State
	focus    focusArea
	width    int
	height   int
	quitting bool
}

func newModel(ctx context.Context, cfg Config) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = cfg.Theme.Title

	m := Model{
		ctx:     ctx,
		theme:   cfg.Theme,
		browser: catalog.NewBrowser(cfg.Source, cfg.PageSize),
		session: cfg.Session,
		keymap:  DefaultKeyMap(),
		help:    help.New(),
		spinner: sp,
		filters: components.NewFilterBar(cfg.Theme, catalog.WeightOptions),
		grid:    components.NewPokemonGrid(cfg.Theme),
		config:  cfg,
		state:   StateLoading,
		width:   cfg.Width,
		height:  cfg.Height,
	}
	m.resize()
	return m
}

// Init starts the first catalog load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCatalog())
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case spinner.TickMsg:
		if m.state != StateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case catalogLoadedMsg:
		m.handleCatalogLoaded(msg)
		return m, nil

	case sessionChangedMsg:
		// The navbar reads the session at render time.
		return m, nil

	case components.ApplyFiltersMsg:
		m.applyFilters(msg.Criteria)
		return m, nil

	case components.FiltersClosedMsg:
		m.blurFilters()
		return m, nil

	case components.PokemonSelectedMsg:
		p := msg.Pokemon
		m.detail = &p
		m.state = StateDetail
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.focus == focusFilters {
		var cmd tea.Cmd
		m.filters, cmd = m.filters.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.ForceQuit) {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.state {
	case StateLoading:
		if key.Matches(msg, m.keymap.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case StateHelp:
		if key.Matches(msg, m.keymap.Help, m.keymap.Back, m.keymap.Quit) {
			m.state = m.prev
		}
		return m, nil

	case StateDetail:
		switch {
		case key.Matches(msg, m.keymap.Back, m.keymap.Select):
			m.detail = nil
			m.state = StateBrowsing
		case key.Matches(msg, m.keymap.Help):
			m.openHelp()
		case key.Matches(msg, m.keymap.Quit):
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	if m.focus == focusFilters {
		var cmd tea.Cmd
		m.filters, cmd = m.filters.Update(msg)
		m.syncPending()
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Help):
		m.openHelp()
		return m, nil
	case key.Matches(msg, m.keymap.Filter):
		m.focus = focusFilters
		return m, m.filters.Focus()
	case key.Matches(msg, m.keymap.Reload):
		m.state = StateLoading
		m.status = ""
		return m, tea.Batch(m.spinner.Tick, m.loadCatalog())
	case key.Matches(msg, m.keymap.NextPage):
		m.turnPage(m.browser.Pager().Next)
		return m, nil
	case key.Matches(msg, m.keymap.PrevPage):
		m.turnPage(m.browser.Pager().Prev)
		return m, nil
	case key.Matches(msg, m.keymap.First):
		m.turnPage(m.browser.Pager().First)
		return m, nil
	case key.Matches(msg, m.keymap.Last):
		m.turnPage(m.browser.Pager().Last)
		return m, nil
	}

	var cmd tea.Cmd
	m.grid, cmd = m.grid.Update(msg)
	return m, cmd
}

func (m *Model) handleCatalogLoaded(msg catalogLoadedMsg) {
	m.loadErr = m.browser.Publish(msg.snapshot)
	m.filters.SetTypeOptions(m.browser.TypeOptions())
	m.syncPending()
	m.grid.SetItems(m.browser.CurrentPage())
	m.state = StateBrowsing

	switch {
	case errors.Is(m.loadErr, common.ErrCatalogUnavailable):
		m.status = "Could not load pokemon. Press r to retry."
	case errors.Is(m.loadErr, common.ErrTypesUnavailable):
		m.status = "Could not load types. Type filtering is unavailable."
	default:
		m.status = ""
	}
}

func (m *Model) applyFilters(c model.Criteria) {
	if err := m.browser.SetCriteria(c); err != nil {
		slog.Warn("Rejected filter criteria", "error", err)
		m.status = err.Error()
		return
	}
	m.browser.Apply()
	m.grid.SetItems(m.browser.CurrentPage())
	m.blurFilters()
}

// syncPending mirrors the filter bar into the browser's pending criteria.
func (m *Model) syncPending() {
	c := m.filters.Criteria()
	m.browser.SetName(c.Name)
	m.browser.SetMinWeight(c.MinWeight)
	if err := m.browser.SetType(c.Type); err != nil {
		slog.Debug("Ignoring unknown type", "type", c.Type)
	}
}

func (m *Model) blurFilters() {
	m.filters.Blur()
	m.focus = focusGrid
}

func (m *Model) turnPage(move func() bool) {
	if move() {
		m.grid.SetItems(m.browser.CurrentPage())
	}
}

func (m *Model) openHelp() {
	m.prev = m.state
	m.state = StateHelp
}

func (m *Model) resize() {
	m.grid.SetWidth(m.width)
	m.filters.SetWidth(m.width)
	m.help.Width = m.width
}

// State returns the current screen.
func (m Model) State() State { return m.state }

// Browser exposes the browse state.
func (m Model) Browser() *catalog.Browser { return m.browser }
