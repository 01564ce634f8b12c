package components

import (
	"github.com/Veraticus/dex/internal/model"
	"github.com/Veraticus/dex/internal/tui/themes"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	gridUp     = key.NewBinding(key.WithKeys("up", "k"))
	gridDown   = key.NewBinding(key.WithKeys("down", "j"))
	gridLeft   = key.NewBinding(key.WithKeys("left", "h"))
	gridRight  = key.NewBinding(key.WithKeys("right", "l"))
	gridSelect = key.NewBinding(key.WithKeys("enter"))
)

// PokemonGridModel lays out one page of records as cards and tracks the
// highlighted card.
type PokemonGridModel struct {
	theme  themes.Theme
	items  []model.Pokemon
	cursor int
	width  int
}

// NewPokemonGrid creates an empty grid.
func NewPokemonGrid(theme themes.Theme) PokemonGridModel {
	return PokemonGridModel{theme: theme}
}

// SetItems replaces the page shown and moves the cursor to the first card.
func (m *PokemonGridModel) SetItems(items []model.Pokemon) {
	m.items = items
	m.cursor = 0
}

// SetWidth sets the available width.
func (m *PokemonGridModel) SetWidth(w int) {
	m.width = w
}

// Columns returns how many cards fit on one row.
func (m PokemonGridModel) Columns() int {
	return max(1, m.width/CardWidth)
}

// Cursor returns the index of the highlighted card.
func (m PokemonGridModel) Cursor() int { return m.cursor }

// Selected returns the highlighted record.
func (m PokemonGridModel) Selected() (model.Pokemon, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return model.Pokemon{}, false
	}
	return m.items[m.cursor], true
}

// Update moves the cursor and opens the highlighted record on enter.
func (m PokemonGridModel) Update(msg tea.Msg) (PokemonGridModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.items) == 0 {
		return m, nil
	}

	cols := m.Columns()
	switch {
	case key.Matches(keyMsg, gridUp):
		if m.cursor-cols >= 0 {
			m.cursor -= cols
		}
	case key.Matches(keyMsg, gridDown):
		if m.cursor+cols < len(m.items) {
			m.cursor += cols
		}
	case key.Matches(keyMsg, gridLeft):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, gridRight):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, gridSelect):
		p := m.items[m.cursor]
		return m, func() tea.Msg { return PokemonSelectedMsg{Pokemon: p} }
	}
	return m, nil
}

// View renders the cards row by row.
func (m PokemonGridModel) View() string {
	if len(m.items) == 0 {
		return m.theme.StatusPending.Render("No pokemon match these filters.")
	}

	cols := m.Columns()
	var rows []string
	for start := 0; start < len(m.items); start += cols {
		end := min(start+cols, len(m.items))
		cards := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			cards = append(cards, RenderCard(m.theme, m.items[i], i == m.cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
