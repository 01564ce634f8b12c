package components

import (
	"fmt"
	"slices"

	"github.com/Veraticus/dex/internal/model"
	"github.com/Veraticus/dex/internal/tui/themes"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FilterField identifies a control in the filter bar.
type FilterField int

// Filter bar controls in tab order.
const (
	FieldName FilterField = iota
	FieldType
	FieldWeight
	FieldApply
	fieldCount
)

var (
	nextFieldKey = key.NewBinding(key.WithKeys("tab", "down"))
	prevFieldKey = key.NewBinding(key.WithKeys("shift+tab", "up"))
	nextOptKey   = key.NewBinding(key.WithKeys("right"))
	prevOptKey   = key.NewBinding(key.WithKeys("left"))
	applyKey     = key.NewBinding(key.WithKeys("enter"))
	closeKey     = key.NewBinding(key.WithKeys("esc"))
)

// FilterBarModel edits catalog criteria: a name input and two selects.
// Edits stay local until the user applies them.
type FilterBarModel struct {
	theme     themes.Theme
	name      textinput.Model
	types     []string
	weights   []string
	typeIdx   int
	weightIdx int
	focus     FilterField
	width     int
	focused   bool
}

// NewFilterBar creates a filter bar offering the given weight options.
// Type options start as "any" only until SetTypeOptions is called.
func NewFilterBar(theme themes.Theme, weights []string) FilterBarModel {
	ti := textinput.New()
	ti.Placeholder = "name"
	ti.Prompt = ""
	ti.CharLimit = 32
	ti.Width = 16

	return FilterBarModel{
		theme:   theme,
		name:    ti,
		types:   []string{""},
		weights: weights,
	}
}

// SetTypeOptions replaces the selectable types. The current selection is
// kept when still offered.
func (m *FilterBarModel) SetTypeOptions(opts []string) {
	current := m.types[m.typeIdx]
	m.types = opts
	m.typeIdx = max(0, slices.Index(opts, current))
}

// SetWidth sets the rendering width.
func (m *FilterBarModel) SetWidth(w int) {
	m.width = w
}

// Focus activates the bar on the name input.
func (m *FilterBarModel) Focus() tea.Cmd {
	m.focused = true
	m.focus = FieldName
	return m.name.Focus()
}

// Blur deactivates the bar.
func (m *FilterBarModel) Blur() {
	m.focused = false
	m.name.Blur()
}

// Focused reports whether the bar has keyboard focus.
func (m FilterBarModel) Focused() bool { return m.focused }

// Field returns the focused control.
func (m FilterBarModel) Field() FilterField { return m.focus }

// Criteria returns the criteria as currently edited.
func (m FilterBarModel) Criteria() model.Criteria {
	return model.Criteria{
		Name:      m.name.Value(),
		Type:      m.types[m.typeIdx],
		MinWeight: m.weights[m.weightIdx],
	}
}

// Update handles keys while focused.
func (m FilterBarModel) Update(msg tea.Msg) (FilterBarModel, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, closeKey):
		return m, func() tea.Msg { return FiltersClosedMsg{} }
	case key.Matches(keyMsg, applyKey):
		c := m.Criteria()
		return m, func() tea.Msg { return ApplyFiltersMsg{Criteria: c} }
	case key.Matches(keyMsg, nextFieldKey):
		return m, m.setField((m.focus + 1) % fieldCount)
	case key.Matches(keyMsg, prevFieldKey):
		return m, m.setField((m.focus + fieldCount - 1) % fieldCount)
	}

	switch m.focus {
	case FieldName:
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		return m, cmd
	case FieldType:
		m.typeIdx = cycle(keyMsg, m.typeIdx, len(m.types))
	case FieldWeight:
		m.weightIdx = cycle(keyMsg, m.weightIdx, len(m.weights))
	}
	return m, nil
}

func (m *FilterBarModel) setField(f FilterField) tea.Cmd {
	m.focus = f
	if f == FieldName {
		return m.name.Focus()
	}
	m.name.Blur()
	return nil
}

func cycle(msg tea.KeyMsg, idx, n int) int {
	switch {
	case key.Matches(msg, nextOptKey):
		return (idx + 1) % n
	case key.Matches(msg, prevOptKey):
		return (idx + n - 1) % n
	}
	return idx
}

// View renders the bar.
func (m FilterBarModel) View() string {
	controls := []string{
		m.field(FieldName, m.name.View()),
		m.field(FieldType, "◀ "+TypeLabel(m.types[m.typeIdx])+" ▶"),
		m.field(FieldWeight, "◀ "+WeightLabel(m.weights[m.weightIdx])+" ▶"),
	}

	button := m.theme.Button
	if m.focused && m.focus == FieldApply {
		button = m.theme.ButtonFocused
	}
	controls = append(controls, button.Render("Filter"))

	bar := lipgloss.JoinHorizontal(lipgloss.Center, controls...)
	if m.width > 0 {
		bar = lipgloss.NewStyle().MaxWidth(m.width).Render(bar)
	}
	return bar
}

func (m FilterBarModel) field(f FilterField, content string) string {
	style := m.theme.Field
	if m.focused && m.focus == f {
		style = m.theme.FieldFocused
	}
	return style.Render(content)
}

// TypeLabel renders a type option.
func TypeLabel(t string) string {
	if t == "" {
		return "any type"
	}
	return t
}

// WeightLabel renders a minimum weight option.
func WeightLabel(w string) string {
	if w == "" {
		return "any weight"
	}
	return fmt.Sprintf("weight ≥ %s", w)
}
