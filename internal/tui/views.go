package tui

import (
	"fmt"

	"github.com/Veraticus/dex/internal/catalog"
	"github.com/Veraticus/dex/internal/nav"
	"github.com/Veraticus/dex/internal/tui/components"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// View renders the current screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.state {
	case StateLoading:
		return m.renderLoading()
	case StateDetail:
		body = m.renderDetail()
	case StateHelp:
		body = m.renderHelp()
	default:
		body = m.renderBrowse()
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.renderNavbar(), "", body)
}

func (m Model) renderNavbar() string {
	var items []nav.Item
	if m.session != nil {
		items = nav.Items(m.session.Current())
	} else {
		items = nav.Items(nil)
	}
	return components.RenderNavbar(m.theme, items, nav.RouteHome, m.width)
}

func (m Model) renderLoading() string {
	content := lipgloss.JoinVertical(
		lipgloss.Center,
		m.theme.Title.Render("◓ dex"),
		"",
		m.spinner.View()+" "+m.theme.Subtitle.Render("Catching pokemon..."),
	)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) renderBrowse() string {
	sections := []string{m.filters.View()}
	if line := m.renderStatus(); line != "" {
		sections = append(sections, line)
	}
	sections = append(sections,
		"",
		m.grid.View(),
		"",
		m.theme.Subtitle.Render(pageIndicator(m.browser.Pager().Info())),
	)
	if m.config.ShowHelp {
		sections = append(sections, m.help.ShortHelpView(m.keymap.ShortHelp()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderStatus() string {
	switch {
	case m.status != "":
		return m.theme.StatusError.Render(m.status)
	case m.browser.Dirty():
		return m.theme.StatusWarning.Render("Filters changed. Press enter to apply.")
	}
	return ""
}

func (m Model) renderDetail() string {
	if m.detail == nil {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		components.RenderDetail(m.theme, *m.detail),
		"",
		m.help.ShortHelpView([]key.Binding{m.keymap.Back, m.keymap.Quit}),
	)
}

func (m Model) renderHelp() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Title.Render("Keyboard shortcuts"),
		"",
		m.help.FullHelpView(m.keymap.FullHelp()),
		"",
		m.theme.Subtitle.Render("Press ? or Esc to return."),
	)
}

// pageIndicator formats the pagination footer; an empty view reads as page 1 of 1.
func pageIndicator(info catalog.PageInfo) string {
	return fmt.Sprintf("page %d of %d (%d matches)", info.Page, max(1, info.TotalPages), info.Total)
}
