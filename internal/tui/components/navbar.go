package components

import (
	"github.com/Veraticus/dex/internal/nav"
	"github.com/Veraticus/dex/internal/tui/themes"
	"github.com/charmbracelet/lipgloss"
)

// RenderNavbar renders the header: the brand followed by items, with active
// highlighted. The bar fills width when it is positive.
func RenderNavbar(theme themes.Theme, items []nav.Item, active nav.Route, width int) string {
	parts := []string{theme.NavItem.Bold(true).Render("◓ dex")}
	for _, it := range items {
		style := theme.NavItem
		if it.Route == active {
			style = theme.NavActive
		}
		parts = append(parts, style.Render(it.Label))
	}

	bar := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	if width > 0 {
		bar = theme.Navbar.Width(width).Render(bar)
	}
	return bar
}
