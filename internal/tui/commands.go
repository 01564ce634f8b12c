package tui

import (
	"context"

	"github.com/Veraticus/dex/internal/catalog"
	tea "github.com/charmbracelet/bubbletea"
)

// loadCatalog fetches the working set and type registry off the update
// loop. The browser is only touched when the result arrives in Update.
func (m Model) loadCatalog() tea.Cmd {
	parent := m.ctx
	source := m.config.Source
	timeout := m.config.LoadTimeout

	return func() tea.Msg {
		ctx, cancel := parent, context.CancelFunc(func() {})
		if timeout > 0 {
			ctx, cancel = context.WithTimeout(parent, timeout)
		}
		defer cancel()

		return catalogLoadedMsg{snapshot: catalog.Fetch(ctx, source)}
	}
}
