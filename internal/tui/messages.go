package tui

import "github.com/Veraticus/dex/internal/catalog"

// catalogLoadedMsg carries the result of one catalog fetch.
type catalogLoadedMsg struct {
	snapshot catalog.Snapshot
}

// sessionChangedMsg is sent when a user signs in or out.
type sessionChangedMsg struct{}
