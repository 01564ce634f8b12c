package components

import "github.com/Veraticus/dex/internal/model"

// ApplyFiltersMsg asks the browser to apply the filter bar's criteria.
type ApplyFiltersMsg struct {
	Criteria model.Criteria
}

// FiltersClosedMsg returns focus from the filter bar to the grid.
type FiltersClosedMsg struct{}

// PokemonSelectedMsg opens the detail view for a record.
type PokemonSelectedMsg struct {
	Pokemon model.Pokemon
}
