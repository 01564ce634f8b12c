package pokeapi

import "github.com/Veraticus/dex/internal/model"

// namedResource is PokeAPI's {name, url} reference shape.
type namedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type namedResourceList struct {
	Next    *string         `json:"next"`
	Results []namedResource `json:"results"`
	Count   int             `json:"count"`
}

type pokemonType struct {
	Type namedResource `json:"type"`
	Slot int           `json:"slot"`
}

type sprites struct {
	FrontDefault string `json:"front_default"`
}

type pokemonDetail struct {
	Name    string        `json:"name"`
	Sprites sprites       `json:"sprites"`
	Types   []pokemonType `json:"types"`
	ID      int           `json:"id"`
	Weight  int           `json:"weight"`
}

func (d pokemonDetail) toModel() model.Pokemon {
	types := make([]string, 0, len(d.Types))
	for _, t := range d.Types {
		types = append(types, t.Type.Name)
	}
	return model.Pokemon{
		ID:     d.ID,
		Name:   d.Name,
		Weight: d.Weight,
		Types:  types,
		Sprite: d.Sprites.FrontDefault,
	}
}
