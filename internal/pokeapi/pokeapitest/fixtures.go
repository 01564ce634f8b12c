package pokeapitest

import (
	"fmt"

	"github.com/Veraticus/dex/internal/model"
)

// Types is the type registry as PokeAPI returns it, sentinels included.
var Types = []string{
	"normal", "fighting", "flying", "poison", "ground", "rock", "bug", "ghost",
	"steel", "fire", "water", "grass", "electric", "psychic", "ice", "dragon",
	"dark", "fairy", "stellar", "unknown",
}

// Starters is a small hand-written working set.
var Starters = []model.Pokemon{
	{ID: 1, Name: "bulbasaur", Weight: 69, Types: []string{"grass", "poison"}, Sprite: sprite(1)},
	{ID: 4, Name: "charmander", Weight: 85, Types: []string{"fire"}, Sprite: sprite(4)},
	{ID: 6, Name: "charizard", Weight: 905, Types: []string{"fire", "flying"}, Sprite: sprite(6)},
	{ID: 7, Name: "squirtle", Weight: 90, Types: []string{"water"}, Sprite: sprite(7)},
	{ID: 25, Name: "pikachu", Weight: 60, Types: []string{"electric"}, Sprite: sprite(25)},
	{ID: 26, Name: "raichu", Weight: 300, Types: []string{"electric"}, Sprite: sprite(26)},
	{ID: 39, Name: "jigglypuff", Weight: 55, Types: []string{"normal", "fairy"}, Sprite: sprite(39)},
	{ID: 132, Name: "ditto", Weight: 40, Types: []string{"normal"}, Sprite: sprite(132)},
}

// Generate returns n synthetic records. Index 24 (ID 25) is pikachu with
// weight 60 and type electric; every other record is named mon-<id>.
func Generate(n int) []model.Pokemon {
	cycle := []string{"grass", "fire", "water", "bug", "normal", "poison", "ground", "rock"}

	out := make([]model.Pokemon, n)
	for i := range out {
		id := i + 1
		out[i] = model.Pokemon{
			ID:     id,
			Name:   fmt.Sprintf("mon-%03d", id),
			Weight: (id * 37) % 400,
			Types:  []string{cycle[i%len(cycle)]},
			Sprite: sprite(id),
		}
		if id == 25 {
			out[i] = model.Pokemon{ID: 25, Name: "pikachu", Weight: 60, Types: []string{"electric"}, Sprite: sprite(25)}
		}
	}
	return out
}

func sprite(id int) string {
	return fmt.Sprintf("https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/%d.png", id)
}
