package components

import (
	"testing"

	"github.com/Veraticus/dex/internal/model"
	"github.com/Veraticus/dex/internal/nav"
	"github.com/Veraticus/dex/internal/pokeapi/pokeapitest"
	"github.com/Veraticus/dex/internal/tui/themes"
	"github.com/Veraticus/dex/internal/tui/tuitest"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPokemonGrid_Columns(t *testing.T) {
	tests := []struct {
		name  string
		width int
		want  int
	}{
		{"unset width", 0, 1},
		{"narrower than a card", CardWidth - 1, 1},
		{"four cards", CardWidth*4 + 3, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewPokemonGrid(themes.Default)
			g.SetWidth(tt.width)
			assert.Equal(t, tt.want, g.Columns())
		})
	}
}

func TestPokemonGrid_CursorMovement(t *testing.T) {
	g := NewPokemonGrid(themes.Default)
	g.SetWidth(CardWidth * 4)
	g.SetItems(pokeapitest.Starters)

	tests := []struct {
		name string
		msg  tea.Msg
		want int
	}{
		{"right", tuitest.KeyRight(), 1},
		{"down one row", tuitest.KeyDown(), 5},
		{"down past the end stays", tuitest.KeyDown(), 5},
		{"left", tuitest.KeyLeft(), 4},
		{"up one row", tuitest.KeyUp(), 0},
		{"up at top stays", tuitest.KeyUp(), 0},
		{"left at start stays", tuitest.KeyLeft(), 0},
		{"vim keys", tuitest.KeyPress("l"), 1},
	}
	for _, tt := range tests {
		g, _ = g.Update(tt.msg)
		assert.Equal(t, tt.want, g.Cursor(), tt.name)
	}
}

func TestPokemonGrid_SelectEmitsRecord(t *testing.T) {
	g := NewPokemonGrid(themes.Default)
	g.SetItems(pokeapitest.Starters)
	g, _ = g.Update(tuitest.KeyDown())

	_, cmd := g.Update(tuitest.KeyEnter())
	require.NotNil(t, cmd)
	assert.Equal(t, PokemonSelectedMsg{Pokemon: pokeapitest.Starters[1]}, cmd())
}

func TestPokemonGrid_SetItemsResetsCursor(t *testing.T) {
	g := NewPokemonGrid(themes.Default)
	g.SetItems(pokeapitest.Starters)
	g, _ = g.Update(tuitest.KeyDown())
	require.Equal(t, 1, g.Cursor())

	g.SetItems(pokeapitest.Starters[:2])
	assert.Zero(t, g.Cursor())
}

func TestPokemonGrid_Empty(t *testing.T) {
	g := NewPokemonGrid(themes.Default)

	_, ok := g.Selected()
	assert.False(t, ok)

	g, cmd := g.Update(tuitest.KeyEnter())
	assert.Nil(t, cmd)
	assert.Contains(t, tuitest.StripANSI(g.View()), "No pokemon match these filters.")
}

func TestPokemonGrid_View(t *testing.T) {
	g := NewPokemonGrid(themes.Default)
	g.SetWidth(CardWidth * 2)
	g.SetItems(pokeapitest.Starters[4:6])

	view := tuitest.StripANSI(g.View())
	assert.True(t, tuitest.ContainsInOrder(view, "#025 Pikachu", "#026 Raichu"))
	assert.Contains(t, view, "electric")
	assert.Contains(t, view, "weight 60")
	assert.Contains(t, view, "25.png")
}

func TestRenderDetail(t *testing.T) {
	p := pokeapitest.Starters[2]

	view := tuitest.StripANSI(RenderDetail(themes.Default, p))
	assert.Contains(t, view, "#006 Charizard")
	assert.Contains(t, view, "fire")
	assert.Contains(t, view, "flying")
	assert.Contains(t, view, "905 (90.5 kg)")
	assert.Contains(t, view, p.Sprite)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
	assert.Equal(t, "…efgh", truncateLeft("abcdefgh", 5))
	assert.Equal(t, "abc", truncateLeft("abc", 5))
}

func TestRenderNavbar(t *testing.T) {
	signedOut := tuitest.StripANSI(RenderNavbar(themes.Default, nav.Items(nil), nav.RouteHome, 0))
	assert.True(t, tuitest.ContainsInOrder(signedOut, "dex", "Home", "Register", "Login", "Contact"))

	user := &model.User{DisplayName: "Ash"}
	signedIn := tuitest.StripANSI(RenderNavbar(themes.Default, nav.Items(user), nav.RouteHome, 120))
	assert.True(t, tuitest.ContainsInOrder(signedIn, "Home", "Ash", "Logout", "Contact"))
	assert.NotContains(t, signedIn, "Login")
}
