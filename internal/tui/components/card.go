package components

import (
	"fmt"
	"strings"

	"github.com/Veraticus/dex/internal/model"
	"github.com/Veraticus/dex/internal/tui/themes"
	"github.com/charmbracelet/lipgloss"
)

// CardWidth is the rendered width of a card including its border.
const CardWidth = 24

const cardInner = CardWidth - 2

// RenderCard renders one record as a grid card.
func RenderCard(theme themes.Theme, p model.Pokemon, selected bool) string {
	style := theme.Card
	title := theme.Bold
	if selected {
		style = theme.CardSelected
		title = theme.Title
	}

	badges := make([]string, 0, len(p.Types))
	for _, t := range p.Types {
		badges = append(badges, theme.TypeBadge(t))
	}

	body := strings.Join([]string{
		title.Render(truncate(fmt.Sprintf("#%03d %s", p.ID, p.DisplayName()), cardInner-2)),
		strings.Join(badges, " "),
		theme.Subtitle.Render(fmt.Sprintf("weight %d", p.Weight)),
		theme.Subtitle.Render(truncateLeft(p.Sprite, cardInner-2)),
	}, "\n")

	return style.Width(cardInner).Render(body)
}

// RenderDetail renders the full record for the detail overlay.
func RenderDetail(theme themes.Theme, p model.Pokemon) string {
	badges := make([]string, 0, len(p.Types))
	for _, t := range p.Types {
		badges = append(badges, theme.TypeBadge(t))
	}

	rows := []string{
		theme.Title.Render(fmt.Sprintf("#%03d %s", p.ID, p.DisplayName())),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, theme.Bold.Render("Types   "), strings.Join(badges, " ")),
		lipgloss.JoinHorizontal(lipgloss.Top, theme.Bold.Render("Weight  "),
			theme.Normal.Render(fmt.Sprintf("%d (%.1f kg)", p.Weight, float64(p.Weight)/10))),
		lipgloss.JoinHorizontal(lipgloss.Top, theme.Bold.Render("Sprite  "), theme.Normal.Render(p.Sprite)),
	}
	return theme.Detail.Render(strings.Join(rows, "\n"))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// truncateLeft keeps the tail of s, which is the informative part of a URL.
func truncateLeft(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return "…" + string(r[len(r)-n+1:])
}
