package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Selected      lipgloss.Style
	Highlighted   lipgloss.Style
	Card          lipgloss.Style
	CardSelected  lipgloss.Style
	Detail        lipgloss.Style
	Navbar        lipgloss.Style
	NavItem       lipgloss.Style
	NavActive     lipgloss.Style
	Field         lipgloss.Style
	FieldFocused  lipgloss.Style
	Button        lipgloss.Style
	ButtonFocused lipgloss.Style
	Badge         lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusPending lipgloss.Style
	Primary       lipgloss.Color
	Secondary     lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
	Foreground    lipgloss.Color
	Error         lipgloss.Color
	Warning       lipgloss.Color
}

// Default is the pokédex red theme.
var Default = newTheme(palette{
	primary:    "#dc2626",
	secondary:  "#facc15",
	muted:      "#737373",
	border:     "#404040",
	foreground: "#fafafa",
	errorC:     "#ef4444",
	warning:    "#f59e0b",
	info:       "#3b82f6",
	highlight:  "#262626",
})

// Night is a darker theme with a blue accent.
var Night = newTheme(palette{
	primary:    "#89b4fa",
	secondary:  "#f9e2af",
	muted:      "#6c7086",
	border:     "#45475a",
	foreground: "#cdd6f4",
	errorC:     "#f38ba8",
	warning:    "#fab387",
	info:       "#89dceb",
	highlight:  "#313244",
})

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	switch name {
	case "night":
		return Night
	default:
		return Default
	}
}

type palette struct {
	primary, secondary, muted, border, foreground string
	errorC, warning, info, highlight              string
}

func newTheme(p palette) Theme {
	fg := lipgloss.Color(p.foreground)
	primary := lipgloss.Color(p.primary)
	border := lipgloss.Color(p.border)

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)

	return Theme{
		Primary:    primary,
		Secondary:  lipgloss.Color(p.secondary),
		Muted:      lipgloss.Color(p.muted),
		Border:     border,
		Foreground: fg,
		Error:      lipgloss.Color(p.errorC),
		Warning:    lipgloss.Color(p.warning),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.muted)),
		Normal: lipgloss.NewStyle().
			Foreground(fg),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(fg),
		Selected: lipgloss.NewStyle().
			Background(primary).
			Foreground(fg).
			Bold(true),
		Highlighted: lipgloss.NewStyle().
			Background(lipgloss.Color(p.highlight)).
			Foreground(fg),

		Card:         card,
		CardSelected: card.BorderForeground(primary).Bold(true),
		Detail: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(primary).
			Padding(1, 2),

		Navbar: lipgloss.NewStyle().
			Background(primary).
			Foreground(fg).
			Padding(0, 1),
		NavItem: lipgloss.NewStyle().
			Background(primary).
			Foreground(fg).
			Padding(0, 1),
		NavActive: lipgloss.NewStyle().
			Background(lipgloss.Color(p.secondary)).
			Foreground(lipgloss.Color("#1a1a1a")).
			Bold(true).
			Padding(0, 1),

		Field: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(border).
			Padding(0, 1),
		FieldFocused: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(primary).
			Padding(0, 1),
		Button: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(border).
			Padding(0, 2),
		ButtonFocused: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(primary).
			Background(primary).
			Foreground(fg).
			Bold(true).
			Padding(0, 2),
		Badge: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1a1a1a")).
			Padding(0, 1),

		StatusInfo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.info)).
			Bold(true),
		StatusError: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.errorC)).
			Bold(true),
		StatusWarning: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.warning)).
			Bold(true),
		StatusPending: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.muted)).
			Italic(true),
	}
}

// TypeColors maps type labels to badge colors.
var TypeColors = map[string]lipgloss.Color{
	"normal":   "#a8a77a",
	"fighting": "#c22e28",
	"flying":   "#a98ff3",
	"poison":   "#a33ea1",
	"ground":   "#e2bf65",
	"rock":     "#b6a136",
	"bug":      "#a6b91a",
	"ghost":    "#735797",
	"steel":    "#b7b7ce",
	"fire":     "#ee8130",
	"water":    "#6390f0",
	"grass":    "#7ac74c",
	"electric": "#f7d02c",
	"psychic":  "#f95587",
	"ice":      "#96d9d6",
	"dragon":   "#6f35fc",
	"dark":     "#705746",
	"fairy":    "#d685ad",
}

// TypeColor returns the badge color for a type label.
func TypeColor(label string) lipgloss.Color {
	if c, ok := TypeColors[label]; ok {
		return c
	}
	return "#737373"
}

// TypeBadge renders label as a colored badge.
func (t Theme) TypeBadge(label string) string {
	return t.Badge.Background(TypeColor(label)).Render(label)
}
