package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/BielosX/wombat/pokedex/src/pokemon"
)

var (
	Tint      = lipgloss.Color("#DC0A2D")
	GrayDark  = lipgloss.Color("#212121")
	GrayMid   = lipgloss.Color("#666666")
	GrayLight = lipgloss.Color("#E0E0E0")
	GrayWhite = lipgloss.Color("#FFFFFF")
)

type Styles struct {
	Header   lipgloss.Style
	Label    lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style
	Help     lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Header:   lipgloss.NewStyle().Bold(true).Foreground(GrayWhite).Background(Tint).Padding(0, 1),
		Label:    lipgloss.NewStyle().Bold(true).Foreground(Tint),
		Muted:    lipgloss.NewStyle().Foreground(GrayMid),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(GrayWhite).Background(Tint),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935")),
		Help:     lipgloss.NewStyle().Foreground(GrayMid).Italic(true),
	}
}

func typeColor(t pokemon.Type) lipgloss.Color {
	return lipgloss.Color(t.Color())
}

// badge renders a type as a colored pill; unselected badges are outlined
// in the type color instead of filled.
func badge(t pokemon.Type, filled bool) string {
	style := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	if filled {
		style = style.Foreground(GrayWhite).Background(typeColor(t))
	} else {
		style = style.Foreground(typeColor(t))
	}
	return style.Render(t.String())
}

func badges(types []pokemon.Type) string {
	parts := make([]string, 0, len(types))
	for _, t := range types {
		parts = append(parts, badge(t, true))
	}
	return strings.Join(parts, " ")
}

const maxBaseStat = 255

// statBar draws value out of maxBaseStat as a bar of width cells.
func statBar(value, width int, color lipgloss.Color) string {
	if width <= 0 {
		return ""
	}
	filled := value * width / maxBaseStat
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	rest := lipgloss.NewStyle().Foreground(GrayLight).Render(strings.Repeat("░", width-filled))
	return bar + rest
}

var titleCaser = cases.Title(language.English)

func displayName(name string) string {
	return titleCaser.String(name)
}

var statNames = map[string]string{
	"hp":              "HP",
	"attack":          "ATK",
	"defense":         "DEF",
	"special-attack":  "SATK",
	"special-defense": "SDEF",
	"speed":           "SPD",
}

func statName(name string) string {
	if short, ok := statNames[name]; ok {
		return short
	}
	return strings.ToUpper(name)
}
