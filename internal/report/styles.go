package report

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/godsim/internal/world"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ffff"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	actionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff00ff"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666688"))
)

// Palette colours each material kind in coloured slices.
var Palette = map[world.Kind]lipgloss.Color{
	world.Air:     lipgloss.Color("#333344"),
	world.Rock:    lipgloss.Color("#888888"),
	world.Soil:    lipgloss.Color("#aa7744"),
	world.Water:   lipgloss.Color("#0077be"),
	world.Lava:    lipgloss.Color("#ff4400"),
	world.Ice:     lipgloss.Color("#ccf0ff"),
	world.Organic: lipgloss.Color("#00ff88"),
}

// Glyph is the slice character for a material.
func Glyph(m world.Material) rune {
	switch m.Kind {
	case world.Air:
		return '.'
	case world.Rock:
		return '#'
	case world.Soil:
		return ':'
	case world.Water:
		return '~'
	case world.Lava:
		return '*'
	case world.Ice:
		return 'i'
	case world.Organic:
		return 'o'
	}
	return '?'
}
