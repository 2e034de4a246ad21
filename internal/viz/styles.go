package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	header lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	action lipgloss.Style
	help   lipgloss.Style
	panel  lipgloss.Style
	graph  lipgloss.Style
	high   lipgloss.Style
	mid    lipgloss.Style
	low    lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		header: lipgloss.NewStyle().Foreground(t.Secondary).Bold(true).MarginBottom(1),
		label:  lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		value:  lipgloss.NewStyle().Foreground(t.Text),
		action: lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		help:   lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1),
		panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(0, 2).
			Width(48),
		graph: lipgloss.NewStyle().Foreground(t.Secondary).Padding(1, 0),
		high:  lipgloss.NewStyle().Foreground(t.Error),
		mid:   lipgloss.NewStyle().Foreground(t.Warning),
		low:   lipgloss.NewStyle().Foreground(t.Success),
	}
}

// bar renders v in [0,1] as a fixed-width meter coloured by intensity.
func (s styles) bar(v float64, width int) string {
	filled := int(v * float64(width))
	filled = max(0, min(width, filled))
	b := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	switch {
	case v > 0.7:
		return s.high.Render(b)
	case v > 0.4:
		return s.mid.Render(b)
	}
	return s.low.Render(b)
}
