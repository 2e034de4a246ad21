// Package export renders world slices and statistics series as standalone
// SVG documents.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/godsim/internal/biology"
	"github.com/san-kum/godsim/internal/report"
	"github.com/san-kum/godsim/internal/world"
)

const background = "#0a0a0a"

func header(sb *strings.Builder, width, height float64) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)
}

// SliceToSVG draws level z with one square of side scale per voxel, coloured
// like the terminal slice, with y=height-1 at the top. Populations on the
// level are drawn as dots.
func SliceToSVG(g *world.Grid, z int, pops []biology.Population, scale float64) (string, error) {
	if z < 0 || z >= g.D {
		return "", fmt.Errorf("invalid z level %d (depth %d)", z, g.D)
	}
	if scale <= 0 {
		scale = 8
	}

	var sb strings.Builder
	header(&sb, float64(g.W)*scale, float64(g.H)*scale)

	sb.WriteString("<g shape-rendering=\"crispEdges\">\n")
	for y := g.H - 1; y >= 0; y-- {
		row := float64(g.H-1-y) * scale
		for x := 0; x < g.W; x++ {
			k := g.Get(x, y, z).Material.Kind
			fmt.Fprintf(&sb, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, float64(x)*scale, row, scale, scale, string(report.Palette[k]))
		}
	}
	sb.WriteString("</g>\n")

	sb.WriteString("<g fill=\"#00ff88\">\n")
	for _, p := range pops {
		if p.Z != z || !g.Valid(p.X, p.Y, p.Z) {
			continue
		}
		cx := float64(p.X)*scale + scale/2
		cy := float64(g.H-1-p.Y)*scale + scale/2
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, scale*0.35)
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String(), nil
}

// SeriesToSVG draws data as a polyline against the sample index, padded by
// a tenth of its range on each side.
func SeriesToSVG(data []float64, width, height int, strokeColor string) string {
	if len(data) < 2 {
		return ""
	}

	minY, maxY := data[0], data[0]
	for _, v := range data {
		minY = min(minY, v)
		maxY = max(maxY, v)
	}
	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	rangeY *= 1.2
	last := float64(len(data) - 1)

	var sb strings.Builder
	header(&sb, float64(width), float64(height))
	fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor)
	for i, v := range data {
		x := float64(i) / last * float64(width)
		y := float64(height) - (v-minY)/rangeY*float64(height)
		if i > 0 {
			sb.WriteString(" L")
		}
		fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
	}
	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
