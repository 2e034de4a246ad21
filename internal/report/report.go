// Package report renders human-readable views of a snapshot: a periodic
// summary, a z-level map and a detailed end-of-run report.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/san-kum/godsim/internal/biology"
	"github.com/san-kum/godsim/internal/civ"
	"github.com/san-kum/godsim/internal/director"
	"github.com/san-kum/godsim/internal/dynamo"
	"github.com/san-kum/godsim/internal/world"
)

// listed is how many civilizations a summary names before eliding the rest.
const listed = 3

// Printer writes reports to Out. Styling is applied only when Color is set.
type Printer struct {
	Out   io.Writer
	Color bool
}

func New(out io.Writer, color bool) *Printer {
	return &Printer{Out: out, Color: color}
}

func (p *Printer) style(s lipgloss.Style, text string) string {
	if !p.Color {
		return text
	}
	return s.Render(text)
}

func (p *Printer) field(label, format string, args ...any) string {
	return p.style(labelStyle, label+":") + " " + p.style(valueStyle, fmt.Sprintf(format, args...))
}

// Summary prints the periodic status block for one snapshot.
func (p *Printer) Summary(s *dynamo.State) {
	var b strings.Builder
	fmt.Fprintln(&b, p.style(titleStyle, fmt.Sprintf("========== TICK %d ==========", s.Tick)))

	civs := s.Civilizations
	fmt.Fprintln(&b, p.field("Civilizations", "%d", len(civs)))
	if len(civs) > 0 {
		sum := s.Summary()
		fmt.Fprintln(&b, "  "+p.field("Avg Tech Level", "%.2f", sum.AvgTech))
		fmt.Fprintln(&b, "  "+p.field("Total Civ Population", "%d", civ.TotalPopulation(civs)))
		for _, c := range civs[:min(listed, len(civs))] {
			fmt.Fprintf(&b, "  - %s at (%d,%d,%d) pop:%d tech:%.2f agg:%.2f spirit:%.2f\n",
				c.Name, c.X, c.Y, c.Z, c.Population, c.TechLevel, c.Aggression, c.Spirituality)
		}
		if len(civs) > listed {
			fmt.Fprintf(&b, "  ... and %d more\n", len(civs)-listed)
		}
	}

	fmt.Fprintln(&b, p.field("Populations", "%d (Total Biomass: %d)", len(s.Populations), biology.Biomass(s.Populations)))
	g := s.God
	fmt.Fprintln(&b, p.field("God State", "curiosity:%.2f benevolence:%.2f cruelty:%.2f boredom:%.2f",
		g.Curiosity, g.Benevolence, g.Cruelty, g.Boredom))
	fmt.Fprintln(&b, p.style(labelStyle, "Last God Action:")+" "+p.style(actionStyle, director.Describe(s.LastAction)))
	fmt.Fprintln(&b, p.field("Physics", "heat_diff:%.3f cooling:%.3f", s.Physics.HeatDiffusion, s.Physics.Cooling))
	fmt.Fprintln(&b, p.style(mutedStyle, "=============================="))

	io.WriteString(p.Out, b.String())
}

// SliceString renders level z with row y=height-1 first.
func SliceString(g *world.Grid, z int, color bool) (string, error) {
	if z < 0 || z >= g.D {
		return "", fmt.Errorf("invalid z level %d (depth %d)", z, g.D)
	}
	var b strings.Builder
	for y := g.H - 1; y >= 0; y-- {
		for x := 0; x < g.W; x++ {
			m := g.Get(x, y, z).Material
			glyph := string(Glyph(m))
			if color {
				glyph = lipgloss.NewStyle().Foreground(Palette[m.Kind]).Render(glyph)
			}
			b.WriteString(glyph)
		}
		b.WriteByte('\n')
	}
	return b.String(), nil
}

func (p *Printer) Slice(g *world.Grid, z int) error {
	body, err := SliceString(g, z, p.Color)
	if err != nil {
		return err
	}
	fmt.Fprintf(p.Out, "%s\n%s%s\n",
		p.style(titleStyle, fmt.Sprintf("--- World Slice at Z=%d ---", z)),
		body,
		p.style(mutedStyle, "----------------------------"))
	return nil
}

// Detailed prints the end-of-run report.
func (p *Printer) Detailed(s *dynamo.State) {
	var b strings.Builder
	g := s.Grid
	mean, _ := g.MeanTemperature()

	fmt.Fprintln(&b, p.style(titleStyle, "========== DETAILED REPORT =========="))
	fmt.Fprintln(&b, p.field("World", "%dx%dx%d", g.W, g.H, g.D))
	fmt.Fprintln(&b, p.field("Average Temperature", "%.2f°C", mean))
	fmt.Fprintln(&b, p.style(labelStyle, "Material Distribution:"))
	census := g.Census()
	for _, k := range world.Kinds {
		if n := census[k]; n > 0 {
			fmt.Fprintf(&b, "  %s: %d\n", k, n)
		}
	}

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, p.field("Species", "%d", len(s.Species)))
	if len(s.Species) > 0 {
		fmt.Fprintln(&b, p.speciesTable(s.Species))
	}

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, p.field("Civilizations", "%d", len(s.Civilizations)))
	if len(s.Civilizations) > 0 {
		fmt.Fprintln(&b, p.civTable(s.Civilizations))
	}
	fmt.Fprintln(&b, p.style(mutedStyle, "====================================="))

	io.WriteString(p.Out, b.String())
}

func (p *Printer) newTable(headers ...string) *table.Table {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
	if p.Color {
		t = t.BorderStyle(mutedStyle).StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return titleStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	}
	return t
}

func (p *Printer) speciesTable(species []biology.Species) string {
	t := p.newTable("ID", "METABOLISM", "REPRO", "MOBILITY", "PREF TEMP")
	for _, sp := range species {
		t.Row(
			fmt.Sprintf("#%d", sp.ID),
			fmt.Sprintf("%.2f", sp.Metabolism),
			fmt.Sprintf("%.3f", sp.ReproductionRate),
			fmt.Sprintf("%.2f", sp.Mobility),
			fmt.Sprintf("%.2f", sp.PreferredTemperature),
		)
	}
	return t.String()
}

func (p *Printer) civTable(civs []civ.Civilization) string {
	t := p.newTable("NAME", "POP", "TECH", "AGGRESSION", "SPIRITUALITY", "AT")
	for _, c := range civs {
		t.Row(
			c.Name,
			fmt.Sprintf("%d", c.Population),
			fmt.Sprintf("%.2f", c.TechLevel),
			fmt.Sprintf("%.2f", c.Aggression),
			fmt.Sprintf("%.2f", c.Spirituality),
			fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z),
		)
	}
	return t.String()
}
