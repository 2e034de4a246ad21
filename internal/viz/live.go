package viz

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/godsim/internal/biology"
	"github.com/san-kum/godsim/internal/director"
	"github.com/san-kum/godsim/internal/dynamo"
	"github.com/san-kum/godsim/internal/report"
	"github.com/san-kum/godsim/internal/timeline"
)

const (
	mapWidth    = 32
	mapHeight   = 8
	chartWindow = 120
	defaultFPS  = 10
)

type TickMsg time.Time

// Model is the live viewer. The multiverse is shared, so copies of Model
// observe the same history.
type Model struct {
	mv       *timeline.Multiverse
	rng      *rand.Rand
	z        int
	fps      int
	running  bool
	showHelp bool
	color    bool
	theme    Theme
	canvas   *Canvas
}

// NewModel starts a running viewer over mv showing slice level z.
func NewModel(mv *timeline.Multiverse, rng *rand.Rand, z, fps int) Model {
	if fps <= 0 {
		fps = defaultFPS
	}
	d := mv.Current().Grid.D
	return Model{
		mv:      mv,
		rng:     rng,
		z:       max(0, min(d-1, z)),
		fps:     fps,
		running: true,
		color:   true,
		theme:   ThemeEarth,
		canvas:  NewCanvas(mapWidth, mapHeight),
	}
}

// WithColor toggles ANSI colouring of the slice map.
func (m Model) WithColor(on bool) Model {
	m.color = on
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the world.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "n":
			m.running = false
			m.step()
		case "[":
			m.running = false
			m.mv.Rewind(1)
		case "]":
			m.running = false
			m.mv.Forward(1)
		case "+", "=", "up":
			m.z = min(m.z+1, m.mv.Current().Grid.D-1)
		case "-", "_", "down":
			m.z = max(m.z-1, 0)
		case "t":
			m.theme = m.theme.Next()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

// step replays the next stored tick when scrubbed back, otherwise it
// simulates a new one.
func (m *Model) step() {
	if m.mv.AtEnd() {
		m.mv.Advance(m.rng)
		return
	}
	m.mv.Forward(1)
}

func (m Model) status() string {
	switch {
	case !m.mv.AtEnd() && m.running:
		return fmt.Sprintf("REPLAYING (%d behind)", m.mv.Len()-1-m.mv.Tick())
	case !m.mv.AtEnd():
		return fmt.Sprintf("REPLAY PAUSED (%d behind)", m.mv.Len()-1-m.mv.Tick())
	case !m.running:
		return "PAUSED"
	}
	return "RUNNING"
}

// biomassSeries is the biomass of up to chartWindow stored ticks ending at
// the cursor.
func (m Model) biomassSeries() []float64 {
	end := m.mv.Tick()
	start := max(0, end-chartWindow+1)
	out := make([]float64, 0, end-start+1)
	for i := start; i <= end; i++ {
		s, err := m.mv.At(i)
		if err != nil {
			break
		}
		out = append(out, float64(biology.Biomass(s.Populations)))
	}
	return out
}

func (m Model) drawPopulations(s *dynamo.State) string {
	m.canvas.Clear()
	for _, p := range s.Populations {
		m.canvas.Plot(p.X, p.Y, s.Grid.W, s.Grid.H)
	}
	return m.canvas.String()
}

// View renders the TUI interface.
func (m Model) View() string {
	st := newStyles(m.theme)
	s := m.mv.Current()
	stats := s.Stats()

	slice, _ := report.SliceString(s.Grid, m.z, m.color)
	left := st.header.Render(fmt.Sprintf("Z=%d", m.z)) + "\n" + slice +
		"\n" + st.header.Render("POPULATIONS") + "\n" + m.drawPopulations(s)

	var b strings.Builder
	b.WriteString(st.header.Render(fmt.Sprintf("TICK %d / %d", s.Tick, m.mv.Len()-1)) + "\n")
	b.WriteString(m.status() + "\n\n")

	if series := m.biomassSeries(); len(series) > 1 {
		chart := asciigraph.Plot(series, asciigraph.Height(5), asciigraph.Width(36), asciigraph.Caption("Biomass"))
		b.WriteString(st.graph.Render(chart) + "\n")
	}

	row := func(label, value string) {
		b.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Civs", fmt.Sprintf("%d (avg tech %.2f)", stats.Civilizations, stats.AvgTech))
	row("Pops", fmt.Sprintf("%d", stats.Populations))
	row("Biomass", fmt.Sprintf("%d", stats.Biomass))
	row("Temp", fmt.Sprintf("%.2f°C", stats.MeanTemperature))
	row("Climate", fmt.Sprintf("%.3f", stats.ClimateStability))
	row("Physics", fmt.Sprintf("diff %.3f cool %.3f", s.Physics.HeatDiffusion, s.Physics.Cooling))

	b.WriteString("\nGOD\n")
	mood := s.God
	for _, e := range []struct {
		name string
		v    float64
	}{
		{"curiosity", mood.Curiosity},
		{"benevolence", mood.Benevolence},
		{"cruelty", mood.Cruelty},
		{"boredom", mood.Boredom},
	} {
		b.WriteString(st.label.Render(e.name) + st.bar(e.v, 16) + fmt.Sprintf(" %.2f\n", e.v))
	}
	b.WriteString(st.label.Render("action") + st.action.Render(director.Describe(s.LastAction)) + "\n")

	b.WriteString(st.help.Render("SP:Pause N:Step Q:Quit\n[ ]:Scrub +-:Level T:Theme ?:Help"))

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, st.panel.Render(b.String()))
	if m.showHelp {
		return helpText + "\n" + body
	}
	return body
}

const helpText = `
  Space  Pause/Resume
  N      Single step
  [      Rewind one tick
  ]      Forward one tick
  + / -  Slice level up / down
  T      Cycle themes
  ?      Toggle this help
  Q      Quit
`
