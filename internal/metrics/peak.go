package metrics

import (
	"github.com/san-kum/godsim/internal/dynamo"
	"github.com/san-kum/godsim/internal/sim"
)

// Peak tracks the largest value of a per-tick statistic.
type Peak struct {
	name  string
	value func(dynamo.Stats) float64
	peak  float64
	seen  bool
}

func NewPeak(name string, value func(dynamo.Stats) float64) *Peak {
	return &Peak{name: name, value: value}
}

func PeakBiomass() *Peak {
	return NewPeak("peak_biomass", func(s dynamo.Stats) float64 { return float64(s.Biomass) })
}

func PeakCivilizations() *Peak {
	return NewPeak("peak_civilizations", func(s dynamo.Stats) float64 { return float64(s.Civilizations) })
}

func PeakTech() *Peak {
	return NewPeak("peak_avg_tech", func(s dynamo.Stats) float64 { return s.AvgTech })
}

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(st *dynamo.State) {
	v := p.value(st.Stats())
	if !p.seen || v > p.peak {
		p.peak = v
		p.seen = true
	}
}

func (p *Peak) Value() float64 { return p.peak }

func (p *Peak) Reset() {
	p.peak = 0
	p.seen = false
}

// Wars counts every war fought over the observed ticks.
type Wars struct{ n int }

func NewWars() *Wars { return &Wars{} }

func (w *Wars) Name() string             { return "wars" }
func (w *Wars) Observe(st *dynamo.State) { w.n += len(st.Wars) }
func (w *Wars) Value() float64           { return float64(w.n) }
func (w *Wars) Reset()                   { w.n = 0 }

// Standard returns a fresh set of the metrics reported after every run.
func Standard() []sim.Metric {
	return []sim.Metric{
		PeakBiomass(),
		PeakCivilizations(),
		PeakTech(),
		NewWars(),
		NewMeanTemperature(),
		NewStability(0.5),
		NewInterventions(),
	}
}
