package director

import (
	"math"
	"math/rand/v2"

	"github.com/san-kum/godsim/internal/biology"
	"github.com/san-kum/godsim/internal/civ"
	"github.com/san-kum/godsim/internal/world"
)

// State is the director's emotional vector, each field in [0,1].
type State struct {
	Curiosity   float64 `yaml:"curiosity"`
	Benevolence float64 `yaml:"benevolence"`
	Cruelty     float64 `yaml:"cruelty"`
	Boredom     float64 `yaml:"boredom"`
}

func RandomState(rng *rand.Rand) State {
	return State{
		Curiosity:   0.3 + rng.Float64()*0.5,
		Benevolence: 0.4 + rng.Float64()*0.3,
		Cruelty:     0.1 + rng.Float64()*0.3,
	}
}

// Summary is recomputed every step and never stored.
type Summary struct {
	Civilizations    int
	AvgTech          float64
	Biomass          uint64
	WarsOngoing      int
	ClimateStability float64
}

const (
	tenseRange      = 10.0
	tenseAggression = 0.6
)

func Summarize(g *world.Grid, pops []biology.Population, civs []civ.Civilization) Summary {
	s := Summary{
		Civilizations: len(civs),
		Biomass:       biology.Biomass(pops),
	}
	if len(civs) > 0 {
		for _, c := range civs {
			s.AvgTech += c.TechLevel
		}
		s.AvgTech /= float64(len(civs))
	}
	for i := range civs {
		for j := i + 1; j < len(civs); j++ {
			if civs[i].Distance(civs[j]) < tenseRange &&
				civs[i].Aggression > tenseAggression && civs[j].Aggression > tenseAggression {
				s.WarsOngoing++
			}
		}
	}
	_, variance := g.MeanTemperature()
	s.ClimateStability = 1 / (1 + variance/100)
	return s
}

// Feel updates the emotions from the summary and clamps all four.
func (st *State) Feel(s Summary) {
	if s.Civilizations == 0 {
		st.Boredom += 0.1
		st.Benevolence += 0.05
	} else {
		st.Boredom = math.Max(0, st.Boredom-0.02)
	}
	if s.WarsOngoing > 2 {
		st.Curiosity += 0.03
	}
	if s.Biomass < 100 {
		st.Benevolence += 0.02
	}

	st.Curiosity = clamp01(st.Curiosity)
	st.Benevolence = clamp01(st.Benevolence)
	st.Cruelty = clamp01(st.Cruelty)
	st.Boredom = clamp01(st.Boredom)
}

func clamp01(v float64) float64 { return math.Max(0, math.Min(1, v)) }
