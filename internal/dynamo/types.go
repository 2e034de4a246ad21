package dynamo

import (
	"fmt"
	"slices"

	"github.com/san-kum/godsim/internal/biology"
	"github.com/san-kum/godsim/internal/civ"
	"github.com/san-kum/godsim/internal/director"
	"github.com/san-kum/godsim/internal/physics"
	"github.com/san-kum/godsim/internal/world"
)

// State is one full snapshot of the simulation.
type State struct {
	Tick          int
	Grid          *world.Grid
	Physics       physics.Rules
	Ecology       biology.Params
	Species       []biology.Species
	Populations   []biology.Population
	Civilizations []civ.Civilization
	God           director.State

	// LastAction and Wars describe the tick that produced this snapshot.
	LastAction director.Action
	Wars       []civ.War
}

// Setup is everything needed to build the tick-zero snapshot.
type Setup struct {
	Grid        *world.Grid
	Physics     physics.Rules
	Ecology     biology.Params
	Species     []biology.Species
	Populations []biology.Population
	God         director.State
}

// NewState validates s and returns the initial snapshot. The returned state
// owns copies of the setup slices.
func NewState(s Setup) (*State, error) {
	g := s.Grid
	if g == nil {
		return nil, fmt.Errorf("%w: nil grid", ErrInvalidGrid)
	}
	if g.W <= 0 || g.H <= 0 || g.D <= 0 || g.Len() != g.W*g.H*g.D {
		return nil, fmt.Errorf("%w: %dx%dx%d", ErrInvalidGrid, g.W, g.H, g.D)
	}

	ids := make(map[uint32]bool, len(s.Species))
	for _, sp := range s.Species {
		if ids[sp.ID] {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateSpecies, sp.ID)
		}
		ids[sp.ID] = true
	}
	for i, p := range s.Populations {
		switch {
		case !ids[p.SpeciesID]:
			return nil, &SeedError{Index: i, Population: p, Wrapped: ErrUnknownSpecies}
		case !g.Valid(p.X, p.Y, p.Z):
			return nil, &SeedError{Index: i, Population: p, Wrapped: ErrOutOfBounds}
		}
	}

	return &State{
		Grid:        g.Clone(),
		Physics:     s.Physics,
		Ecology:     s.Ecology,
		Species:     slices.Clone(s.Species),
		Populations: slices.Clone(s.Populations),
		God:         s.God,
		LastAction:  director.NoAction{},
	}, nil
}

// Clone returns a deep copy sharing no mutable storage with s.
func (s *State) Clone() *State {
	c := *s
	c.Grid = s.Grid.Clone()
	c.Species = slices.Clone(s.Species)
	c.Populations = slices.Clone(s.Populations)
	c.Civilizations = slices.Clone(s.Civilizations)
	c.Wars = slices.Clone(s.Wars)
	return &c
}

// Summary is the director's view of s.
func (s *State) Summary() director.Summary {
	return director.Summarize(s.Grid, s.Populations, s.Civilizations)
}

// Stats is the flat per-tick record written to run files and plotted.
type Stats struct {
	Tick             int     `json:"tick"`
	Civilizations    int     `json:"civilizations"`
	Populations      int     `json:"populations"`
	Biomass          uint64  `json:"biomass"`
	AvgTech          float64 `json:"avg_tech"`
	MeanTemperature  float64 `json:"mean_temperature"`
	ClimateStability float64 `json:"climate_stability"`
	Action           string  `json:"action"`
}

func (s *State) Stats() Stats {
	sum := s.Summary()
	mean, _ := s.Grid.MeanTemperature()
	return Stats{
		Tick:             s.Tick,
		Civilizations:    sum.Civilizations,
		Populations:      len(s.Populations),
		Biomass:          sum.Biomass,
		AvgTech:          sum.AvgTech,
		MeanTemperature:  mean,
		ClimateStability: sum.ClimateStability,
		Action:           director.Describe(s.LastAction),
	}
}
