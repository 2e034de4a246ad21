package dynamo

import (
	"math/rand/v2"

	"github.com/san-kum/godsim/internal/biology"
	"github.com/san-kum/godsim/internal/civ"
	"github.com/san-kum/godsim/internal/director"
	"github.com/san-kum/godsim/internal/physics"
)

// Tick returns the snapshot that follows prev. prev is left untouched.
func Tick(prev *State, rng *rand.Rand) *State {
	s := prev.Clone()
	s.Tick++

	physics.Apply(s.Grid, s.Physics)
	s.Populations = biology.Step(s.Grid, s.Species, s.Populations, s.Ecology, rng)
	s.Civilizations = civ.Spawn(s.Populations, s.Civilizations, rng)
	s.Civilizations, s.Wars = civ.Step(s.Grid, s.Civilizations, rng)

	env := director.Env{
		Grid:          s.Grid,
		Rules:         &s.Physics,
		Populations:   s.Populations,
		Civilizations: s.Civilizations,
	}
	s.LastAction = director.Step(&s.God, &env, rng)
	s.Populations = env.Populations
	s.Civilizations = env.Civilizations
	return s
}
