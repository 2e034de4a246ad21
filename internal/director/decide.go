package director

import (
	"math"
	"math/rand/v2"

	"github.com/san-kum/godsim/internal/biology"
	"github.com/san-kum/godsim/internal/civ"
	"github.com/san-kum/godsim/internal/physics"
	"github.com/san-kum/godsim/internal/world"
)

// Env is the part of a simulation snapshot the director may change.
type Env struct {
	Grid          *world.Grid
	Rules         *physics.Rules
	Populations   []biology.Population
	Civilizations []civ.Civilization
}

// Choose walks the decision list; the first matching branch wins. One roll
// is shared by the cruelty, benevolence and curiosity branches.
func Choose(st State, s Summary, env *Env, rng *rand.Rand) Action {
	roll := rng.Float64()

	switch {
	case st.Boredom > 0.7 && len(env.Civilizations) > 0:
		if rng.Float64() < 0.5 {
			return BlessCivilization{CivID: pickCiv(env.Civilizations, rng), TechBoost: between(rng, 0.5, 2.0)}
		}
		return catastrophe(env.Grid, rng, 5, 20)
	case st.Cruelty > 0.6 && s.WarsOngoing > 1 && roll < 0.15:
		return catastrophe(env.Grid, rng, 10, 30)
	case st.Benevolence > 0.7 && len(env.Civilizations) > 0 && roll < 0.1:
		return BlessCivilization{CivID: pickCiv(env.Civilizations, rng), TechBoost: between(rng, 1.0, 3.0)}
	case st.Curiosity > 0.8 && roll < 0.05:
		return ChangePhysics{
			HeatDiffusionDelta: between(rng, -0.05, 0.05),
			CoolingDelta:       between(rng, -0.01, 0.01),
		}
	default:
		return NoAction{}
	}
}

// catastrophe targets the grid's x/y extent and the lower half of its depth.
func catastrophe(g *world.Grid, rng *rand.Rand, lo, hi float64) SpawnCatastrophe {
	return SpawnCatastrophe{
		X:         rng.IntN(g.W),
		Y:         rng.IntN(g.H),
		Z:         rng.IntN(max(1, g.D/2)),
		Intensity: between(rng, lo, hi),
	}
}

func pickCiv(civs []civ.Civilization, rng *rand.Rand) uint32 {
	return civs[rng.IntN(len(civs))].ID
}

func between(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

const (
	catastropheExtent = 3
	catastropheRadius = 5.0
)

// Apply mutates env according to a. env.Populations may be shortened.
func Apply(a Action, env *Env) {
	switch a := a.(type) {
	case ChangePhysics:
		env.Rules.Adjust(a.HeatDiffusionDelta, a.CoolingDelta)
	case SpawnCatastrophe:
		applyCatastrophe(a, env)
	case BlessCivilization:
		if c, ok := civ.Find(env.Civilizations, a.CivID); ok {
			c.TechLevel += a.TechBoost
			c.Population = uint32(math.Min(math.Floor(float64(c.Population)*1.2), math.MaxUint32))
		}
	case NoAction, nil:
	}
}

func applyCatastrophe(a SpawnCatastrophe, env *Env) {
	g := env.Grid
	for dz := 0; dz < catastropheExtent; dz++ {
		for dy := 0; dy < catastropheExtent; dy++ {
			for dx := 0; dx < catastropheExtent; dx++ {
				x, y, z := a.X+dx, a.Y+dy, a.Z+dz
				if g.Valid(x, y, z) {
					g.At(x, y, z).Temperature += a.Intensity
				}
			}
		}
	}

	loss := uint32(math.Floor(a.Intensity * 10))
	kept := env.Populations[:0]
	for _, p := range env.Populations {
		if p.Distance(a.X, a.Y, a.Z) < catastropheRadius {
			if loss >= p.Size {
				continue
			}
			p.Size -= loss
		}
		kept = append(kept, p)
	}
	env.Populations = kept
}

// Step summarises env, updates st, chooses an action and applies it.
func Step(st *State, env *Env, rng *rand.Rand) Action {
	s := Summarize(env.Grid, env.Populations, env.Civilizations)
	st.Feel(s)
	a := Choose(*st, s, env, rng)
	Apply(a, env)
	return a
}
