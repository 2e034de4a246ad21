package civ

import (
	"math"
	"math/rand/v2"

	"github.com/san-kum/godsim/internal/world"
)

// War records one resolved conflict.
type War struct {
	Winner, Loser uint32
	Spoils        uint32
}

// Step updates every civilization, resolves conflicts and removes collapsed
// civilizations, in that order.
func Step(g *world.Grid, civs []Civilization, rng *rand.Rand) ([]Civilization, []War) {
	Update(g, civs, rng)
	wars := Conflict(civs, rng)
	return Collapse(civs), wars
}

func Update(g *world.Grid, civs []Civilization, rng *rand.Rand) {
	for i := range civs {
		c := &civs[i]
		c.TechLevel += BaseTechProgress + rng.Float64()*0.02

		if g.Valid(c.X, c.Y, c.Z) {
			t := g.Get(c.X, c.Y, c.Z).Temperature
			if t < HarshBelow || t > HarshAbove {
				c.Population -= uint32(float64(c.Population) * 0.05)
			} else {
				c.Population = addSat(c.Population, uint32(float64(c.Population)*0.02))
			}
		}

		c.Spirituality = drift(c.Spirituality, rng)
		c.Aggression = drift(c.Aggression, rng)
	}
}

func drift(v float64, rng *rand.Rand) float64 {
	v += (rng.Float64()*2 - 1) * DriftMagnitude
	return math.Max(0, math.Min(1, v))
}

// Conflict checks every unordered pair once, i before j.
func Conflict(civs []Civilization, rng *rand.Rand) []War {
	var wars []War
	for i := 0; i < len(civs); i++ {
		for j := i + 1; j < len(civs); j++ {
			if civs[i].Distance(civs[j]) >= WarRange {
				continue
			}
			if civs[i].Aggression+civs[j].Aggression <= WarAggression || rng.Float64() >= WarChance {
				continue
			}
			wars = append(wars, Resolve(&civs[i], &civs[j]))
		}
	}
	return wars
}

// Resolve fights a war between a and b. b wins ties.
func Resolve(a, b *Civilization) War {
	winner, loser := b, a
	if a.Strength() > b.Strength() {
		winner, loser = a, b
	}
	spoils := loser.Population / 3
	winner.Population = addSat(winner.Population, spoils)
	if 2*uint64(spoils) >= uint64(loser.Population) {
		loser.Population = 0
	} else {
		loser.Population -= 2 * spoils
	}
	winner.TechLevel += WarTechBonus
	return War{Winner: winner.ID, Loser: loser.ID, Spoils: spoils}
}

// Collapse drops civilizations at or below CollapseAt, in place.
func Collapse(civs []Civilization) []Civilization {
	kept := civs[:0]
	for _, c := range civs {
		if c.Population > CollapseAt {
			kept = append(kept, c)
		}
	}
	return kept
}

func addSat(a, b uint32) uint32 {
	if s := a + b; s >= a {
		return s
	}
	return math.MaxUint32
}
