// Package civ spawns civilizations from large populations, evolves them and
// resolves wars between neighbours.
package civ

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/san-kum/godsim/internal/biology"
)

const (
	SpawnThreshold   = 500
	CollapseAt       = 50
	WarRange         = 10.0
	WarAggression    = 1.2
	WarChance        = 0.1
	WarTechBonus     = 0.1
	HarshBelow       = 10.0
	HarshAbove       = 30.0
	DriftMagnitude   = 0.01
	BaseTechProgress = 0.01
)

var (
	prefixes = [8]string{"Astra", "Terra", "Zeno", "Kryth", "Luma", "Vexis", "Orin", "Drak"}
	suffixes = [8]string{"nians", "ites", "oks", "ans", "ari", "oni", "ian", "eth"}
)

type Civilization struct {
	ID           uint32
	Name         string
	X, Y, Z      int
	Population   uint32
	TechLevel    float64
	Aggression   float64
	Spirituality float64
}

func New(id uint32, x, y, z int, population uint32, rng *rand.Rand) Civilization {
	return Civilization{
		ID:           id,
		Name:         Name(id, rng),
		X:            x,
		Y:            y,
		Z:            z,
		Population:   population,
		TechLevel:    1.0,
		Aggression:   rng.Float64(),
		Spirituality: rng.Float64(),
	}
}

func Name(id uint32, rng *rand.Rand) string {
	p := prefixes[rng.IntN(len(prefixes))]
	s := suffixes[rng.IntN(len(suffixes))]
	return fmt.Sprintf("%s%s #%d", p, s, id)
}

func (c Civilization) Distance(o Civilization) float64 {
	dx, dy, dz := float64(c.X-o.X), float64(c.Y-o.Y), float64(c.Z-o.Z)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Strength decides wars: higher wins.
func (c Civilization) Strength() float64 {
	return c.TechLevel + float64(c.Population)*0.001
}

// Spawn founds a civilization on every population of at least
// SpawnThreshold whose cell has none yet. Ids are the civilization count at
// founding time.
func Spawn(pops []biology.Population, civs []Civilization, rng *rand.Rand) []Civilization {
	for _, p := range pops {
		if p.Size < SpawnThreshold || occupied(civs, p.X, p.Y, p.Z) {
			continue
		}
		civs = append(civs, New(uint32(len(civs)), p.X, p.Y, p.Z, p.Size, rng))
	}
	return civs
}

func occupied(civs []Civilization, x, y, z int) bool {
	for _, c := range civs {
		if c.X == x && c.Y == y && c.Z == z {
			return true
		}
	}
	return false
}

// Find returns the first civilization with the given id.
func Find(civs []Civilization, id uint32) (*Civilization, bool) {
	for i := range civs {
		if civs[i].ID == id {
			return &civs[i], true
		}
	}
	return nil, false
}

func TotalPopulation(civs []Civilization) uint64 {
	var total uint64
	for _, c := range civs {
		total += uint64(c.Population)
	}
	return total
}
