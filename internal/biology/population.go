package biology

import (
	"math"
	"math/rand/v2"

	"github.com/san-kum/godsim/internal/world"
)

const (
	HostileLoss        = 5
	MigrationThreshold = 10
	TerraformThreshold = 100
)

var directions = [6][3]int{
	{-1, 0, 0}, {1, 0, 0},
	{0, -1, 0}, {0, 1, 0},
	{0, 0, -1}, {0, 0, 1},
}

// Population refers to its species by id only.
type Population struct {
	SpeciesID uint32 `yaml:"species"`
	X         int    `yaml:"x"`
	Y         int    `yaml:"y"`
	Z         int    `yaml:"z"`
	Size      uint32 `yaml:"size"`
}

func (p Population) Distance(x, y, z int) float64 {
	dx, dy, dz := float64(p.X-x), float64(p.Y-y), float64(p.Z-z)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Params selects the population-step variant.
type Params struct {
	MergeSameCell bool `yaml:"merge_same_cell"`
	// CarryingCapacity throttles records above it by a tenth of the excess
	// before growth. Zero disables the throttle.
	CarryingCapacity uint32 `yaml:"carrying_capacity"`
}

func DefaultParams() Params {
	return Params{MergeSameCell: true}
}

type cellKey struct {
	x, y, z int
	species uint32
}

// Merge sums records sharing a cell and species into the first one seen.
func Merge(pops []Population) []Population {
	seen := make(map[cellKey]int, len(pops))
	out := make([]Population, 0, len(pops))
	for _, p := range pops {
		k := cellKey{p.X, p.Y, p.Z, p.SpeciesID}
		if i, ok := seen[k]; ok {
			out[i].Size = addSat(out[i].Size, p.Size)
			continue
		}
		seen[k] = len(out)
		out = append(out, p)
	}
	return out
}

// Step advances every population by one tick and returns the surviving
// records followed by this tick's migrants. Migrants are buffered and never
// take part in the pass that created them. The backing array of pops is
// reused.
func Step(g *world.Grid, species []Species, pops []Population, p Params, rng *rand.Rand) []Population {
	if p.MergeSameCell {
		pops = Merge(pops)
	}
	lookup := index(species)

	var migrants []Population
	kept := pops[:0]
	for _, pop := range pops {
		sp, ok := lookup[pop.SpeciesID]
		if !ok || !g.Valid(pop.X, pop.Y, pop.Z) {
			continue
		}
		if m, ok := stepOne(g, sp, &pop, p, rng); ok {
			migrants = append(migrants, m)
		}
		if pop.Size > 0 {
			kept = append(kept, pop)
		}
	}
	return append(kept, migrants...)
}

func stepOne(g *world.Grid, sp *Species, pop *Population, p Params, rng *rand.Rand) (Population, bool) {
	voxel := g.At(pop.X, pop.Y, pop.Z)
	if !voxel.Material.Habitable() {
		pop.Size = subSat(pop.Size, HostileLoss)
		return Population{}, false
	}

	factor := TemperatureFactor(math.Abs(voxel.Temperature - sp.PreferredTemperature))

	if limit := p.CarryingCapacity; limit > 0 && pop.Size > limit {
		pop.Size -= (pop.Size - limit) / 10
	}

	growth := math.Floor(float64(pop.Size) * sp.ReproductionRate * factor)
	pop.Size = addSat(pop.Size, toCount(growth))

	cost := math.Floor(float64(pop.Size) * sp.Metabolism * 0.01)
	pop.Size = subSat(pop.Size, toCount(cost))

	var migrant Population
	moved := false
	if rng.Float64() < sp.Mobility*0.1 {
		d := directions[rng.IntN(len(directions))]
		nx, ny, nz := pop.X+d[0], pop.Y+d[1], pop.Z+d[2]
		if g.Valid(nx, ny, nz) {
			moving := pop.Size / 2
			if moving > MigrationThreshold {
				pop.Size -= moving
				migrant = Population{SpeciesID: pop.SpeciesID, X: nx, Y: ny, Z: nz, Size: moving}
				moved = true
			}
		}
	}

	if pop.Size > TerraformThreshold {
		voxel.Material = world.OrganicMaterial(uint8(min(255, pop.Size/100)))
	}
	return migrant, moved
}

func toCount(f float64) uint32 {
	if f <= 0 {
		return 0
	}
	if f >= math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(f)
}

func addSat(a, b uint32) uint32 {
	if s := a + b; s >= a {
		return s
	}
	return math.MaxUint32
}

func subSat(a, b uint32) uint32 {
	if b >= a {
		return 0
	}
	return a - b
}

// Biomass is the sum of all population sizes.
func Biomass(pops []Population) uint64 {
	var total uint64
	for _, p := range pops {
		total += uint64(p.Size)
	}
	return total
}
