package biology

import "math/rand/v2"

// Species is immutable once created.
type Species struct {
	ID                   uint32  `yaml:"id"`
	Metabolism           float64 `yaml:"metabolism"`
	ReproductionRate     float64 `yaml:"reproduction_rate"`
	Mobility             float64 `yaml:"mobility"`
	PreferredTemperature float64 `yaml:"preferred_temperature"`
}

// RandomSpecies rolls metabolism in [0.5,2), reproduction in [0.01,0.1),
// mobility in [0.1,1) and preferred temperature in [15,25).
func RandomSpecies(id uint32, rng *rand.Rand) Species {
	return Species{
		ID:                   id,
		Metabolism:           between(rng, 0.5, 2.0),
		ReproductionRate:     between(rng, 0.01, 0.1),
		Mobility:             between(rng, 0.1, 1.0),
		PreferredTemperature: between(rng, 15.0, 25.0),
	}
}

// TemperatureFactor scales growth by distance from the preferred temperature.
func TemperatureFactor(distance float64) float64 {
	switch {
	case distance < 5:
		return 1.2
	case distance < 10:
		return 1.0
	default:
		return 0.8
	}
}

func between(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func index(species []Species) map[uint32]*Species {
	m := make(map[uint32]*Species, len(species))
	for i := range species {
		if _, ok := m[species[i].ID]; !ok {
			m[species[i].ID] = &species[i]
		}
	}
	return m
}
