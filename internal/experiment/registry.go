package experiment

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/san-kum/godsim/internal/config"
	"github.com/san-kum/godsim/internal/world"
)

// Generator builds the tick-zero grid for a world config.
type Generator func(w config.WorldConfig, seed uint64, rng *rand.Rand) *world.Grid

type Registry struct {
	generators map[string]Generator
}

func NewRegistry() *Registry {
	r := &Registry{
		generators: make(map[string]Generator),
	}

	r.generators[config.GeneratorLayered] = func(w config.WorldConfig, _ uint64, rng *rand.Rand) *world.Grid {
		return world.Generate(w.Width, w.Height, w.Depth, rng)
	}
	r.generators[config.GeneratorRolling] = func(w config.WorldConfig, seed uint64, rng *rand.Rand) *world.Grid {
		return world.GenerateRolling(w.Width, w.Height, w.Depth, int64(seed), w.Roughness, rng)
	}

	return r
}

// Register adds or replaces a named generator.
func (r *Registry) Register(name string, g Generator) { r.generators[name] = g }

// GetGenerator resolves name; the empty name means layered.
func (r *Registry) GetGenerator(name string) (Generator, error) {
	if name == "" {
		name = config.GeneratorLayered
	}
	fn, ok := r.generators[name]
	if !ok {
		return nil, fmt.Errorf("unknown generator: %s", name)
	}
	return fn, nil
}

func (r *Registry) ListGenerators() []string {
	names := make([]string, 0, len(r.generators))
	for name := range r.generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
