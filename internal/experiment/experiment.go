// Package experiment turns a config into a runnable world: it generates the
// grid, rolls species and the director's mood, seeds populations and wires
// a simulator over a fresh multiverse.
package experiment

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand/v2"

	"github.com/san-kum/godsim/internal/biology"
	"github.com/san-kum/godsim/internal/config"
	"github.com/san-kum/godsim/internal/director"
	"github.com/san-kum/godsim/internal/dynamo"
	"github.com/san-kum/godsim/internal/sim"
	"github.com/san-kum/godsim/internal/timeline"
	"github.com/san-kum/godsim/internal/world"
)

type Experiment struct {
	cfg        *config.Config
	registry   *Registry
	logger     *log.Logger
	simulator  *sim.Simulator
	multiverse *timeline.Multiverse
}

type Option func(*Experiment)

func WithLogger(l *log.Logger) Option {
	return func(e *Experiment) {
		if l != nil {
			e.logger = l
		}
	}
}

func WithRegistry(r *Registry) Option {
	return func(e *Experiment) { e.registry = r }
}

func New(cfg *config.Config, opts ...Option) *Experiment {
	e := &Experiment{
		cfg:      cfg,
		registry: NewRegistry(),
		logger:   log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Build returns the initial snapshot for seed. The same config and seed
// always produce the same world.
func (e *Experiment) Build(seed uint64) (*dynamo.State, error) {
	cfg := e.cfg
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	gen, err := e.registry.GetGenerator(cfg.World.Generator)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewPCG(seed, 0))
	grid := gen(cfg.World, seed, rng)

	species := make([]biology.Species, cfg.Seeding.Species)
	for i := range species {
		species[i] = biology.RandomSpecies(uint32(i), rng)
	}

	pops := cfg.Seeding.Populations
	if len(pops) == 0 && cfg.Seeding.Auto > 0 {
		pops = scatter(grid, cfg.Seeding, rng)
	}

	st, err := dynamo.NewState(dynamo.Setup{
		Grid:        grid,
		Physics:     cfg.Physics,
		Ecology:     cfg.Ecology,
		Species:     species,
		Populations: pops,
		God:         director.RandomState(rng),
	})
	if err != nil {
		return nil, fmt.Errorf("build world: %w", err)
	}
	return st, nil
}

// scatter places populations on the highest soil voxel of random columns,
// falling back to 60% depth where a column has no soil.
func scatter(g *world.Grid, s config.SeedingConfig, rng *rand.Rand) []biology.Population {
	size := s.AutoSize
	if size == 0 {
		size = 100
	}
	pops := make([]biology.Population, 0, s.Auto)
	for i := 0; i < s.Auto; i++ {
		x, y := rng.IntN(g.W), rng.IntN(g.H)
		z, ok := g.Highest(x, y, world.Soil)
		if !ok {
			z = g.D * 6 / 10
		}
		pops = append(pops, biology.Population{
			SpeciesID: uint32(i % s.Species),
			X:         x,
			Y:         y,
			Z:         z,
			Size:      size,
		})
	}
	return pops
}

// Setup builds the world for the configured seed and prepares a simulator
// with the given metrics and observers.
func (e *Experiment) Setup(metrics []sim.Metric, observers ...sim.Observer) error {
	st, err := e.Build(e.cfg.Run.Seed)
	if err != nil {
		return err
	}
	e.multiverse = timeline.New(st)
	e.simulator = sim.New(
		sim.WithLogger(e.logger),
		sim.WithMetrics(metrics...),
		sim.WithObservers(observers...),
	)
	e.logger.Printf("world ready: %dx%dx%d generator=%s species=%d populations=%d",
		st.Grid.W, st.Grid.H, st.Grid.D, e.cfg.World.Generator, len(st.Species), len(st.Populations))
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.simulator.Run(ctx, e.multiverse, e.SimConfig())
}

// SimConfig is the driver config derived from the run section.
func (e *Experiment) SimConfig() sim.Config {
	return sim.Config{
		Ticks:       e.cfg.Run.Ticks,
		Seed:        e.cfg.Run.Seed,
		ReportEvery: e.cfg.Run.ReportEvery,
	}
}

// Ensemble runs n copies of the configured world with consecutive seeds.
func (e *Experiment) Ensemble(ctx context.Context, n int, newMetrics func() []sim.Metric) ([]*sim.Result, error) {
	ens := sim.NewEnsemble(sim.New(sim.WithLogger(e.logger)), e.Build, n, e.cfg.Run.Seed)
	ens.NewMetrics = newMetrics
	return ens.Run(ctx, e.SimConfig())
}

func (e *Experiment) Config() *config.Config { return e.cfg }

// Multiverse is nil until Setup succeeds.
func (e *Experiment) Multiverse() *timeline.Multiverse { return e.multiverse }

func (e *Experiment) GetSimulator() *sim.Simulator { return e.simulator }
