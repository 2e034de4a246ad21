package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/godsim/internal/biology"
	"github.com/san-kum/godsim/internal/physics"
)

const (
	DefaultWidth       = 64
	DefaultHeight      = 64
	DefaultDepth       = 32
	DefaultTicks       = 1000
	DefaultReportEvery = 50
	DefaultSpecies     = 3
	DefaultSeeds       = 5
	DefaultRoughness   = 1.0
	DefaultDataDir     = ".godsim"

	GeneratorLayered = "layered"
	GeneratorRolling = "rolling"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	World   WorldConfig    `yaml:"world"`
	Physics physics.Rules  `yaml:"physics"`
	Ecology biology.Params `yaml:"ecology"`
	Seeding SeedingConfig  `yaml:"seeding"`
	Run     RunConfig      `yaml:"run"`
}

type WorldConfig struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	Depth     int     `yaml:"depth"`
	Generator string  `yaml:"generator"`
	Roughness float64 `yaml:"roughness"`
}

// SeedingConfig lists the initial populations. When Populations is empty,
// Auto populations of AutoSize are scattered over the soil layer instead.
type SeedingConfig struct {
	Species     int                  `yaml:"species"`
	Populations []biology.Population `yaml:"populations,omitempty"`
	Auto        int                  `yaml:"auto,omitempty"`
	AutoSize    uint32               `yaml:"auto_size,omitempty"`
}

type RunConfig struct {
	Ticks       int    `yaml:"ticks"`
	Seed        uint64 `yaml:"seed"`
	ReportEvery int    `yaml:"report_every"`
	// SliceZ is the level printed by reports; negative means depth/2.
	SliceZ  int    `yaml:"slice_z"`
	DataDir string `yaml:"data_dir"`
}

// LinePopulations places n populations along a diagonal at 60% depth, the
// layout of the stock world.
func LinePopulations(n, species, depth int) []biology.Population {
	pops := make([]biology.Population, 0, n)
	for i := 0; i < n; i++ {
		pops = append(pops, biology.Population{
			SpeciesID: uint32(i % max(1, species)),
			X:         10 + i*10,
			Y:         10 + i*8,
			Z:         depth * 6 / 10,
			Size:      uint32(50 + i*20),
		})
	}
	return pops
}

func DefaultConfig() *Config {
	return &Config{
		World: WorldConfig{
			Width:     DefaultWidth,
			Height:    DefaultHeight,
			Depth:     DefaultDepth,
			Generator: GeneratorLayered,
			Roughness: DefaultRoughness,
		},
		Physics: physics.DefaultRules(),
		Ecology: biology.DefaultParams(),
		Seeding: SeedingConfig{
			Species:     DefaultSpecies,
			Populations: LinePopulations(DefaultSeeds, DefaultSpecies, DefaultDepth),
		},
		Run: RunConfig{
			Ticks:       DefaultTicks,
			ReportEvery: DefaultReportEvery,
			SliceZ:      -1,
			DataDir:     DefaultDataDir,
		},
	}
}

// Load reads a config file over the defaults.
func Load(path string) (*Config, error) {
	return LoadOnto(path, DefaultConfig())
}

// LoadOnto reads a config file over a copy of base. Seed populations are
// only taken from the file: when it lists none, base's line of seeds is
// rebuilt for the loaded world, or scattered if the line no longer fits.
func LoadOnto(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	cfg.Seeding.Populations = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Seeding.Populations == nil && cfg.Seeding.Auto == 0 {
		cfg.Seeding.reseed(len(base.Seeding.Populations), cfg.World)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

func (s *SeedingConfig) reseed(n int, w WorldConfig) {
	if n == 0 || s.Species <= 0 {
		return
	}
	pops := LinePopulations(n, s.Species, w.Depth)
	for _, p := range pops {
		if p.X >= w.Width || p.Y >= w.Height {
			s.Auto = n
			return
		}
	}
	s.Populations = pops
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Slice returns the z level reports should print.
func (c *Config) Slice() int {
	if c.Run.SliceZ < 0 {
		return c.World.Depth / 2
	}
	return c.Run.SliceZ
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

func (c *Config) Validate() error {
	w := c.World
	if w.Width <= 0 || w.Height <= 0 || w.Depth <= 0 {
		return invalid("world dimensions must be positive, got %dx%dx%d", w.Width, w.Height, w.Depth)
	}
	switch w.Generator {
	case "", GeneratorLayered, GeneratorRolling:
	default:
		return invalid("unknown generator %q", w.Generator)
	}
	if w.Roughness < 0 {
		return invalid("roughness must be non-negative, got %f", w.Roughness)
	}

	p := c.Physics
	if p.HeatDiffusion < 0 || p.HeatDiffusion > physics.MaxHeatDiffusion {
		return invalid("heat_diffusion_rate %f outside [0,%g]", p.HeatDiffusion, physics.MaxHeatDiffusion)
	}
	if p.Cooling < 0 || p.Cooling > physics.MaxCooling {
		return invalid("cooling_rate %f outside [0,%g]", p.Cooling, physics.MaxCooling)
	}

	s := c.Seeding
	if s.Species < 0 || s.Auto < 0 {
		return invalid("seeding counts must be non-negative")
	}
	if s.Species == 0 && (len(s.Populations) > 0 || s.Auto > 0) {
		return invalid("populations seeded without species")
	}
	for i, pop := range s.Populations {
		if int(pop.SpeciesID) >= s.Species {
			return invalid("population %d: species %d not in [0,%d)", i, pop.SpeciesID, s.Species)
		}
		if pop.X < 0 || pop.X >= w.Width || pop.Y < 0 || pop.Y >= w.Height || pop.Z < 0 || pop.Z >= w.Depth {
			return invalid("population %d: (%d,%d,%d) outside %dx%dx%d world", i, pop.X, pop.Y, pop.Z, w.Width, w.Height, w.Depth)
		}
	}

	r := c.Run
	if r.Ticks < 0 {
		return invalid("ticks must be non-negative, got %d", r.Ticks)
	}
	if r.ReportEvery < 0 {
		return invalid("report_every must be non-negative, got %d", r.ReportEvery)
	}
	if r.SliceZ >= w.Depth {
		return invalid("slice_z %d outside depth %d", r.SliceZ, w.Depth)
	}
	return nil
}
