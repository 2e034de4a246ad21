package config

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUnknownPreset = errors.New("config: unknown preset")

// Presets build fresh configs so callers may modify the result.
var Presets = map[string]func() *Config{
	"default": DefaultConfig,
	"tiny": func() *Config {
		cfg := DefaultConfig()
		cfg.World.Width, cfg.World.Height, cfg.World.Depth = 16, 16, 12
		cfg.Seeding = SeedingConfig{Species: 2, Auto: 4, AutoSize: 300}
		cfg.Run.Ticks = 100
		cfg.Run.ReportEvery = 10
		return cfg
	},
	"small": func() *Config {
		cfg := DefaultConfig()
		cfg.World.Width, cfg.World.Height, cfg.World.Depth = 32, 32, 16
		cfg.Seeding = SeedingConfig{Species: 3, Auto: 6, AutoSize: 200}
		cfg.Run.Ticks = 300
		cfg.Run.ReportEvery = 25
		return cfg
	},
	"archipelago": func() *Config {
		cfg := DefaultConfig()
		cfg.World.Width, cfg.World.Height, cfg.World.Depth = 96, 48, 20
		cfg.Physics.Cooling = 0.05
		cfg.Seeding = SeedingConfig{Species: 4, Auto: 12, AutoSize: 150}
		cfg.Ecology.CarryingCapacity = 5000
		return cfg
	},
	"rolling": func() *Config {
		cfg := DefaultConfig()
		cfg.World.Generator = GeneratorRolling
		cfg.World.Roughness = 2.0
		cfg.Seeding = SeedingConfig{Species: 3, Auto: 8, AutoSize: 120}
		return cfg
	},
}

func GetPreset(name string) (*Config, error) {
	fn, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return fn(), nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
