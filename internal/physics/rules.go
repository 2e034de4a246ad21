package physics

const (
	// Ambient is the temperature every voxel cools toward.
	Ambient = 20.0

	MaxHeatDiffusion = 1.0
	MaxCooling       = 0.1

	DefaultHeatDiffusion = 0.1
	DefaultCooling       = 0.02
)

// Rules are the process-wide physics parameters. Only the director changes
// them during a run.
type Rules struct {
	Gravity       bool    `yaml:"gravity"`
	HeatDiffusion float64 `yaml:"heat_diffusion_rate"`
	Cooling       float64 `yaml:"cooling_rate"`
}

func DefaultRules() Rules {
	return Rules{
		Gravity:       true,
		HeatDiffusion: DefaultHeatDiffusion,
		Cooling:       DefaultCooling,
	}
}

// Adjust adds the deltas, clamping diffusion to [0,1] and cooling to [0,0.1].
func (r *Rules) Adjust(heatDelta, coolingDelta float64) {
	r.HeatDiffusion = clamp(r.HeatDiffusion+heatDelta, 0, MaxHeatDiffusion)
	r.Cooling = clamp(r.Cooling+coolingDelta, 0, MaxCooling)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
