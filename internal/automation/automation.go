// Package automation runs scripted batches of worlds: YAML scenarios of
// independent runs, and sweeps of one tunable parameter across a range.
package automation

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"slices"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/godsim/internal/config"
	"github.com/san-kum/godsim/internal/experiment"
	"github.com/san-kum/godsim/internal/sim"
	"github.com/san-kum/godsim/internal/storage"
)

// Params are the config knobs scenarios and sweeps may set by name. Range
// checks beyond what a setter can represent are left to config.Validate.
var Params = map[string]func(*config.Config, float64) error{
	"heat_diffusion_rate": func(c *config.Config, v float64) error { c.Physics.HeatDiffusion = v; return nil },
	"cooling_rate":        func(c *config.Config, v float64) error { c.Physics.Cooling = v; return nil },
	"carrying_capacity": func(c *config.Config, v float64) error {
		if v < 0 || v > math.MaxUint32 {
			return fmt.Errorf("carrying_capacity %g outside [0,%d]", v, uint32(math.MaxUint32))
		}
		c.Ecology.CarryingCapacity = uint32(v)
		return nil
	},
	"roughness": func(c *config.Config, v float64) error { c.World.Roughness = v; return nil },
}

func ParamNames() []string {
	names := make([]string, 0, len(Params))
	for name := range Params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply sets each named parameter on cfg.
func Apply(cfg *config.Config, set map[string]float64) error {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fn, ok := Params[k]
		if !ok {
			return fmt.Errorf("unknown parameter %q (available: %v)", k, ParamNames())
		}
		if err := fn(cfg, set[k]); err != nil {
			return err
		}
	}
	return nil
}

// Scenario defines a scripted sequence of runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one run. Preset and Config are mutually exclusive; with
// neither the default world is used. Zero Ticks keeps the config's value.
type ScenarioStep struct {
	Name   string             `yaml:"name"`
	Preset string             `yaml:"preset"`
	Config string             `yaml:"config"`
	Seed   uint64             `yaml:"seed"`
	Ticks  int                `yaml:"ticks"`
	Set    map[string]float64 `yaml:"set"`
	Save   bool               `yaml:"save"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	return &scenario, nil
}

// StepResult pairs a finished step with its outcome. RunID is set when the
// step was saved.
type StepResult struct {
	Name   string
	Seed   uint64
	RunID  string
	Result *sim.Result
}

type Runner struct {
	logger *log.Logger
	// Store receives steps marked save; nil disables saving.
	Store *storage.Store
	// NewMetrics builds a fresh metric set for every run.
	NewMetrics func() []sim.Metric
}

func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Runner{logger: logger}
}

func (r *Runner) metrics() []sim.Metric {
	if r.NewMetrics == nil {
		return nil
	}
	return r.NewMetrics()
}

func (st ScenarioStep) config() (*config.Config, string, error) {
	var (
		cfg  *config.Config
		name = "default"
		err  error
	)
	switch {
	case st.Preset != "" && st.Config != "":
		return nil, "", fmt.Errorf("preset and config are mutually exclusive")
	case st.Preset != "":
		cfg, err = config.GetPreset(st.Preset)
		name = st.Preset
	case st.Config != "":
		cfg, err = config.Load(st.Config)
		name = "custom"
	default:
		cfg = config.DefaultConfig()
	}
	if err != nil {
		return nil, "", err
	}

	cfg.Run.Seed = st.Seed
	if st.Ticks > 0 {
		cfg.Run.Ticks = st.Ticks
	}
	if err := Apply(cfg, st.Set); err != nil {
		return nil, "", err
	}
	return cfg, name, cfg.Validate()
}

// RunScenario executes the steps in order and stops at the first failure,
// returning the results gathered so far.
func (r *Runner) RunScenario(ctx context.Context, sc *Scenario) ([]StepResult, error) {
	results := make([]StepResult, 0, len(sc.Steps))

	for i, step := range sc.Steps {
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("step-%d", i+1)
		}
		r.logger.Printf("scenario %s: running %s (%d/%d)", sc.Name, name, i+1, len(sc.Steps))

		cfg, preset, err := step.config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		exp := experiment.New(cfg, experiment.WithLogger(r.logger))
		if err := exp.Setup(r.metrics()); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}
		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Name: name, Seed: cfg.Run.Seed, Result: result}
		if step.Save && r.Store != nil {
			sr.RunID, err = r.Store.Save(storage.RunMetadata{
				Preset:    preset,
				Seed:      cfg.Run.Seed,
				Ticks:     result.TicksRun,
				Width:     cfg.World.Width,
				Height:    cfg.World.Height,
				Depth:     cfg.World.Depth,
				Generator: cfg.World.Generator,
				Metrics:   result.Metrics,
			}, result.Stats)
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}
		results = append(results, sr)
	}
	return results, nil
}

// Sweep varies one parameter linearly from Min to Max over Steps values.
// Each value runs Seeds worlds in parallel, starting at the base config's
// seed.
type Sweep struct {
	Base  *config.Config
	Param string
	Min   float64
	Max   float64
	Steps int
	Seeds int
}

// SweepPoint holds the metrics of one parameter value, averaged over seeds.
type SweepPoint struct {
	Value   float64
	Metrics map[string]float64
}

func (sw *Sweep) values() []float64 {
	if sw.Steps == 1 {
		return []float64{sw.Min}
	}
	out := make([]float64, sw.Steps)
	step := (sw.Max - sw.Min) / float64(sw.Steps-1)
	for i := range out {
		out[i] = sw.Min + float64(i)*step
	}
	return out
}

func (r *Runner) RunSweep(ctx context.Context, sw *Sweep) ([]SweepPoint, error) {
	set, ok := Params[sw.Param]
	if !ok {
		return nil, fmt.Errorf("unknown parameter %q (available: %v)", sw.Param, ParamNames())
	}
	if sw.Steps <= 0 || sw.Seeds <= 0 {
		return nil, fmt.Errorf("sweep needs positive steps and seeds")
	}

	// Every value is checked before the first run starts.
	values := sw.values()
	cfgs := make([]config.Config, len(values))
	for i, v := range values {
		cfgs[i] = *sw.Base
		if err := set(&cfgs[i], v); err != nil {
			return nil, fmt.Errorf("%s=%g: %w", sw.Param, v, err)
		}
		if err := cfgs[i].Validate(); err != nil {
			return nil, fmt.Errorf("%s=%g: %w", sw.Param, v, err)
		}
	}

	points := make([]SweepPoint, 0, len(values))
	for i, v := range values {
		exp := experiment.New(&cfgs[i], experiment.WithLogger(r.logger))
		results, err := exp.Ensemble(ctx, sw.Seeds, r.metrics)
		if err != nil {
			return points, fmt.Errorf("%s=%g: %w", sw.Param, v, err)
		}
		points = append(points, SweepPoint{Value: v, Metrics: meanMetrics(results)})
		r.logger.Printf("sweep %d/%d: %s=%.4f", i+1, sw.Steps, sw.Param, v)
	}
	return points, nil
}

func meanMetrics(results []*sim.Result) map[string]float64 {
	out := make(map[string]float64)
	for _, res := range results {
		for k, v := range res.Metrics {
			out[k] += v / float64(len(results))
		}
	}
	return out
}

// Best returns the point with the highest (or lowest) value of metric.
// Earlier points win ties.
func Best(points []SweepPoint, metric string, maximize bool) (SweepPoint, bool) {
	if len(points) == 0 {
		return SweepPoint{}, false
	}
	cmp := func(a, b SweepPoint) int {
		x, y := a.Metrics[metric], b.Metrics[metric]
		if maximize {
			x, y = y, x
		}
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	}
	i := 0
	for j := 1; j < len(points); j++ {
		if cmp(points[j], points[i]) < 0 {
			i = j
		}
	}
	return points[i], true
}

// Metrics lists the metric names present in the sweep, sorted.
func Metrics(points []SweepPoint) []string {
	var names []string
	for _, p := range points {
		for k := range p.Metrics {
			if !slices.Contains(names, k) {
				names = append(names, k)
			}
		}
	}
	sort.Strings(names)
	return names
}
