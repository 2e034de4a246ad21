package automation

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/godsim/internal/config"
	"github.com/san-kum/godsim/internal/metrics"
	"github.com/san-kum/godsim/internal/storage"
)

func TestApply(t *testing.T) {
	cfg := config.DefaultConfig()
	if err := Apply(cfg, map[string]float64{"cooling_rate": 0.07, "carrying_capacity": 2500}); err != nil {
		t.Fatal(err)
	}
	if cfg.Physics.Cooling != 0.07 || cfg.Ecology.CarryingCapacity != 2500 {
		t.Errorf("parameters not applied: %+v %+v", cfg.Physics, cfg.Ecology)
	}

	if err := Apply(cfg, map[string]float64{"gravity_strength": 2}); err == nil {
		t.Error("expected unknown parameter error")
	}
	if err := Apply(cfg, map[string]float64{"carrying_capacity": -1}); err == nil {
		t.Error("expected negative carrying capacity to fail")
	}
	if cfg.Ecology.CarryingCapacity != 2500 {
		t.Errorf("rejected value was applied: %d", cfg.Ecology.CarryingCapacity)
	}
}

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	doc := `name: calm-vs-cold
steps:
  - name: calm
    preset: tiny
    seed: 3
    ticks: 20
  - preset: tiny
    seed: 3
    set:
      cooling_rate: 0.09
    save: true
`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatal(err)
	}
	if sc.Name != "calm-vs-cold" || len(sc.Steps) != 2 {
		t.Fatalf("unexpected scenario %+v", sc)
	}
	if s := sc.Steps[1]; s.Set["cooling_rate"] != 0.09 || !s.Save || s.Seed != 3 {
		t.Errorf("unexpected step %+v", s)
	}
}

func TestRunScenario(t *testing.T) {
	dir := t.TempDir()
	r := NewRunner(nil)
	r.Store = storage.New(dir)
	r.NewMetrics = metrics.Standard

	sc := &Scenario{Name: "pair", Steps: []ScenarioStep{
		{Name: "first", Preset: "tiny", Seed: 1, Ticks: 5},
		{Preset: "tiny", Seed: 2, Ticks: 4, Set: map[string]float64{"heat_diffusion_rate": 0.3}, Save: true},
	}}

	results, err := r.RunScenario(context.Background(), sc)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results", len(results))
	}
	if results[0].Name != "first" || results[0].Result.TicksRun != 5 || results[0].RunID != "" {
		t.Errorf("unexpected first result %+v", results[0])
	}
	if results[1].Name != "step-2" || results[1].Seed != 2 || results[1].Result.TicksRun != 4 {
		t.Errorf("unexpected second result %+v", results[1])
	}
	if d := results[1].Result.Final.Physics.HeatDiffusion; d < 0.25 || d > 0.35 {
		t.Errorf("heat diffusion %f, override lost", d)
	}

	runs, err := r.Store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].ID != results[1].RunID || runs[0].Preset != "tiny" {
		t.Errorf("unexpected stored runs %+v", runs)
	}
}

func TestRunScenarioStopsOnBadStep(t *testing.T) {
	sc := &Scenario{Steps: []ScenarioStep{
		{Preset: "tiny", Ticks: 2},
		{Preset: "tiny", Config: "x.yaml"},
		{Preset: "tiny", Ticks: 2},
	}}
	results, err := NewRunner(nil).RunScenario(context.Background(), sc)
	if err == nil {
		t.Fatal("expected an error")
	}
	if len(results) != 1 {
		t.Errorf("got %d results before the failure, want 1", len(results))
	}
}

func TestRunSweep(t *testing.T) {
	base, err := config.GetPreset("tiny")
	if err != nil {
		t.Fatal(err)
	}
	base.Run.Ticks = 3

	r := NewRunner(nil)
	r.NewMetrics = metrics.Standard
	points, err := r.RunSweep(context.Background(), &Sweep{
		Base: base, Param: "cooling_rate", Min: 0, Max: 0.1, Steps: 3, Seeds: 2,
	})
	if err != nil {
		t.Fatal(err)
	}

	wants := []float64{0, 0.05, 0.1}
	if len(points) != len(wants) {
		t.Fatalf("got %d points", len(points))
	}
	for i, p := range points {
		if p.Value != wants[i] {
			t.Errorf("point %d value = %g, want %g", i, p.Value, wants[i])
		}
		if _, ok := p.Metrics["mean_temperature"]; !ok {
			t.Errorf("point %d missing metrics: %v", i, p.Metrics)
		}
	}
	if base.Physics.Cooling != config.DefaultConfig().Physics.Cooling {
		t.Error("sweep modified the base config")
	}

	// Generated material starts below ambient, so faster relaxation warms.
	warmest, _ := Best(points, "mean_temperature", true)
	if warmest.Value != 0.1 {
		t.Errorf("warmest at %g, want 0.1", warmest.Value)
	}
}

func TestRunSweepRejects(t *testing.T) {
	base, err := config.GetPreset("tiny")
	if err != nil {
		t.Fatal(err)
	}

	r := NewRunner(nil)
	if _, err := r.RunSweep(context.Background(), &Sweep{Base: base, Param: "nope", Steps: 1, Seeds: 1}); err == nil {
		t.Error("expected unknown parameter error")
	}
	if _, err := r.RunSweep(context.Background(), &Sweep{Base: base, Param: "cooling_rate", Steps: 0, Seeds: 1}); err == nil {
		t.Error("expected zero steps to fail")
	}
	if _, err := r.RunSweep(context.Background(), &Sweep{Base: base, Param: "carrying_capacity", Min: -10, Max: 10, Steps: 2, Seeds: 1}); err == nil {
		t.Error("expected negative carrying capacity to fail")
	}
}

func TestRunSweepValidatesBeforeRunning(t *testing.T) {
	base, err := config.GetPreset("tiny")
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	r := NewRunner(log.New(&buf, "", 0))
	points, err := r.RunSweep(context.Background(), &Sweep{
		Base: base, Param: "cooling_rate", Min: 0, Max: 0.5, Steps: 2, Seeds: 1,
	})
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Fatalf("expected out of range cooling to fail validation, got %v", err)
	}
	if len(points) != 0 {
		t.Errorf("valid leading value still ran: %+v", points)
	}
	if buf.Len() != 0 {
		t.Errorf("runs started before validation failed:\n%s", buf.String())
	}
}

func TestBest(t *testing.T) {
	points := []SweepPoint{
		{Value: 1, Metrics: map[string]float64{"m": 2}},
		{Value: 2, Metrics: map[string]float64{"m": 5}},
		{Value: 3, Metrics: map[string]float64{"m": 5}},
		{Value: 4, Metrics: map[string]float64{"m": 1}},
	}
	if p, _ := Best(points, "m", true); p.Value != 2 {
		t.Errorf("max at %g, want 2", p.Value)
	}
	if p, _ := Best(points, "m", false); p.Value != 4 {
		t.Errorf("min at %g, want 4", p.Value)
	}
	if _, ok := Best(nil, "m", true); ok {
		t.Error("empty sweep has no best point")
	}
	if got := Metrics(points); len(got) != 1 || got[0] != "m" {
		t.Errorf("metrics = %v", got)
	}
}
