package physics

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/san-kum/godsim/internal/world"
)

func randomGrid(seed uint64) *world.Grid {
	rng := rand.New(rand.NewPCG(seed, 0))
	g := world.NewGrid(5, 4, 6)
	for i := range g.Voxels() {
		g.Voxels()[i].Temperature = -40 + rng.Float64()*120
	}
	return g
}

func TestDiffuseNoOvershoot(t *testing.T) {
	for _, rate := range []float64{0, 0.1, 0.5, 1} {
		g := randomGrid(11)
		before := g.Temperatures(nil)
		Diffuse(g, rate, nil)

		for i, v := range g.Voxels() {
			x, y, z := g.Coord(i)
			sum, n := 0.0, 0
			for _, d := range neighbours {
				if g.Valid(x+d[0], y+d[1], z+d[2]) {
					sum += before[g.Index(x+d[0], y+d[1], z+d[2])]
					n++
				}
			}
			avg := sum / float64(n)
			lo, hi := math.Min(before[i], avg), math.Max(before[i], avg)
			if v.Temperature < lo-1e-9 || v.Temperature > hi+1e-9 {
				t.Fatalf("rate %.1f voxel %d: %f outside [%f,%f]", rate, i, v.Temperature, lo, hi)
			}
		}
	}
}

func TestDiffuseUsesSnapshot(t *testing.T) {
	g := world.NewGrid(3, 1, 1)
	g.At(0, 0, 0).Temperature = 0
	g.At(1, 0, 0).Temperature = 30
	g.At(2, 0, 0).Temperature = 0

	Diffuse(g, 1, nil)

	// every cell reads the pre-pass values, so (2,0,0) still sees 30 to its left
	want := []float64{30, 0, 30}
	for i, w := range want {
		if got := g.Voxels()[i].Temperature; got != w {
			t.Errorf("voxel %d = %f, want %f", i, got, w)
		}
	}
}

func TestCoolConvergesMonotonically(t *testing.T) {
	g := randomGrid(5)
	prev := g.Temperatures(nil)

	for step := 0; step < 200; step++ {
		Cool(g, 0.05)
		for i, v := range g.Voxels() {
			if math.Abs(v.Temperature-Ambient) > math.Abs(prev[i]-Ambient)+1e-12 {
				t.Fatalf("step %d voxel %d moved away from ambient", step, i)
			}
			prev[i] = v.Temperature
		}
	}
	for i, v := range g.Voxels() {
		if math.Abs(v.Temperature-Ambient) > 0.01 {
			t.Errorf("voxel %d = %f after 200 steps", i, v.Temperature)
		}
	}
}

func TestSettleCascades(t *testing.T) {
	g := world.NewGrid(1, 1, 5)
	*g.At(0, 0, 0) = world.NewRock()
	*g.At(0, 0, 4) = world.NewSoil()
	g.At(0, 0, 4).Temperature = 77

	Settle(g)

	if got := g.Get(0, 0, 1); got.Material.Kind != world.Soil || got.Temperature != 77 {
		t.Errorf("soil should settle onto rock in one pass, got %s at z=1", got.Material)
	}
	for z := 2; z < 5; z++ {
		if g.Get(0, 0, z).Material.Kind != world.Air {
			t.Errorf("z=%d should be air", z)
		}
	}
}

func TestSettleIgnoresWaterAndRock(t *testing.T) {
	g := world.NewGrid(2, 1, 2)
	*g.At(0, 0, 1) = world.NewWater()
	*g.At(1, 0, 1) = world.NewRock()

	Settle(g)

	if g.Get(0, 0, 1).Material.Kind != world.Water || g.Get(1, 0, 1).Material.Kind != world.Rock {
		t.Error("water and rock must not fall")
	}
}

func TestSettleOrganic(t *testing.T) {
	g := world.NewGrid(1, 1, 2)
	g.At(0, 0, 1).Material = world.OrganicMaterial(3)

	Settle(g)

	if got := g.Get(0, 0, 0).Material; got != world.OrganicMaterial(3) {
		t.Errorf("organic should fall, got %s", got)
	}
}

func TestAdjustClamps(t *testing.T) {
	tests := []struct {
		name             string
		heat, cool       float64
		wantHeat, wantCo float64
	}{
		{"in range", 0.05, 0.01, 0.15, 0.03},
		{"below zero", -1, -1, 0, 0},
		{"above max", 5, 5, MaxHeatDiffusion, MaxCooling},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := DefaultRules()
			r.Adjust(tt.heat, tt.cool)
			if math.Abs(r.HeatDiffusion-tt.wantHeat) > 1e-12 || math.Abs(r.Cooling-tt.wantCo) > 1e-12 {
				t.Errorf("got (%f,%f), want (%f,%f)", r.HeatDiffusion, r.Cooling, tt.wantHeat, tt.wantCo)
			}
		})
	}
}

func TestApplySkipsGravityWhenDisabled(t *testing.T) {
	g := world.NewGrid(1, 1, 2)
	*g.At(0, 0, 1) = world.NewSoil()
	r := DefaultRules()
	r.Gravity = false

	Apply(g, r)

	if g.Get(0, 0, 1).Material.Kind != world.Soil {
		t.Error("soil moved with gravity disabled")
	}
}

func TestDiffuseReusesBuffer(t *testing.T) {
	g := world.NewGrid(3, 3, 3)
	buf := make([]float64, 0, 64)

	got := Diffuse(g, 0.5, buf)

	if len(got) != g.Len() || &got[0] != &buf[:1][0] {
		t.Error("Diffuse allocated despite a large enough buffer")
	}
}
