package civ

import (
	"math/rand/v2"
	"regexp"
	"testing"

	"github.com/san-kum/godsim/internal/biology"
	"github.com/san-kum/godsim/internal/world"
)

func newRNG() *rand.Rand { return rand.New(rand.NewPCG(9, 9)) }

func TestSpawnThresholdAndOccupancy(t *testing.T) {
	pops := []biology.Population{
		{X: 1, Y: 1, Z: 1, Size: 499},
		{X: 2, Y: 2, Z: 2, Size: 500},
		{X: 2, Y: 2, Z: 2, Size: 900},
		{X: 3, Y: 3, Z: 3, Size: 10_000},
	}

	civs := Spawn(pops, nil, newRNG())

	if len(civs) != 2 {
		t.Fatalf("expected 2 civilizations, got %d", len(civs))
	}
	first := civs[0]
	if first.ID != 0 || first.Population != 500 || first.TechLevel != 1.0 {
		t.Errorf("unexpected first civilization %+v", first)
	}
	if civs[1].ID != 1 || civs[1].X != 3 {
		t.Errorf("unexpected second civilization %+v", civs[1])
	}
	for _, c := range civs {
		if c.Aggression < 0 || c.Aggression >= 1 || c.Spirituality < 0 || c.Spirituality >= 1 {
			t.Errorf("traits out of range: %+v", c)
		}
	}
}

func TestNameFormat(t *testing.T) {
	re := regexp.MustCompile(`^(Astra|Terra|Zeno|Kryth|Luma|Vexis|Orin|Drak)(nians|ites|oks|ans|ari|oni|ian|eth) #42$`)
	rng := newRNG()
	for i := 0; i < 50; i++ {
		if n := Name(42, rng); !re.MatchString(n) {
			t.Fatalf("unexpected name %q", n)
		}
	}
}

func TestResolveWar(t *testing.T) {
	tests := []struct {
		name         string
		a, b         Civilization
		wantWinner   uint32
		wantA, wantB uint32
	}{
		{
			name:       "stronger first wins",
			a:          Civilization{ID: 1, TechLevel: 5, Population: 300},
			b:          Civilization{ID: 2, TechLevel: 1, Population: 301},
			wantWinner: 1,
			wantA:      300 + 100,
			wantB:      301 - 2*100,
		},
		{
			name:       "tie favours second",
			a:          Civilization{ID: 1, TechLevel: 1, Population: 100},
			b:          Civilization{ID: 2, TechLevel: 1, Population: 100},
			wantWinner: 2,
			wantA:      100 - 2*33,
			wantB:      100 + 33,
		},
		{
			name:       "loser floored at zero",
			a:          Civilization{ID: 1, TechLevel: 0, Population: 2},
			b:          Civilization{ID: 2, TechLevel: 9, Population: 10},
			wantWinner: 2,
			wantA:      2,
			wantB:      10,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := tt.a, tt.b
			techBefore := map[uint32]float64{a.ID: a.TechLevel, b.ID: b.TechLevel}
			w := Resolve(&a, &b)
			if w.Winner != tt.wantWinner {
				t.Errorf("winner = %d, want %d", w.Winner, tt.wantWinner)
			}
			if a.Population != tt.wantA || b.Population != tt.wantB {
				t.Errorf("populations = (%d,%d), want (%d,%d)", a.Population, b.Population, tt.wantA, tt.wantB)
			}
			winner := &a
			if w.Winner == b.ID {
				winner = &b
			}
			if winner.TechLevel != techBefore[w.Winner]+WarTechBonus {
				t.Errorf("winner tech = %f", winner.TechLevel)
			}
		})
	}
}

func TestWarInvariant(t *testing.T) {
	rng := newRNG()
	for i := 0; i < 500; i++ {
		a := Civilization{ID: 0, TechLevel: rng.Float64() * 5, Population: uint32(rng.IntN(100_000))}
		b := Civilization{ID: 1, TechLevel: rng.Float64() * 5, Population: uint32(rng.IntN(100_000))}
		before := map[uint32]uint32{0: a.Population, 1: b.Population}

		w := Resolve(&a, &b)

		after := map[uint32]uint32{0: a.Population, 1: b.Population}
		lb := before[w.Loser]
		wantLoser := int64(lb) - 2*int64(lb/3)
		if wantLoser < 0 {
			wantLoser = 0
		}
		if int64(after[w.Loser]) != wantLoser {
			t.Fatalf("loser %d -> %d, want %d", lb, after[w.Loser], wantLoser)
		}
		if after[w.Winner] != before[w.Winner]+lb/3 {
			t.Fatalf("winner %d -> %d, want +%d", before[w.Winner], after[w.Winner], lb/3)
		}
	}
}

func TestConflictRequiresProximityAndAggression(t *testing.T) {
	civs := []Civilization{
		{ID: 0, Aggression: 1, Population: 1000, TechLevel: 1},
		{ID: 1, X: 20, Aggression: 1, Population: 1000, TechLevel: 1},
		{ID: 2, X: 1, Aggression: 0.1, Population: 1000, TechLevel: 1},
	}
	rng := newRNG()
	for i := 0; i < 200; i++ {
		if wars := Conflict(civs, rng); len(wars) != 0 {
			t.Fatalf("unexpected war %+v", wars)
		}
	}
}

func TestConflictEventuallyFights(t *testing.T) {
	rng := newRNG()
	fought := 0
	for i := 0; i < 200; i++ {
		civs := []Civilization{
			{ID: 0, Aggression: 0.9, Population: 1000, TechLevel: 1},
			{ID: 1, X: 3, Aggression: 0.9, Population: 1000, TechLevel: 2},
		}
		fought += len(Conflict(civs, rng))
	}
	if fought == 0 || fought > 60 {
		t.Errorf("expected roughly 10%% war rate, got %d/200", fought)
	}
}

func TestUpdateHarshAndMild(t *testing.T) {
	g := world.NewGrid(2, 1, 1)
	g.At(0, 0, 0).Temperature = 35
	g.At(1, 0, 0).Temperature = 20
	civs := []Civilization{
		{ID: 0, X: 0, Population: 1000, TechLevel: 1, Aggression: 0.5, Spirituality: 0.5},
		{ID: 1, X: 1, Population: 1000, TechLevel: 1, Aggression: 0.5, Spirituality: 0.5},
		{ID: 2, X: 7, Population: 1000, TechLevel: 1, Aggression: 0.5, Spirituality: 0.5},
	}

	Update(g, civs, newRNG())

	if civs[0].Population != 950 {
		t.Errorf("harsh: expected 950, got %d", civs[0].Population)
	}
	if civs[1].Population != 1020 {
		t.Errorf("mild: expected 1020, got %d", civs[1].Population)
	}
	if civs[2].Population != 1000 {
		t.Errorf("out of bounds: expected unchanged, got %d", civs[2].Population)
	}
	for _, c := range civs {
		if c.TechLevel < 1.01 || c.TechLevel >= 1.03 {
			t.Errorf("tech %f outside [1.01,1.03)", c.TechLevel)
		}
		if c.Aggression < 0.49 || c.Aggression > 0.51 || c.Spirituality < 0.49 || c.Spirituality > 0.51 {
			t.Errorf("drift too large: %+v", c)
		}
	}
}

func TestDriftClamped(t *testing.T) {
	rng := newRNG()
	for i := 0; i < 1000; i++ {
		if v := drift(0, rng); v < 0 || v > DriftMagnitude {
			t.Fatalf("drift(0) = %f", v)
		}
		if v := drift(1, rng); v > 1 || v < 1-DriftMagnitude {
			t.Fatalf("drift(1) = %f", v)
		}
	}
}

func TestStepCollapse(t *testing.T) {
	g := world.NewGrid(1, 1, 1)
	civs := []Civilization{
		{ID: 0, Population: 50},
		{ID: 1, X: 40, Population: 51},
		{ID: 2, X: 80, Population: 5000},
	}

	out, _ := Step(g, civs, newRNG())

	// (0,0,0) is 20°C so 50 grows by floor(1.0)=1 to 51 and survives
	if len(out) != 3 {
		t.Fatalf("expected all three to survive one mild tick, got %d", len(out))
	}

	out = Collapse([]Civilization{{ID: 0, Population: 50}, {ID: 1, Population: 51}})
	if len(out) != 1 || out[0].ID != 1 {
		t.Errorf("expected only population 51 to remain, got %+v", out)
	}
}

func TestFind(t *testing.T) {
	civs := []Civilization{{ID: 4}, {ID: 7}, {ID: 7, Name: "second"}}
	c, ok := Find(civs, 7)
	if !ok || c.Name != "" {
		t.Errorf("expected first id 7 match, got %+v", c)
	}
	if _, ok := Find(civs, 99); ok {
		t.Error("expected no match for id 99")
	}
}
