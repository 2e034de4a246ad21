package world

import (
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestIndexUniqueAndExhaustive(t *testing.T) {
	g := NewGrid(5, 4, 3)
	seen := make([]bool, g.Len())

	for z := 0; z < g.D; z++ {
		for y := 0; y < g.H; y++ {
			for x := 0; x < g.W; x++ {
				i := g.Index(x, y, z)
				if i < 0 || i >= g.Len() {
					t.Fatalf("index(%d,%d,%d)=%d out of range", x, y, z, i)
				}
				if seen[i] {
					t.Fatalf("index %d produced twice", i)
				}
				seen[i] = true

				cx, cy, cz := g.Coord(i)
				if cx != x || cy != y || cz != z {
					t.Errorf("Coord(%d) = (%d,%d,%d), want (%d,%d,%d)", i, cx, cy, cz, x, y, z)
				}
			}
		}
	}
	for i, ok := range seen {
		if !ok {
			t.Errorf("index %d never produced", i)
		}
	}
}

func TestAtMutationVisibleOnce(t *testing.T) {
	g := NewGrid(4, 4, 4)
	g.At(1, 2, 3).Temperature = 99

	hits := 0
	for i, v := range g.Voxels() {
		if v.Temperature == 99 {
			hits++
			if i != g.Index(1, 2, 3) {
				t.Errorf("mutation landed at index %d", i)
			}
		}
	}
	if hits != 1 {
		t.Errorf("expected mutation visible exactly once, got %d", hits)
	}
	if got := g.Get(1, 2, 3).Temperature; got != 99 {
		t.Errorf("Get after At: got %f", got)
	}
}

func TestValid(t *testing.T) {
	g := NewGrid(3, 3, 3)
	tests := []struct {
		x, y, z int
		want    bool
	}{
		{0, 0, 0, true},
		{2, 2, 2, true},
		{-1, 0, 0, false},
		{0, -1, 0, false},
		{0, 0, -1, false},
		{3, 0, 0, false},
		{0, 3, 0, false},
		{0, 0, 3, false},
	}
	for _, tt := range tests {
		if got := g.Valid(tt.x, tt.y, tt.z); got != tt.want {
			t.Errorf("Valid(%d,%d,%d) = %v, want %v", tt.x, tt.y, tt.z, got, tt.want)
		}
	}
}

func TestCloneIndependent(t *testing.T) {
	g := Generate(6, 6, 6, rand.New(rand.NewPCG(1, 0)))
	c := g.Clone()

	if diff := cmp.Diff(g.Voxels(), c.Voxels()); diff != "" {
		t.Fatalf("clone differs (-orig +clone):\n%s", diff)
	}

	c.At(0, 0, 0).Temperature = -50
	if g.Get(0, 0, 0).Temperature == -50 {
		t.Error("clone shares storage with original")
	}
}

func TestMeanTemperature(t *testing.T) {
	g := NewGrid(2, 1, 1)
	g.At(0, 0, 0).Temperature = 10
	g.At(1, 0, 0).Temperature = 30

	mean, variance := g.MeanTemperature()
	if mean != 20 {
		t.Errorf("mean = %f, want 20", mean)
	}
	if variance != 100 {
		t.Errorf("variance = %f, want 100", variance)
	}
}

func TestMaterialPredicates(t *testing.T) {
	tests := []struct {
		m         Material
		habitable bool
		loose     bool
	}{
		{Of(Air), false, false},
		{Of(Rock), false, false},
		{Of(Soil), true, true},
		{Of(Water), true, false},
		{Of(Lava), false, false},
		{Of(Ice), false, false},
		{OrganicMaterial(7), true, true},
	}
	for _, tt := range tests {
		t.Run(tt.m.String(), func(t *testing.T) {
			if got := tt.m.Habitable(); got != tt.habitable {
				t.Errorf("Habitable() = %v", got)
			}
			if got := tt.m.Loose(); got != tt.loose {
				t.Errorf("Loose() = %v", got)
			}
		})
	}
}
