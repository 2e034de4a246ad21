package analysis

import (
	"math"
	"testing"
)

func TestDescribe(t *testing.T) {
	s := Describe([]float64{1, 2, 3, 4})
	if s.N != 4 || s.Mean != 2.5 || s.Min != 1 || s.Max != 4 {
		t.Errorf("unexpected summary %+v", s)
	}
	if math.Abs(s.Std-math.Sqrt(1.25)) > 1e-12 {
		t.Errorf("std = %f", s.Std)
	}
	if math.Abs(s.Trend-1) > 1e-12 {
		t.Errorf("trend = %f, want 1", s.Trend)
	}

	if empty := Describe(nil); empty != (Summary{}) {
		t.Errorf("empty series gave %+v", empty)
	}
}

func TestDominantPeriod(t *testing.T) {
	tests := []struct {
		name   string
		period float64
		n      int
	}{
		{"power of two", 8, 64},
		{"odd length", 10, 90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make([]float64, tt.n)
			for i := range data {
				data[i] = 500 + 100*math.Sin(2*math.Pi*float64(i)/tt.period)
			}
			got, ok := DominantPeriod(data)
			if !ok || math.Abs(got-tt.period) > 1e-9 {
				t.Errorf("period = %f (%v), want %f", got, ok, tt.period)
			}
		})
	}
}

func TestDominantPeriodFlat(t *testing.T) {
	if _, ok := DominantPeriod([]float64{3, 3, 3, 3, 3, 3}); ok {
		t.Error("flat series has no period")
	}
	if _, ok := DominantPeriod([]float64{1, 2}); ok {
		t.Error("short series has no period")
	}
}

func TestPowerSpectrumIgnoresOffset(t *testing.T) {
	ps := PowerSpectrum([]float64{10, 12, 10, 12, 10, 12, 10, 12})
	if len(ps) != 4 {
		t.Fatalf("len = %d, want 4", len(ps))
	}
	if ps[0] > 1e-9 {
		t.Errorf("dc bin = %f, want 0", ps[0])
	}
}
