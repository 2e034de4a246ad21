package analysis

import "math"

type Summary struct {
	N    int
	Mean float64
	Std  float64
	Min  float64
	Max  float64
	// Trend is the least squares slope per sample.
	Trend float64
}

func Describe(xs []float64) Summary {
	s := Summary{N: len(xs)}
	if len(xs) == 0 {
		return s
	}
	s.Min, s.Max = xs[0], xs[0]
	for _, x := range xs {
		s.Mean += x
		s.Min = math.Min(s.Min, x)
		s.Max = math.Max(s.Max, x)
	}
	n := float64(len(xs))
	s.Mean /= n

	var v, sxy, sxx float64
	tMean := (n - 1) / 2
	for i, x := range xs {
		d := x - s.Mean
		v += d * d
		t := float64(i) - tMean
		sxy += t * d
		sxx += t * t
	}
	s.Std = math.Sqrt(v / n)
	if sxx > 0 {
		s.Trend = sxy / sxx
	}
	return s
}
