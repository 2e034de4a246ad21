package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns |X[k]| for k in [0, n/2) of the mean-removed series.
// Any length is accepted.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	mean := Describe(data).Mean
	centred := make([]float64, len(data))
	for i, x := range data {
		centred[i] = x - mean
	}

	spec := fft.FFTReal(centred)
	ps := make([]float64, len(spec)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spec[i])
	}
	return ps
}

// DominantPeriod reports the period, in samples, of the strongest non-zero
// frequency. It fails for series shorter than four samples or with no
// variation.
func DominantPeriod(data []float64) (float64, bool) {
	if len(data) < 4 {
		return 0, false
	}
	ps := PowerSpectrum(data)
	best := 1
	for k := 2; k < len(ps); k++ {
		if ps[k] > ps[best] {
			best = k
		}
	}
	if ps[best] < 1e-9 {
		return 0, false
	}
	return float64(len(data)) / float64(best), true
}
