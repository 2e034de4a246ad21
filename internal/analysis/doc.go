// Package analysis characterises the statistics series a run produces.
//
//   - [Describe]: mean, spread, range and linear trend of a series
//   - [PowerSpectrum]: magnitude spectrum of the mean-removed series
//   - [DominantPeriod]: the strongest cycle length, in ticks
//
// # Boom and bust
//
// Biomass in a world with an active director often oscillates as
// catastrophes knock populations back:
//
//	bio, _ := storage.Column(stats, "biomass")
//	if p, ok := analysis.DominantPeriod(bio); ok {
//	    fmt.Printf("biomass cycles every %.1f ticks\n", p)
//	}
package analysis
