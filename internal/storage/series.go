package storage

import (
	"fmt"
	"maps"
	"slices"

	"github.com/san-kum/godsim/internal/dynamo"
)

// Series extracts named numeric columns from stats rows.
var Series = map[string]func(dynamo.Stats) float64{
	"civilizations":     func(s dynamo.Stats) float64 { return float64(s.Civilizations) },
	"populations":       func(s dynamo.Stats) float64 { return float64(s.Populations) },
	"biomass":           func(s dynamo.Stats) float64 { return float64(s.Biomass) },
	"avg_tech":          func(s dynamo.Stats) float64 { return s.AvgTech },
	"mean_temperature":  func(s dynamo.Stats) float64 { return s.MeanTemperature },
	"climate_stability": func(s dynamo.Stats) float64 { return s.ClimateStability },
}

func Column(stats []dynamo.Stats, name string) ([]float64, error) {
	fn, ok := Series[name]
	if !ok {
		return nil, fmt.Errorf("unknown series %q", name)
	}
	out := make([]float64, len(stats))
	for i, s := range stats {
		out[i] = fn(s)
	}
	return out, nil
}

// SeriesNames lists the plottable columns in sorted order.
func SeriesNames() []string {
	return slices.Sorted(maps.Keys(Series))
}
