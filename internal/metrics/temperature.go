package metrics

import "github.com/san-kum/godsim/internal/dynamo"

// MeanTemperature averages the grid mean temperature over all observed ticks.
type MeanTemperature struct {
	name    string
	total   float64
	samples int
}

func NewMeanTemperature() *MeanTemperature {
	return &MeanTemperature{name: "mean_temperature"}
}

func (m *MeanTemperature) Name() string { return m.name }

func (m *MeanTemperature) Observe(st *dynamo.State) {
	mean, _ := st.Grid.MeanTemperature()
	m.total += mean
	m.samples++
}

func (m *MeanTemperature) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *MeanTemperature) Reset() {
	m.total = 0
	m.samples = 0
}
