package metrics

import "github.com/san-kum/godsim/internal/dynamo"

// Stability is the fraction of observed ticks whose climate stability was at
// least threshold.
type Stability struct {
	name      string
	threshold float64
	calm      int
	samples   int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(st *dynamo.State) {
	s.samples++
	if st.Summary().ClimateStability >= s.threshold {
		s.calm++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return float64(s.calm) / float64(s.samples)
}

func (s *Stability) Reset() {
	s.calm = 0
	s.samples = 0
}
