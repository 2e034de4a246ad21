package metrics

import (
	"github.com/san-kum/godsim/internal/director"
	"github.com/san-kum/godsim/internal/dynamo"
)

// Interventions is the fraction of observed ticks on which the director did
// something other than NoAction.
type Interventions struct {
	name    string
	acted   int
	samples int
	byKind  map[string]int
}

func NewInterventions() *Interventions {
	return &Interventions{
		name:   "interventions",
		byKind: make(map[string]int),
	}
}

func (c *Interventions) Name() string {
	return c.name
}

func (c *Interventions) Observe(st *dynamo.State) {
	c.samples++
	if st.LastAction == nil {
		return
	}
	if _, ok := st.LastAction.(director.NoAction); ok {
		return
	}
	c.acted++
	c.byKind[st.LastAction.Kind()]++
}

func (c *Interventions) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return float64(c.acted) / float64(c.samples)
}

// Count returns how many actions of the given kind were observed.
func (c *Interventions) Count(kind string) int { return c.byKind[kind] }

func (c *Interventions) Reset() {
	c.acted = 0
	c.samples = 0
	clear(c.byKind)
}
