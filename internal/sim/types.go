package sim

import "github.com/san-kum/godsim/internal/dynamo"

// Metric folds every produced snapshot into a single number.
type Metric interface {
	Name() string
	Observe(s *dynamo.State)
	Value() float64
	Reset()
}

// Observer is called once per produced snapshot, after the metrics.
type Observer interface {
	OnTick(s *dynamo.State)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(s *dynamo.State)

func (f ObserverFunc) OnTick(s *dynamo.State) { f(s) }

type Config struct {
	Ticks int
	// Seed drives the tick stream. World setup uses its own stream.
	Seed        uint64
	ReportEvery int
}

func DefaultConfig() Config {
	return Config{Ticks: 1000, ReportEvery: 50}
}

type Result struct {
	Final       *dynamo.State
	Stats       []dynamo.Stats
	Metrics     map[string]float64
	TicksRun    int
	Births      int
	Extinctions int
	Actions     int
}
