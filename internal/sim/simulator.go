package sim

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand/v2"

	"github.com/san-kum/godsim/internal/civ"
	"github.com/san-kum/godsim/internal/director"
	"github.com/san-kum/godsim/internal/dynamo"
	"github.com/san-kum/godsim/internal/timeline"
)

// tickStream separates the tick RNG from the world-setup RNG for one seed.
const tickStream = 0x9e3779b97f4a7c15

type Simulator struct {
	metrics   []Metric
	observers []Observer
	logger    *log.Logger
}

type Option func(*Simulator)

// WithLogger sets the run logger. A nil logger discards output.
func WithLogger(l *log.Logger) Option {
	return func(s *Simulator) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithMetrics(ms ...Metric) Option {
	return func(s *Simulator) { s.metrics = append(s.metrics, ms...) }
}

func WithObservers(obs ...Observer) Option {
	return func(s *Simulator) { s.observers = append(s.observers, obs...) }
}

func New(opts ...Option) *Simulator {
	s := &Simulator{
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		logger:    log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// NewRand returns the tick RNG for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, tickStream))
}

// Run advances mv by cfg.Ticks ticks. The context is checked between ticks;
// on cancellation the partial result is returned with ctx.Err().
func (s *Simulator) Run(ctx context.Context, mv *timeline.Multiverse, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	rng := NewRand(cfg.Seed)
	start := mv.Current()
	result := &Result{
		Final:   start,
		Stats:   make([]dynamo.Stats, 0, cfg.Ticks+1),
		Metrics: make(map[string]float64),
	}
	result.Stats = append(result.Stats, start.Stats())

	s.logger.Printf("run start: tick=%d ticks=%d seed=%d grid=%dx%dx%d populations=%d",
		start.Tick, cfg.Ticks, cfg.Seed, start.Grid.W, start.Grid.H, start.Grid.D, len(start.Populations))

	defer func() {
		for _, m := range s.metrics {
			result.Metrics[m.Name()] = m.Value()
		}
	}()

	for i := 0; i < cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			s.logger.Printf("run cancelled after %d ticks", result.TicksRun)
			return result, ctx.Err()
		default:
		}

		prev := mv.Current()
		next := mv.Advance(rng)
		result.Final = next
		result.TicksRun++
		result.Stats = append(result.Stats, next.Stats())

		s.logEvents(prev, next, result)

		for _, m := range s.metrics {
			m.Observe(next)
		}
		for _, obs := range s.observers {
			obs.OnTick(next)
		}

		if cfg.ReportEvery > 0 && next.Tick%cfg.ReportEvery == 0 {
			st := result.Stats[len(result.Stats)-1]
			s.logger.Printf("tick %d: civilizations=%d populations=%d biomass=%d avg_tech=%.2f",
				st.Tick, st.Civilizations, st.Populations, st.Biomass, st.AvgTech)
		}
	}

	end := result.Final
	s.logger.Printf("run finished: tick=%d civilizations=%d populations=%d births=%d extinctions=%d actions=%d",
		end.Tick, len(end.Civilizations), len(end.Populations), result.Births, result.Extinctions, result.Actions)
	return result, nil
}

func validateConfig(cfg Config) error {
	if cfg.Ticks < 0 {
		return fmt.Errorf("ticks must be non-negative, got %d", cfg.Ticks)
	}
	if cfg.ReportEvery < 0 {
		return fmt.Errorf("report interval must be non-negative, got %d", cfg.ReportEvery)
	}
	return nil
}

type civKey struct {
	id      uint32
	x, y, z int
}

func keyOf(c civ.Civilization) civKey { return civKey{c.ID, c.X, c.Y, c.Z} }

// logEvents reports civilizations founded and lost between two snapshots and
// any director action.
func (s *Simulator) logEvents(prev, next *dynamo.State, result *Result) {
	before := make(map[civKey]bool, len(prev.Civilizations))
	for _, c := range prev.Civilizations {
		before[keyOf(c)] = true
	}
	after := make(map[civKey]bool, len(next.Civilizations))
	for _, c := range next.Civilizations {
		k := keyOf(c)
		after[k] = true
		if !before[k] {
			result.Births++
			s.logger.Printf("tick %d: %s founded at (%d,%d,%d) with %d people", next.Tick, c.Name, c.X, c.Y, c.Z, c.Population)
		}
	}
	for _, c := range prev.Civilizations {
		if !after[keyOf(c)] {
			result.Extinctions++
			s.logger.Printf("tick %d: %s collapsed", next.Tick, c.Name)
		}
	}

	if _, idle := next.LastAction.(director.NoAction); !idle && next.LastAction != nil {
		result.Actions++
		s.logger.Printf("tick %d: director %s", next.Tick, director.Describe(next.LastAction))
	}
}
