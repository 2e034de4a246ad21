package sim

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/godsim/internal/dynamo"
	"github.com/san-kum/godsim/internal/timeline"
)

// Builder produces the initial snapshot for one ensemble member.
type Builder func(seed uint64) (*dynamo.State, error)

// Ensemble runs independent worlds, one per seed, in parallel.
type Ensemble struct {
	base      *Simulator
	build     Builder
	numRuns   int
	seedStart uint64

	// NewMetrics, when set, supplies fresh metrics for every member; metric
	// instances are stateful and cannot be shared between goroutines.
	NewMetrics func() []Metric
}

func NewEnsemble(s *Simulator, build Builder, numRuns int, seedStart uint64) *Ensemble {
	return &Ensemble{base: s, build: build, numRuns: numRuns, seedStart: seedStart}
}

// Run returns one result per member in seed order. The first error cancels
// the remaining members. Members keep only their current snapshot.
func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := 0; i < e.numRuns; i++ {
		g.Go(func() error {
			seed := e.seedStart + uint64(i)
			st, err := e.build(seed)
			if err != nil {
				return fmt.Errorf("ensemble member %d: %w", i, err)
			}

			opts := []Option{WithLogger(e.base.logger)}
			if e.NewMetrics != nil {
				opts = append(opts, WithMetrics(e.NewMetrics()...))
			}
			s := New(opts...)

			cfgCopy := cfg
			cfgCopy.Seed = seed
			cfgCopy.ReportEvery = 0

			// Members only report stats and metrics, so history is not kept.
			res, err := s.Run(ctx, timeline.NewBounded(st, 1), cfgCopy)
			if err != nil {
				return fmt.Errorf("ensemble member %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
