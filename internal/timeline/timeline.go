// Package timeline stores the snapshot history of a run.
//
// A [Multiverse] holds one or more [Timeline] values and a cursor (current
// timeline, current tick). Snapshots are never modified once stored.
//
// Rewinding only moves the cursor. The next [Multiverse.Push] discards every
// stored snapshot after the cursor before appending, so the cursor always
// names the newest snapshot after a push and no stale future survives.
//
// A multiverse made with [NewBounded] keeps only its newest snapshots. Ticks
// stay absolute; older ones report [ErrNoSuchTick].
package timeline

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/san-kum/godsim/internal/dynamo"
)

var ErrNoSuchTick = errors.New("timeline: no snapshot at tick")

// Timeline is an ordered history of snapshots.
type Timeline struct {
	ID     uint32
	states []*dynamo.State
	// base is the tick of states[0].
	base int
}

// Len is one past the newest tick, counting forgotten snapshots.
func (t *Timeline) Len() int { return t.base + len(t.states) }

// Oldest is the earliest tick still stored.
func (t *Timeline) Oldest() int { return t.base }

func (t *Timeline) At(i int) (*dynamo.State, error) {
	if i < t.base || i >= t.Len() {
		return nil, fmt.Errorf("%w %d (timeline %d holds %d..%d)", ErrNoSuchTick, i, t.ID, t.base, t.Len()-1)
	}
	return t.states[i-t.base], nil
}

// truncate drops everything after tick i.
func (t *Timeline) truncate(i int) {
	j := i - t.base
	clear(t.states[j+1:])
	t.states = t.states[:j+1]
}

// forget drops the oldest snapshots until at most keep remain.
func (t *Timeline) forget(keep int) {
	n := len(t.states) - keep
	if n <= 0 {
		return
	}
	copy(t.states, t.states[n:])
	clear(t.states[keep:])
	t.states = t.states[:keep]
	t.base += n
}

type Multiverse struct {
	timelines []*Timeline
	current   int
	tick      int
	// keep bounds stored snapshots per timeline; zero keeps all.
	keep int
}

// New starts a multiverse with a single timeline whose tick zero is initial.
func New(initial *dynamo.State) *Multiverse {
	return &Multiverse{
		timelines: []*Timeline{{ID: 0, states: []*dynamo.State{initial}}},
	}
}

// NewBounded is like New but stores at most keep snapshots, dropping the
// oldest on each push. Batch runs use it to hold memory flat.
func NewBounded(initial *dynamo.State, keep int) *Multiverse {
	m := New(initial)
	m.keep = max(1, keep)
	return m
}

func (m *Multiverse) timeline() *Timeline { return m.timelines[m.current] }

// Timeline returns the current timeline.
func (m *Multiverse) Timeline() *Timeline { return m.timeline() }

// Timelines reports how many timelines exist.
func (m *Multiverse) Timelines() int { return len(m.timelines) }

func (m *Multiverse) Tick() int { return m.tick }

// Len is one past the newest tick on the current timeline. Without a bound
// it equals the number of stored snapshots.
func (m *Multiverse) Len() int { return m.timeline().Len() }

// Stored is the number of snapshots actually held.
func (m *Multiverse) Stored() int { return len(m.timeline().states) }

func (m *Multiverse) Current() *dynamo.State {
	t := m.timeline()
	return t.states[m.tick-t.base]
}

func (m *Multiverse) At(i int) (*dynamo.State, error) { return m.timeline().At(i) }

// Push stores s after the cursor and moves the cursor onto it.
func (m *Multiverse) Push(s *dynamo.State) {
	t := m.timeline()
	t.truncate(m.tick)
	t.states = append(t.states, s)
	if m.keep > 0 {
		t.forget(m.keep)
	}
	m.tick = t.Len() - 1
}

// Advance ticks the current snapshot and pushes the result.
func (m *Multiverse) Advance(rng *rand.Rand) *dynamo.State {
	next := dynamo.Tick(m.Current(), rng)
	m.Push(next)
	return next
}

// Rewind moves the cursor back n ticks, stopping at the oldest stored
// snapshot, and returns the new tick.
func (m *Multiverse) Rewind(n int) int {
	m.tick = max(m.timeline().base, m.tick-max(0, n))
	return m.tick
}

// Forward moves the cursor ahead through already stored snapshots, stopping
// at the last one.
func (m *Multiverse) Forward(n int) int {
	m.tick = min(m.Len()-1, m.tick+max(0, n))
	return m.tick
}

// AtEnd reports whether the cursor is on the newest stored snapshot.
func (m *Multiverse) AtEnd() bool { return m.tick == m.Len()-1 }
