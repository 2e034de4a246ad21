package dynamo

import (
	"errors"
	"fmt"

	"github.com/san-kum/godsim/internal/biology"
)

// Setup errors. Ticking itself never fails.
var (
	// ErrInvalidGrid indicates a missing grid or one with a non-positive dimension.
	ErrInvalidGrid = errors.New("dynamo: invalid grid")

	// ErrUnknownSpecies indicates a seeded population naming no species.
	ErrUnknownSpecies = errors.New("dynamo: population references unknown species")

	// ErrOutOfBounds indicates a seeded population outside the grid.
	ErrOutOfBounds = errors.New("dynamo: population outside grid bounds")

	// ErrDuplicateSpecies indicates two species sharing an id.
	ErrDuplicateSpecies = errors.New("dynamo: duplicate species id")
)

// SeedError wraps a setup error with the offending population.
type SeedError struct {
	Index      int
	Population biology.Population
	Wrapped    error
}

func (e *SeedError) Error() string {
	p := e.Population
	return fmt.Sprintf("population %d (species %d at %d,%d,%d): %v", e.Index, p.SpeciesID, p.X, p.Y, p.Z, e.Wrapped)
}

func (e *SeedError) Unwrap() error {
	return e.Wrapped
}
