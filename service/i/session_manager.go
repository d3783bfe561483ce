package i

import (
	"github.com/google/uuid"
	"github.com/mazekit/mazekit-api/maze"
	"github.com/mazekit/mazekit-api/search"
)

// GenerationStep is one generation event with the grid snapshot already
// encoded. Implementations capture the encoding under their own locking,
// so callers never observe the live grid mid-mutation.
type GenerationStep struct {
	Phase maze.Phase
	Cell  *maze.Position
	Path  []maze.Position
	Grid  []string
}

// SessionManager manages maze sessions: one generated grid per session and
// four independent solver runs over it.
type SessionManager interface {
	// Create opens a session for a maze of the given dimensions. A zero
	// seed means time-seeded generation.
	Create(width, height int, multipleSolutions bool, seed int64) (uuid.UUID, error)

	// Snapshot returns the encoded grid and whether generation has
	// completed.
	Snapshot(id uuid.UUID) ([]string, bool, error)

	// StepGeneration advances the session's generator by one event. ok is
	// false once the generation stream is exhausted.
	StepGeneration(id uuid.UUID) (GenerationStep, bool, error)

	// AttachSolvers builds fresh solver runs for every strategy over the
	// finished grid, replacing any previous runs.
	AttachSolvers(id uuid.UUID) error

	// StepSolver advances the named strategy's solver by one event. ok is
	// false once that solver's stream has ended; err then reports
	// search.ErrNoSolution for a failed search.
	StepSolver(id uuid.UUID, strategy string) (search.Event, bool, error)

	// Remove discards the session.
	Remove(id uuid.UUID) error
}
