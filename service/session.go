// Package service coordinates maze generation and the race of the four
// solving strategies over a finished maze. Every session owns its grid and
// solver state exclusively; all work happens on the caller's goroutine,
// one step at a time.
package service

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mazekit/mazekit-api/maze"
	"github.com/mazekit/mazekit-api/search"
	"github.com/mazekit/mazekit-api/service/i"
)

// Session-related errors.
var (
	ErrGenerationIncomplete = errors.New("maze generation has not completed")
	ErrUnsolvable           = errors.New("maze has no goal cell")
	ErrSolversNotAttached   = errors.New("solvers have not been attached")
	ErrUnknownStrategy      = errors.New("unknown solving strategy")
)

// Solving strategy names, as exposed by the API.
const (
	StrategyDFS    = "dfs"
	StrategyBFS    = "bfs"
	StrategyGreedy = "greedy"
	StrategyAStar  = "astar"
)

// Strategies lists every solving strategy in display order.
var Strategies = []string{StrategyDFS, StrategyBFS, StrategyGreedy, StrategyAStar}

// newFrontier builds the frontier that turns the generic search engine
// into the named strategy.
func newFrontier(strategy string, goal maze.Position) (search.Frontier, error) {
	switch strategy {
	case StrategyDFS:
		return search.NewStackFrontier(), nil
	case StrategyBFS:
		return search.NewQueueFrontier(), nil
	case StrategyGreedy:
		return search.NewGreedyFrontier(goal), nil
	case StrategyAStar:
		return search.NewAStarFrontier(goal), nil
	}
	return nil, ErrUnknownStrategy
}

// Session holds one maze and, once generation has finished, the four
// solver runs racing over it.
type Session struct {
	id      uuid.UUID
	gen     *maze.Generator
	solvers map[string]*search.Solver
	sync.Mutex
}

// newSession seeds a generator for the session. A zero seed falls back to
// the current time so every unseeded maze differs.
func newSession(width, height int, multipleSolutions bool, seed int64) (*Session, error) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	gen, err := maze.NewGenerator(width, height, multipleSolutions, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, err
	}
	return &Session{
		id:  uuid.New(),
		gen: gen,
	}, nil
}

// stepGeneration advances the generator by one event. The grid snapshot
// is encoded while the lock is held: the generator keeps mutating its
// live grid on later steps, so the encoding must not escape the critical
// section.
func (s *Session) stepGeneration() (i.GenerationStep, bool) {
	s.Lock()
	defer s.Unlock()

	ev, more := s.gen.Step()
	if !more {
		return i.GenerationStep{}, false
	}
	return i.GenerationStep{
		Phase: ev.Phase,
		Cell:  ev.Cell,
		Path:  ev.Path,
		Grid:  ev.Grid.Encode(),
	}, true
}

// snapshot returns the encoded grid and whether generation has completed.
func (s *Session) snapshot() ([]string, bool) {
	s.Lock()
	defer s.Unlock()
	return s.gen.Grid().Encode(), s.gen.Done()
}

// attachSolvers builds a fresh maze view and solver per strategy. The grid
// is immutable once generation has completed, so the views share it.
func (s *Session) attachSolvers() error {
	s.Lock()
	defer s.Unlock()

	if !s.gen.Done() {
		return ErrGenerationIncomplete
	}
	if !s.gen.GoalPlaced() {
		return ErrUnsolvable
	}

	solvers := make(map[string]*search.Solver, len(Strategies))
	for _, strategy := range Strategies {
		view, err := search.FromGrid(s.gen.Grid())
		if err != nil {
			return err
		}
		frontier, err := newFrontier(strategy, view.Goal)
		if err != nil {
			return err
		}
		solvers[strategy] = search.NewSolver(view, frontier)
	}
	s.solvers = solvers
	return nil
}

// stepSolver advances one strategy's solver by a single expansion.
func (s *Session) stepSolver(strategy string) (search.Event, bool, error) {
	s.Lock()
	defer s.Unlock()

	if s.solvers == nil {
		return search.Event{}, false, ErrSolversNotAttached
	}
	solver, ok := s.solvers[strategy]
	if !ok {
		return search.Event{}, false, ErrUnknownStrategy
	}
	ev, more := solver.Step()
	if !more {
		return ev, false, solver.Err()
	}
	return ev, true, nil
}
