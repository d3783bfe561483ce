package maze

import (
	"math/rand"
	"slices"
	"time"
)

// Phase tags a generation event with the state-machine transition that
// produced it.
type Phase string

// Generation phases, in the order they can occur.
const (
	PhaseInitial      Phase = "initial"
	PhaseWalkStart    Phase = "walk_start"
	PhaseWalking      Phase = "walking"
	PhaseAddingPath   Phase = "adding_path"
	PhasePathComplete Phase = "path_complete"
	PhaseComplete     Phase = "complete"
)

// Event is one observable generation step. Grid refers to the generator's
// live grid; Cell and Path carry the phase payload where one applies
// (Cell for initial/walk_start/adding_path, Path for walking).
type Event struct {
	Grid  *Grid
	Phase Phase
	Cell  *Position
	Path  []Position
}

// maxWalkSteps bounds a single random walk. A walk that exhausts the bound
// is abandoned without touching the grid and its target is re-selected on a
// later outer iteration; a pathological random sequence could in principle
// stall repeatedly, which is accepted as a bounded-retry risk.
const maxWalkSteps = 1000

type genState int

const (
	stateInitial genState = iota
	stateWalkStart
	stateWalking
	stateAddingPath
	statePathComplete
	stateFinish
	stateDone
)

// Generator carves a maze with Wilson's algorithm: repeated loop-erased
// random walks from cells outside the maze until they hit the in-maze set.
// It performs no work except when advanced by Step, suspending after every
// walk step, path addition, and phase change.
type Generator struct {
	grid              *Grid
	rng               *rand.Rand
	multipleSolutions bool

	state     genState
	inMaze    map[Position]struct{}
	remaining []Position
	path      []Position
	current   Position
	walkSteps int
	addIdx    int

	stalled    int
	goalPlaced bool
	cycles     int
}

// NewGenerator prepares a generator for a grid of the requested dimensions.
// A nil rng falls back to a time-seeded source; pass a seeded one for
// reproducible mazes.
func NewGenerator(width, height int, multipleSolutions bool, rng *rand.Rand) (*Generator, error) {
	grid, err := NewGrid(width, height)
	if err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{
		grid:              grid,
		rng:               rng,
		multipleSolutions: multipleSolutions,
		inMaze:            make(map[Position]struct{}),
	}, nil
}

// Grid exposes the generator's grid. It is mutated by Step until the
// complete event has been emitted and must be treated as read-only after.
func (g *Generator) Grid() *Grid {
	return g.grid
}

// Done reports whether the event stream has been exhausted.
func (g *Generator) Done() bool {
	return g.state == stateDone
}

// GoalPlaced reports whether a goal cell was set. Placement can only fail
// on a degenerate single-passage maze; callers must treat such a maze as
// unsolvable.
func (g *Generator) GoalPlaced() bool {
	return g.goalPlaced
}

// StalledWalks counts random walks abandoned after exceeding the step
// bound.
func (g *Generator) StalledWalks() int {
	return g.stalled
}

// CyclesAdded counts the walls cleared by multiple-solution augmentation.
func (g *Generator) CyclesAdded() int {
	return g.cycles
}

// Step advances generation by one state-machine transition and returns the
// resulting event. ok is false once generation has completed and the
// stream is exhausted.
func (g *Generator) Step() (Event, bool) {
	switch g.state {
	case stateInitial:
		start := Position{Row: 1, Col: 1}
		g.grid.Set(start, Open)
		g.inMaze[start] = struct{}{}
		g.remaining = g.remainingCells()
		g.state = stateWalkStart
		if len(g.remaining) == 0 {
			g.state = stateFinish
		}
		return Event{Grid: g.grid, Phase: PhaseInitial, Cell: &start}, true

	case stateWalkStart:
		g.current = g.remaining[g.rng.Intn(len(g.remaining))]
		g.path = []Position{g.current}
		g.walkSteps = 0
		g.state = stateWalking
		cell := g.current
		return Event{Grid: g.grid, Phase: PhaseWalkStart, Cell: &cell}, true

	case stateWalking:
		return g.walkStep()

	case stateAddingPath:
		return g.addStep()

	case statePathComplete:
		g.remaining = g.remainingCells()
		g.state = stateWalkStart
		if len(g.remaining) == 0 {
			g.state = stateFinish
		}
		return Event{Grid: g.grid, Phase: PhasePathComplete}, true

	case stateFinish:
		g.finish()
		g.state = stateDone
		return Event{Grid: g.grid, Phase: PhaseComplete}, true
	}
	return Event{}, false
}

// Run drains the event stream and returns the finished grid.
func (g *Generator) Run() *Grid {
	for {
		if _, ok := g.Step(); !ok {
			return g.grid
		}
	}
}

// walkStep performs one move of the current loop-erased random walk.
func (g *Generator) walkStep() (Event, bool) {
	neighbors := g.grid.CoarseNeighbors(g.current)
	if len(neighbors) == 0 {
		// Dead end: abandon the walk without clearing anything and let
		// the outer loop pick a new target.
		g.abandonWalk()
		return g.Step()
	}

	g.walkSteps++
	next := neighbors[g.rng.Intn(len(neighbors))]
	if i := slices.Index(g.path, next); i >= 0 {
		// Loop erasure: truncate back to the first occurrence so the
		// path stays simple.
		g.path = g.path[:i+1]
	} else {
		g.path = append(g.path, next)
	}
	g.current = next

	ev := Event{Grid: g.grid, Phase: PhaseWalking, Path: slices.Clone(g.path)}

	if _, reached := g.inMaze[g.current]; reached {
		g.state = stateAddingPath
		g.addIdx = 0
	} else if g.walkSteps >= maxWalkSteps {
		g.stalled++
		g.abandonWalk()
	}
	return ev, true
}

// abandonWalk discards the current walk. The grid is untouched since
// clearing only happens once a walk reaches the in-maze set.
func (g *Generator) abandonWalk() {
	g.path = nil
	g.state = stateWalkStart
}

// addStep clears one cell of the completed walk, together with the wall
// toward the next cell on the path, and commits it to the in-maze set.
func (g *Generator) addStep() (Event, bool) {
	cell := g.path[g.addIdx]
	g.grid.Set(cell, Open)
	g.inMaze[cell] = struct{}{}
	if g.addIdx < len(g.path)-1 {
		g.grid.Set(WallBetween(cell, g.path[g.addIdx+1]), Open)
	}

	g.addIdx++
	if g.addIdx == len(g.path) {
		g.path = nil
		g.state = statePathComplete
	}
	return Event{Grid: g.grid, Phase: PhaseAddingPath, Cell: &cell}, true
}

// finish marks the start cell, places the goal, and, when requested,
// injects cycles for multiple-solution mode.
func (g *Generator) finish() {
	start := Position{Row: 1, Col: 1}
	g.grid.Set(start, Start)
	g.goalPlaced = g.placeGoal(start)
	if g.multipleSolutions {
		g.cycles = AddCycles(g.grid, g.rng)
	}
}

// placeGoal sets the goal at the first reachable candidate, scanning the
// bottom-right passage lattice first and then every cell in descending
// order. Whenever placement succeeds a start-to-goal path is proven to
// exist. Falls back to the furthest reachable cell; fails only when that
// cell is the start itself (single-passage maze).
func (g *Generator) placeGoal(start Position) bool {
	reachable := ReachableFrom(g.grid, start)

	// Coarse sweep favoring the bottom-right region.
	for r := g.grid.Height - 2; r > 0; r -= 2 {
		for c := g.grid.Width - 2; c > 0; c -= 2 {
			if g.tryGoal(Position{Row: r, Col: c}, start, reachable) {
				return true
			}
		}
	}

	// Exhaustive scan of all interior cells.
	for r := g.grid.Height - 2; r > 0; r-- {
		for c := g.grid.Width - 2; c > 0; c-- {
			if g.tryGoal(Position{Row: r, Col: c}, start, reachable) {
				return true
			}
		}
	}

	if furthest := FurthestFrom(g.grid, start); furthest != start {
		g.grid.Set(furthest, Goal)
		return true
	}
	return false
}

func (g *Generator) tryGoal(p, start Position, reachable map[Position]struct{}) bool {
	if p == start {
		return false
	}
	if _, ok := reachable[p]; !ok {
		return false
	}
	g.grid.Set(p, Goal)
	return true
}

// remainingCells lists the passage cells not yet committed to the maze.
func (g *Generator) remainingCells() []Position {
	var out []Position
	for _, p := range g.grid.PassageCells() {
		if _, ok := g.inMaze[p]; !ok {
			out = append(out, p)
		}
	}
	return out
}
