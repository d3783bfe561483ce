package search

import (
	"errors"

	"github.com/mazekit/mazekit-api/maze"
)

// Errors reported by the solve-side view and the solver.
var (
	ErrNoStart    = errors.New("grid has no start cell")
	ErrNoGoal     = errors.New("grid has no goal cell")
	ErrNoSolution = errors.New("frontier exhausted before reaching goal")
)

// Status tags a solver event.
type Status string

const (
	// StatusExploring carries the cell just expanded.
	StatusExploring Status = "exploring"
	// StatusGoalReached is terminal and carries the solution.
	StatusGoalReached Status = "goal-reached"
)

// Event is one observable solving step.
type Event struct {
	Status   Status
	Cell     maze.Position
	Solution *Solution
}

// Solution is the reconstructed start-to-goal path: the actions taken and
// the cells visited after the start, in order.
type Solution struct {
	Actions []string        `json:"actions"`
	Cells   []maze.Position `json:"cells"`
}

// Maze is the solve-side view of a generated grid: a boolean wall matrix
// with start and goal coordinates, plus the mutable exploration state a
// single solver run accumulates.
type Maze struct {
	Width    int
	Height   int
	Walls    [][]bool
	Start    maze.Position
	Goal     maze.Position
	Explored map[maze.Position]struct{}
	Solution *Solution
}

// FromGrid derives a fresh solve-side view from a finished grid. The grid
// itself is never mutated by solving, so several views can share it.
func FromGrid(g *maze.Grid) (*Maze, error) {
	start, ok := g.Find(maze.Start)
	if !ok {
		return nil, ErrNoStart
	}
	goal, ok := g.Find(maze.Goal)
	if !ok {
		return nil, ErrNoGoal
	}

	walls := make([][]bool, g.Height)
	for r := range walls {
		walls[r] = make([]bool, g.Width)
		for c := range walls[r] {
			walls[r][c] = g.IsWall(maze.Position{Row: r, Col: c})
		}
	}
	return &Maze{
		Width:    g.Width,
		Height:   g.Height,
		Walls:    walls,
		Start:    start,
		Goal:     goal,
		Explored: make(map[maze.Position]struct{}),
	}, nil
}

func (m *Maze) inBounds(p maze.Position) bool {
	return p.Row >= 0 && p.Row < m.Height && p.Col >= 0 && p.Col < m.Width
}

// expandOrder fixes the neighbor expansion order: right, down, left, up.
var expandOrder = []struct {
	action string
	delta  maze.Position
}{
	{action: "right", delta: maze.Position{Row: 0, Col: 1}},
	{action: "down", delta: maze.Position{Row: 1, Col: 0}},
	{action: "left", delta: maze.Position{Row: 0, Col: -1}},
	{action: "up", delta: maze.Position{Row: -1, Col: 0}},
}

// Solver explores a maze from start toward goal, one node expansion per
// Step call. Each solver owns its maze view and frontier exclusively;
// solvers over the same grid share no mutable state.
type Solver struct {
	maze     *Maze
	frontier Frontier
	done     bool
	err      error
}

// NewSolver seeds the frontier with a root node at the maze's start cell.
func NewSolver(m *Maze, f Frontier) *Solver {
	f.Add(&Node{Cell: m.Start})
	return &Solver{maze: m, frontier: f}
}

// Step advances the search by one expansion. It returns an exploring event
// for each expanded cell and a terminal goal-reached event carrying the
// solution. ok is false once the stream has ended; after a failed search
// Err reports ErrNoSolution.
func (s *Solver) Step() (Event, bool) {
	if s.done {
		return Event{}, false
	}
	if s.frontier.Empty() {
		s.done = true
		s.err = ErrNoSolution
		return Event{}, false
	}

	node := s.frontier.RemoveNext()
	if node.Cell == s.maze.Goal {
		s.maze.Solution = reconstruct(node)
		s.done = true
		return Event{Status: StatusGoalReached, Cell: node.Cell, Solution: s.maze.Solution}, true
	}

	s.maze.Explored[node.Cell] = struct{}{}
	for _, dir := range expandOrder {
		next := node.Cell.Add(dir.delta)
		if !s.maze.inBounds(next) || s.maze.Walls[next.Row][next.Col] {
			continue
		}
		if _, seen := s.maze.Explored[next]; seen {
			continue
		}
		if s.frontier.Contains(next) {
			continue
		}
		s.frontier.Add(&Node{Cell: next, Parent: node, Action: dir.action, Cost: node.Cost + 1})
	}
	return Event{Status: StatusExploring, Cell: node.Cell}, true
}

// Run drains the event stream and returns the solution, or ErrNoSolution.
func (s *Solver) Run() (*Solution, error) {
	for {
		if _, ok := s.Step(); !ok {
			break
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.maze.Solution, nil
}

// Done reports whether the event stream has ended.
func (s *Solver) Done() bool {
	return s.done
}

// Err returns ErrNoSolution after a search that exhausted its frontier,
// nil otherwise.
func (s *Solver) Err() error {
	return s.err
}

// reconstruct walks parent links from the goal node back to the root and
// reverses them into a start-to-goal solution.
func reconstruct(goal *Node) *Solution {
	var actions []string
	var cells []maze.Position
	for n := goal; n.Parent != nil; n = n.Parent {
		actions = append(actions, n.Action)
		cells = append(cells, n.Cell)
	}
	for i, j := 0, len(actions)-1; i < j; i, j = i+1, j-1 {
		actions[i], actions[j] = actions[j], actions[i]
		cells[i], cells[j] = cells[j], cells[i]
	}
	return &Solution{Actions: actions, Cells: cells}
}
