/*
Package maze provides the grid model for rectangular mazes and generates
them with Wilson's loop-erased random-walk algorithm.

A grid always has odd dimensions: passage cells occupy the odd/odd lattice
and every other cell is a wall cell representing the edge between two
adjacent passages. The Generator carves a uniform spanning tree over the
passage cells one observable step at a time, places a start and a
connectivity-verified goal, and can optionally inject cycles so the maze
admits more than one solution.
*/
package maze

import (
	"errors"
	"strings"
)

// Errors reported by grid construction and decoding.
var (
	ErrInvalidDimensions = errors.New("maze dimensions must be at least 3x3")
	ErrInvalidEncoding   = errors.New("invalid grid encoding")
)

const minDimension = 3

// Grid is a 2D field of cell kinds with odd width and height.
type Grid struct {
	Width  int
	Height int
	cells  [][]CellKind
}

// NewGrid allocates a grid entirely of walls. Even dimensions are rounded
// up to the next odd value; dimensions below 3 after rounding are rejected.
func NewGrid(width, height int) (*Grid, error) {
	width = oddify(width)
	height = oddify(height)
	if width < minDimension || height < minDimension {
		return nil, ErrInvalidDimensions
	}

	cells := make([][]CellKind, height)
	for r := range cells {
		cells[r] = make([]CellKind, width)
	}
	return &Grid{Width: width, Height: height, cells: cells}, nil
}

// oddify rounds an even value up to the next odd one.
func oddify(n int) int {
	if n%2 == 0 {
		return n + 1
	}
	return n
}

// InBounds reports whether p lies inside the grid.
func (g *Grid) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < g.Height && p.Col >= 0 && p.Col < g.Width
}

// At returns the kind of the cell at p.
func (g *Grid) At(p Position) CellKind {
	return g.cells[p.Row][p.Col]
}

// Set overwrites the kind of the cell at p.
func (g *Grid) Set(p Position, k CellKind) {
	g.cells[p.Row][p.Col] = k
}

// IsWall reports whether the cell at p is an uncleared wall.
func (g *Grid) IsWall(p Position) bool {
	return g.cells[p.Row][p.Col] == Wall
}

// PassageCells lists every cell on the passage lattice in row-major order.
func (g *Grid) PassageCells() []Position {
	cells := make([]Position, 0, (g.Width/2)*(g.Height/2))
	for r := 1; r < g.Height; r += 2 {
		for c := 1; c < g.Width; c += 2 {
			cells = append(cells, Position{Row: r, Col: c})
		}
	}
	return cells
}

// CoarseNeighbors returns the passage cells exactly two steps from p in one
// axis, regardless of whether the wall between them has been cleared. This
// is the candidate relation a random walk chooses from during generation.
// Neighbors on the outer boundary ring are excluded.
func (g *Grid) CoarseNeighbors(p Position) []Position {
	var out []Position
	for _, d := range coarseDirections {
		n := p.Add(d)
		if n.Row >= 1 && n.Row < g.Height-1 && n.Col >= 1 && n.Col < g.Width-1 {
			out = append(out, n)
		}
	}
	return out
}

// PassageNeighbors returns the passage cells adjacent to p in the carved
// maze: two steps away with the wall cell between them cleared.
func (g *Grid) PassageNeighbors(p Position) []Position {
	var out []Position
	for _, d := range coarseDirections {
		n := p.Add(d)
		if g.InBounds(n) && !g.IsWall(WallBetween(p, n)) {
			out = append(out, n)
		}
	}
	return out
}

// AdjacentOpen returns the directly adjacent cells (one step) that are not
// walls. Reachability and solving walk the grid at this granularity.
func (g *Grid) AdjacentOpen(p Position) []Position {
	var out []Position
	for _, d := range directions {
		n := p.Add(d)
		if g.InBounds(n) && !g.IsWall(n) {
			out = append(out, n)
		}
	}
	return out
}

// WallBetween returns the wall cell separating two passage cells that are
// two steps apart in one axis: the average of their coordinates.
func WallBetween(a, b Position) Position {
	return Position{Row: (a.Row + b.Row) / 2, Col: (a.Col + b.Col) / 2}
}

// Find returns the position of the first cell of the given kind in
// row-major order.
func (g *Grid) Find(k CellKind) (Position, bool) {
	for r := 0; r < g.Height; r++ {
		for c := 0; c < g.Width; c++ {
			if g.cells[r][c] == k {
				return Position{Row: r, Col: c}, true
			}
		}
	}
	return Position{}, false
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([][]CellKind, g.Height)
	for r := range cells {
		cells[r] = make([]CellKind, g.Width)
		copy(cells[r], g.cells[r])
	}
	return &Grid{Width: g.Width, Height: g.Height, cells: cells}
}

// Encode renders the grid as one string per row using the single-symbol
// cell encoding. Decode reproduces the grid bit-exactly from this form.
func (g *Grid) Encode() []string {
	rows := make([]string, g.Height)
	for r := 0; r < g.Height; r++ {
		var b strings.Builder
		for c := 0; c < g.Width; c++ {
			b.WriteRune(g.cells[r][c].Rune())
		}
		rows[r] = b.String()
	}
	return rows
}

// Decode rebuilds a grid from its encoded row strings. Encodings with
// even dimensions are rejected, since a grid's width and height are
// always odd.
func Decode(rows []string) (*Grid, error) {
	if len(rows) < minDimension || len(rows)%2 == 0 {
		return nil, ErrInvalidEncoding
	}
	width := len(rows[0])
	if width < minDimension || width%2 == 0 {
		return nil, ErrInvalidEncoding
	}

	cells := make([][]CellKind, len(rows))
	for r, row := range rows {
		if len(row) != width {
			return nil, ErrInvalidEncoding
		}
		cells[r] = make([]CellKind, width)
		for c, sym := range row {
			kind, err := kindForRune(sym)
			if err != nil {
				return nil, err
			}
			cells[r][c] = kind
		}
	}
	return &Grid{Width: width, Height: len(rows), cells: cells}, nil
}

// String provides a textual representation of the grid.
func (g *Grid) String() string {
	return strings.Join(g.Encode(), "\n")
}
