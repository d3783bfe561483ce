package maze

import "fmt"

// CellKind identifies what occupies a single grid cell.
type CellKind byte

const (
	Wall CellKind = iota // solid cell, or an unopened edge between two passages
	Open                 // cleared passage or cleared wall
	Start                // the solver's starting cell
	Goal                 // the solver's target cell
)

// Rune returns the single-symbol encoding of the cell kind.
func (k CellKind) Rune() rune {
	switch k {
	case Wall:
		return '#'
	case Open:
		return ' '
	case Start:
		return 'A'
	case Goal:
		return 'B'
	}
	return '?'
}

// kindForRune is the inverse of Rune.
func kindForRune(r rune) (CellKind, error) {
	switch r {
	case '#':
		return Wall, nil
	case ' ':
		return Open, nil
	case 'A':
		return Start, nil
	case 'B':
		return Goal, nil
	}
	return Wall, fmt.Errorf("%w: unknown cell symbol %q", ErrInvalidEncoding, r)
}

// Position addresses a cell by row and column.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Add returns the position offset by d.
func (p Position) Add(d Position) Position {
	return Position{Row: p.Row + d.Row, Col: p.Col + d.Col}
}

// IsPassage reports whether the position sits on the passage lattice
// (odd row and odd column). All other cells are wall cells.
func (p Position) IsPassage() bool {
	return p.Row%2 == 1 && p.Col%2 == 1
}

// cardinal step offsets, in the fixed expansion order used throughout:
// right, down, left, up.
var directions = []Position{
	{Row: 0, Col: 1},
	{Row: 1, Col: 0},
	{Row: 0, Col: -1},
	{Row: -1, Col: 0},
}

// coarseDirections are the two-cell jumps between neighboring passage
// cells, skipping over the wall cell that separates them.
var coarseDirections = []Position{
	{Row: 0, Col: 2},
	{Row: 2, Col: 0},
	{Row: 0, Col: -2},
	{Row: -2, Col: 0},
}
