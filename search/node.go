/*
Package search solves generated mazes with four interchangeable frontier
strategies: depth-first (stack), breadth-first (queue), greedy best-first,
and A*. A Solver explores the maze one node expansion per Step call,
emitting exploring events until it either reconstructs a solution from the
goal node's parent chain or exhausts the frontier.
*/
package search

import "github.com/mazekit/mazekit-api/maze"

// Node pairs a cell with the node it was expanded from and the action that
// reached it. Nodes are never mutated after creation; the parent chain is
// walked backwards to reconstruct the solution path.
type Node struct {
	Cell   maze.Position
	Parent *Node
	Action string
	Cost   int // path cost from the start node, used by A*
}
