package search

import (
	"container/heap"

	"github.com/mazekit/mazekit-api/maze"
)

// Frontier holds the not-yet-expanded search nodes. Its removal order is
// the only thing that differs between the four strategies.
type Frontier interface {
	Add(*Node)
	Empty() bool
	// RemoveNext pops the next node per the strategy's ordering. Callers
	// must check Empty first.
	RemoveNext() *Node
	// Contains reports whether a node for the cell is currently queued.
	Contains(maze.Position) bool
}

// StackFrontier removes the most recently added node first, yielding
// depth-first search.
type StackFrontier struct {
	nodes   []*Node
	members map[maze.Position]struct{}
}

// NewStackFrontier returns an empty LIFO frontier.
func NewStackFrontier() *StackFrontier {
	return &StackFrontier{members: make(map[maze.Position]struct{})}
}

// Add pushes a node onto the stack.
func (f *StackFrontier) Add(n *Node) {
	f.nodes = append(f.nodes, n)
	f.members[n.Cell] = struct{}{}
}

// Empty reports whether no nodes are queued.
func (f *StackFrontier) Empty() bool {
	return len(f.nodes) == 0
}

// RemoveNext pops the last-added node.
func (f *StackFrontier) RemoveNext() *Node {
	n := f.nodes[len(f.nodes)-1]
	f.nodes = f.nodes[:len(f.nodes)-1]
	delete(f.members, n.Cell)
	return n
}

// Contains reports whether the cell is queued.
func (f *StackFrontier) Contains(p maze.Position) bool {
	_, ok := f.members[p]
	return ok
}

// QueueFrontier removes the least recently added node first, yielding
// breadth-first search.
type QueueFrontier struct {
	StackFrontier
}

// NewQueueFrontier returns an empty FIFO frontier.
func NewQueueFrontier() *QueueFrontier {
	return &QueueFrontier{StackFrontier{members: make(map[maze.Position]struct{})}}
}

// RemoveNext pops the earliest-added node.
func (f *QueueFrontier) RemoveNext() *Node {
	n := f.nodes[0]
	f.nodes = f.nodes[1:]
	delete(f.members, n.Cell)
	return n
}

// Manhattan returns the sum of absolute row and column differences between
// two cells. On a 4-connected unweighted grid it is admissible and
// consistent, so A* paths are shortest.
func Manhattan(a, b maze.Position) int {
	return abs(a.Row-b.Row) + abs(a.Col-b.Col)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// scoredNode is a heap entry. seq is a monotone insertion counter so that
// equal-priority nodes pop earliest-inserted first, keeping search order
// deterministic.
type scoredNode struct {
	node     *Node
	priority int
	seq      int
}

type nodeHeap []scoredNode

func (h nodeHeap) Len() int { return len(h) }

func (h nodeHeap) Less(i, j int) bool {
	if h[i].priority != h[j].priority {
		return h[i].priority < h[j].priority
	}
	return h[i].seq < h[j].seq
}

func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *nodeHeap) Push(x any) { *h = append(*h, x.(scoredNode)) }

func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	entry := old[n-1]
	*h = old[:n-1]
	return entry
}

// priorityFrontier is the shared heap machinery behind the greedy and A*
// frontiers; score computes a node's priority at insertion time.
type priorityFrontier struct {
	heap    nodeHeap
	members map[maze.Position]struct{}
	seq     int
	score   func(*Node) int
}

func (f *priorityFrontier) Add(n *Node) {
	heap.Push(&f.heap, scoredNode{node: n, priority: f.score(n), seq: f.seq})
	f.seq++
	f.members[n.Cell] = struct{}{}
}

func (f *priorityFrontier) Empty() bool {
	return f.heap.Len() == 0
}

func (f *priorityFrontier) RemoveNext() *Node {
	entry := heap.Pop(&f.heap).(scoredNode)
	delete(f.members, entry.node.Cell)
	return entry.node
}

func (f *priorityFrontier) Contains(p maze.Position) bool {
	_, ok := f.members[p]
	return ok
}

// GreedyFrontier removes the node with the minimum Manhattan distance to
// the goal first, yielding greedy best-first search.
type GreedyFrontier struct {
	priorityFrontier
}

// NewGreedyFrontier returns an empty frontier ordered by estimated
// distance to goal.
func NewGreedyFrontier(goal maze.Position) *GreedyFrontier {
	f := &GreedyFrontier{priorityFrontier{members: make(map[maze.Position]struct{})}}
	f.score = func(n *Node) int { return Manhattan(n.Cell, goal) }
	return f
}

// AStarFrontier removes the node with the minimum path cost plus Manhattan
// distance to the goal first, yielding A* search.
type AStarFrontier struct {
	priorityFrontier
}

// NewAStarFrontier returns an empty frontier ordered by cost so far plus
// estimated remaining distance.
func NewAStarFrontier(goal maze.Position) *AStarFrontier {
	f := &AStarFrontier{priorityFrontier{members: make(map[maze.Position]struct{})}}
	f.score = func(n *Node) int { return n.Cost + Manhattan(n.Cell, goal) }
	return f
}
