package maze

// ReachableFrom returns every cell reachable from start through cleared
// passages, start included. Standard breadth-first traversal over the
// one-step adjacency of non-wall cells.
func ReachableFrom(g *Grid, start Position) map[Position]struct{} {
	visited := map[Position]struct{}{start: {}}
	queue := []Position{start}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range g.AdjacentOpen(cur) {
			if _, seen := visited[n]; seen {
				continue
			}
			visited[n] = struct{}{}
			queue = append(queue, n)
		}
	}
	return visited
}

// FurthestFrom returns the cell with the maximum shortest-path distance
// from start, ties broken by last-discovered order. Used as the fallback
// goal position when no preferred candidate is reachable.
func FurthestFrom(g *Grid, start Position) Position {
	type entry struct {
		pos  Position
		dist int
	}

	visited := map[Position]struct{}{start: {}}
	queue := []entry{{pos: start}}
	furthest := start
	maxDist := 0

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.dist >= maxDist {
			maxDist = cur.dist
			furthest = cur.pos
		}
		for _, n := range g.AdjacentOpen(cur.pos) {
			if _, seen := visited[n]; seen {
				continue
			}
			visited[n] = struct{}{}
			queue = append(queue, entry{pos: n, dist: cur.dist + 1})
		}
	}
	return furthest
}
