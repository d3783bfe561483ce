package maze

import "math/rand"

// AddCycles clears a random sample of the walls that separate two already
// open cells, turning the spanning tree into a graph with cycles so that
// some cell pairs gain alternate paths. Every candidate wall joins two
// cells that are already mutually reachable, so reachability can only
// grow. About an eighth of the candidates are removed; the count of
// cleared walls is returned.
func AddCycles(g *Grid, rng *rand.Rand) int {
	candidates := cycleCandidates(g)

	remove := len(candidates) / 8
	if remove == 0 {
		return 0
	}

	// Sample without replacement.
	for _, i := range rng.Perm(len(candidates))[:remove] {
		g.Set(candidates[i], Open)
	}
	return remove
}

// cycleCandidates collects wall cells with open cells on both sides,
// vertically or horizontally.
func cycleCandidates(g *Grid) []Position {
	var out []Position

	// Walls between vertically adjacent passages.
	for r := 2; r < g.Height-1; r += 2 {
		for c := 1; c < g.Width-1; c += 2 {
			p := Position{Row: r, Col: c}
			if g.IsWall(p) && !g.IsWall(Position{Row: r - 1, Col: c}) && !g.IsWall(Position{Row: r + 1, Col: c}) {
				out = append(out, p)
			}
		}
	}

	// Walls between horizontally adjacent passages.
	for r := 1; r < g.Height-1; r += 2 {
		for c := 2; c < g.Width-1; c += 2 {
			p := Position{Row: r, Col: c}
			if g.IsWall(p) && !g.IsWall(Position{Row: r, Col: c - 1}) && !g.IsWall(Position{Row: r, Col: c + 1}) {
				out = append(out, p)
			}
		}
	}
	return out
}
