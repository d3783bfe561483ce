package maze

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// clearedWallCells counts non-wall cells off the passage lattice.
func clearedWallCells(g *Grid) int {
	count := 0
	for r := 0; r < g.Height; r++ {
		for c := 0; c < g.Width; c++ {
			p := Position{Row: r, Col: c}
			if !p.IsPassage() && !g.IsWall(p) {
				count++
			}
		}
	}
	return count
}

func TestGeneratorSpanningTree(t *testing.T) {
	sizes := []struct {
		w, h int
	}{
		{5, 5},
		{11, 9},
		{10, 8}, // rounds to 11x9
		{41, 31},
	}

	for _, size := range sizes {
		gen, err := NewGenerator(size.w, size.h, false, testRNG(42))
		require.NoError(t, err)
		grid := gen.Run()

		passages := grid.PassageCells()
		start := Position{Row: 1, Col: 1}

		// A spanning tree over n passage cells clears exactly n-1 walls.
		assert.Equal(t, len(passages)-1, clearedWallCells(grid))

		reachable := ReachableFrom(grid, start)
		for _, p := range passages {
			assert.Contains(t, reachable, p)
		}

		assert.Equal(t, Start, grid.At(start))
		assert.True(t, gen.GoalPlaced())
		goal, found := grid.Find(Goal)
		require.True(t, found)
		assert.Contains(t, reachable, goal)
		assert.NotEqual(t, start, goal)
	}
}

func TestGeneratorRequestedSizeKept(t *testing.T) {
	gen, err := NewGenerator(5, 5, false, testRNG(7))
	require.NoError(t, err)
	grid := gen.Run()
	assert.Equal(t, 5, grid.Width)
	assert.Equal(t, 5, grid.Height)
}

func TestGeneratorInvalidDimensions(t *testing.T) {
	_, err := NewGenerator(1, 1, false, testRNG(1))
	assert.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestGeneratorDegenerateSinglePassage(t *testing.T) {
	// A 3x3 grid has one passage cell, so no goal can be placed.
	gen, err := NewGenerator(3, 3, false, testRNG(1))
	require.NoError(t, err)
	grid := gen.Run()

	assert.Equal(t, Start, grid.At(Position{Row: 1, Col: 1}))
	assert.False(t, gen.GoalPlaced())
	_, found := grid.Find(Goal)
	assert.False(t, found)
}

func collectEvents(gen *Generator) []Event {
	var events []Event
	for {
		ev, ok := gen.Step()
		if !ok {
			return events
		}
		events = append(events, ev)
	}
}

func TestGeneratorEventStream(t *testing.T) {
	gen, err := NewGenerator(11, 9, false, testRNG(99))
	require.NoError(t, err)
	events := collectEvents(gen)
	require.NotEmpty(t, events)

	t.Run("starts with initial at (1,1) and ends with complete", func(t *testing.T) {
		first := events[0]
		assert.Equal(t, PhaseInitial, first.Phase)
		require.NotNil(t, first.Cell)
		assert.Equal(t, Position{Row: 1, Col: 1}, *first.Cell)

		assert.Equal(t, PhaseComplete, events[len(events)-1].Phase)
	})

	t.Run("stream is exhausted after complete", func(t *testing.T) {
		_, ok := gen.Step()
		assert.False(t, ok)
		assert.True(t, gen.Done())
	})

	t.Run("loop erasure keeps walk paths simple", func(t *testing.T) {
		var prev []Position
		for _, ev := range events {
			switch ev.Phase {
			case PhaseWalkStart:
				prev = nil
			case PhaseWalking:
				seen := make(map[Position]struct{}, len(ev.Path))
				for _, p := range ev.Path {
					_, dup := seen[p]
					assert.False(t, dup, "walk path revisits %v", p)
					seen[p] = struct{}{}
				}
				if prev != nil && len(ev.Path) <= len(prev) {
					// An erased loop truncates to a prefix of the
					// previous path.
					assert.Equal(t, prev[:len(ev.Path)], ev.Path)
				}
				prev = ev.Path
			default:
				prev = nil
			}
		}
	})

	t.Run("adding_path events cover every committed cell", func(t *testing.T) {
		added := make(map[Position]struct{})
		for _, ev := range events {
			if ev.Phase == PhaseAddingPath {
				require.NotNil(t, ev.Cell)
				added[*ev.Cell] = struct{}{}
			}
		}
		// Every passage cell except the initial one arrives via a path.
		for _, p := range gen.Grid().PassageCells() {
			if p == (Position{Row: 1, Col: 1}) {
				continue
			}
			assert.Contains(t, added, p)
		}
	})
}

func TestGeneratorDeterminism(t *testing.T) {
	const seed = 1234

	genA, err := NewGenerator(11, 9, false, testRNG(seed))
	require.NoError(t, err)
	genB, err := NewGenerator(11, 9, false, testRNG(seed))
	require.NoError(t, err)

	eventsA := collectEvents(genA)
	eventsB := collectEvents(genB)
	require.Equal(t, len(eventsA), len(eventsB))

	for i := range eventsA {
		assert.Equal(t, eventsA[i].Phase, eventsB[i].Phase)
		assert.Equal(t, eventsA[i].Cell, eventsB[i].Cell)
		assert.True(t, slices.Equal(eventsA[i].Path, eventsB[i].Path))
	}
	assert.Equal(t, genA.Grid().Encode(), genB.Grid().Encode())

	t.Run("different seed diverges", func(t *testing.T) {
		genC, err := NewGenerator(41, 31, false, testRNG(1))
		require.NoError(t, err)
		genD, err := NewGenerator(41, 31, false, testRNG(2))
		require.NoError(t, err)
		assert.NotEqual(t, genC.Run().Encode(), genD.Run().Encode())
	})
}
