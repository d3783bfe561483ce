package service

import (
	"io"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/mazekit/mazekit-api/maze"
	"github.com/mazekit/mazekit-api/search"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testManager(t *testing.T) *Manager {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	m, err := NewManager(logger)
	require.NoError(t, err)
	return m
}

func runGeneration(t *testing.T, m *Manager, id uuid.UUID) {
	t.Helper()
	for {
		_, more, err := m.StepGeneration(id)
		require.NoError(t, err)
		if !more {
			return
		}
	}
}

func TestManagerLifecycle(t *testing.T) {
	m := testManager(t)

	id, err := m.Create(11, 9, false, 21)
	require.NoError(t, err)

	t.Run("snapshot before generation is all walls", func(t *testing.T) {
		rows, done, err := m.Snapshot(id)
		require.NoError(t, err)
		assert.False(t, done)
		assert.Len(t, rows, 9)
		assert.Equal(t, "###########", rows[0])
	})

	t.Run("solvers require a finished maze", func(t *testing.T) {
		assert.ErrorIs(t, m.AttachSolvers(id), ErrGenerationIncomplete)
	})

	runGeneration(t, m, id)

	t.Run("generation completes", func(t *testing.T) {
		rows, done, err := m.Snapshot(id)
		require.NoError(t, err)
		assert.True(t, done)

		grid, err := maze.Decode(rows)
		require.NoError(t, err)
		_, found := grid.Find(maze.Goal)
		assert.True(t, found)
	})

	t.Run("every strategy solves the maze", func(t *testing.T) {
		require.NoError(t, m.AttachSolvers(id))

		for _, strategy := range Strategies {
			var last search.Event
			for {
				ev, more, err := m.StepSolver(id, strategy)
				require.NoError(t, err)
				if !more {
					break
				}
				last = ev
			}
			assert.Equal(t, search.StatusGoalReached, last.Status, strategy)
			assert.NotNil(t, last.Solution, strategy)
		}
	})

	t.Run("unknown strategy", func(t *testing.T) {
		_, _, err := m.StepSolver(id, "dijkstra")
		assert.ErrorIs(t, err, ErrUnknownStrategy)
	})

	t.Run("remove ends the session", func(t *testing.T) {
		require.NoError(t, m.Remove(id))
		_, _, err := m.Snapshot(id)
		assert.ErrorIs(t, err, ErrSessionNotFound)
		assert.ErrorIs(t, m.Remove(id), ErrSessionNotFound)
	})
}

func TestConcurrentGenerationStepping(t *testing.T) {
	m := testManager(t)
	id, err := m.Create(21, 15, false, 17)
	require.NoError(t, err)

	// Two clients may drive the same session's generation at once; every
	// step must carry a stable encoded snapshot, never the live grid.
	var wg sync.WaitGroup
	for w := 0; w < 2; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				step, more, err := m.StepGeneration(id)
				if !assert.NoError(t, err) || !more {
					return
				}
				if !assert.Len(t, step.Grid, 15) {
					return
				}
				for _, row := range step.Grid {
					if !assert.Len(t, row, 21) {
						return
					}
				}
			}
		}()
	}
	wg.Wait()

	_, done, err := m.Snapshot(id)
	require.NoError(t, err)
	assert.True(t, done)
}

func TestManagerUnknownSession(t *testing.T) {
	m := testManager(t)
	id := uuid.New()

	_, _, err := m.Snapshot(id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, _, err = m.StepGeneration(id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, m.AttachSolvers(id), ErrSessionNotFound)
}

func TestManagerInvalidDimensions(t *testing.T) {
	m := testManager(t)
	_, err := m.Create(1, 1, false, 1)
	assert.ErrorIs(t, err, maze.ErrInvalidDimensions)
}

func TestSolverStepBeforeAttach(t *testing.T) {
	m := testManager(t)
	id, err := m.Create(5, 5, false, 2)
	require.NoError(t, err)
	runGeneration(t, m, id)

	_, _, err = m.StepSolver(id, StrategyBFS)
	assert.ErrorIs(t, err, ErrSolversNotAttached)
}

func TestAttachSolversResetsRuns(t *testing.T) {
	m := testManager(t)
	id, err := m.Create(9, 9, false, 13)
	require.NoError(t, err)
	runGeneration(t, m, id)
	require.NoError(t, m.AttachSolvers(id))

	// Partially run one solver, then re-attach: the run starts over.
	_, more, err := m.StepSolver(id, StrategyDFS)
	require.NoError(t, err)
	require.True(t, more)

	require.NoError(t, m.AttachSolvers(id))
	ev, more, err := m.StepSolver(id, StrategyDFS)
	require.NoError(t, err)
	require.True(t, more)
	assert.Equal(t, search.StatusExploring, ev.Status)
}
