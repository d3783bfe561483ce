// Package mazeapi exposes maze generation and solving to external
// renderers over HTTP and websockets.
package mazeapi

import (
	"github.com/google/uuid"
	"github.com/mazekit/mazekit-api/maze"
	"github.com/mazekit/mazekit-api/search"
)

// CreateMazeRequest asks for a new maze session. Zero-valued fields fall
// back to the server's configured defaults.
type CreateMazeRequest struct {
	Width             int   `json:"width"`
	Height            int   `json:"height"`
	MultipleSolutions bool  `json:"multiple_solutions"`
	Seed              int64 `json:"seed"`
}

// CreateMazeResponse carries the ID of the created session.
type CreateMazeResponse struct {
	ID uuid.UUID `json:"id"`
}

// SnapshotResponse carries the encoded grid and generation status.
type SnapshotResponse struct {
	Grid               []string `json:"grid"`
	GenerationComplete bool     `json:"generation_complete"`
}

// GenerationEventResponse is one generation event on the websocket
// stream. Done marks the end of the stream; the other fields are unset on
// that final message.
type GenerationEventResponse struct {
	Phase maze.Phase      `json:"phase,omitempty"`
	Cell  *maze.Position  `json:"cell,omitempty"`
	Path  []maze.Position `json:"path,omitempty"`
	Grid  []string        `json:"grid,omitempty"`
	Done  bool            `json:"done"`
}

// SolveEventResponse is one solving event on the websocket stream. Done
// marks the end of the stream; Error reports a failed search.
type SolveEventResponse struct {
	Status   search.Status    `json:"status,omitempty"`
	Cell     *maze.Position   `json:"cell,omitempty"`
	Solution *search.Solution `json:"solution,omitempty"`
	Done     bool             `json:"done"`
	Error    string           `json:"error,omitempty"`
}
