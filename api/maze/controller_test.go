package mazeapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mazekit/mazekit-api/service"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	manager, err := service.NewManager(logger)
	require.NoError(t, err)

	defaults := Defaults{Width: 11, Height: 9, Seed: 7}
	controller, err := NewController(manager, defaults, logger)
	require.NoError(t, err)

	engine := gin.New()
	controller.Register(engine.Group("/api/v1"))
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func createSession(t *testing.T, engine *gin.Engine, body any) string {
	t.Helper()
	rec := doJSON(t, engine, http.MethodPost, "/api/v1/mazes", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var response CreateMazeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	return response.ID.String()
}

func TestCreateMaze(t *testing.T) {
	engine := testEngine(t)

	t.Run("uses defaults with an empty body", func(t *testing.T) {
		id := createSession(t, engine, nil)

		rec := doJSON(t, engine, http.MethodGet, "/api/v1/mazes/"+id, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var snapshot SnapshotResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snapshot))
		assert.False(t, snapshot.GenerationComplete)
		assert.Len(t, snapshot.Grid, 9)
		assert.Len(t, snapshot.Grid[0], 11)
	})

	t.Run("honors requested dimensions", func(t *testing.T) {
		id := createSession(t, engine, CreateMazeRequest{Width: 5, Height: 5, Seed: 3})

		rec := doJSON(t, engine, http.MethodGet, "/api/v1/mazes/"+id, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var snapshot SnapshotResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snapshot))
		assert.Len(t, snapshot.Grid, 5)
	})

	t.Run("rejects invalid dimensions", func(t *testing.T) {
		rec := doJSON(t, engine, http.MethodPost, "/api/v1/mazes", CreateMazeRequest{Width: 1, Height: 1})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestSessionRoutes(t *testing.T) {
	engine := testEngine(t)
	id := createSession(t, engine, CreateMazeRequest{Width: 5, Height: 5, Seed: 3})

	t.Run("solvers conflict before generation completes", func(t *testing.T) {
		rec := doJSON(t, engine, http.MethodPost, fmt.Sprintf("/api/v1/mazes/%s/solvers", id), nil)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("invalid session id", func(t *testing.T) {
		rec := doJSON(t, engine, http.MethodGet, "/api/v1/mazes/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown session id", func(t *testing.T) {
		rec := doJSON(t, engine, http.MethodGet, "/api/v1/mazes/00000000-0000-0000-0000-000000000001", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("delete removes the session", func(t *testing.T) {
		rec := doJSON(t, engine, http.MethodDelete, "/api/v1/mazes/"+id, nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		rec = doJSON(t, engine, http.MethodGet, "/api/v1/mazes/"+id, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
