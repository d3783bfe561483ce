package mazeapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/mazekit/mazekit-api/search"
	"github.com/mazekit/mazekit-api/service"
	"github.com/mazekit/mazekit-api/service/i"
	"github.com/sirupsen/logrus"
)

// Controller manages maze sessions over HTTP. Event streams are served on
// websockets: the client drives the generator or a solver by sending one
// message per step it wants, so rendering cadence stays with the renderer.
type Controller struct {
	sessions i.SessionManager
	defaults Defaults
	logger   logrus.FieldLogger
	upgrader websocket.Upgrader
}

// Defaults are the maze parameters used when a create request omits them.
type Defaults struct {
	Width             int
	Height            int
	MultipleSolutions bool
	Seed              int64
}

// NewController initializes a maze controller.
func NewController(sm i.SessionManager, defaults Defaults, logger logrus.FieldLogger) (*Controller, error) {
	return &Controller{
		sessions: sm,
		defaults: defaults,
		logger:   logger,
	}, nil
}

// Register registers the controller's routes.
func (c *Controller) Register(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.POST("", c.create)
		mazes.GET("/:ID", c.snapshot)
		mazes.GET("/:ID/generation", c.streamGeneration)
		mazes.POST("/:ID/solvers", c.attachSolvers)
		mazes.GET("/:ID/solvers/:strategy", c.streamSolver)
		mazes.DELETE("/:ID", c.remove)
	}
}

// create handles session creation requests.
func (c *Controller) create(ctx *gin.Context) {
	request := CreateMazeRequest{
		Width:             c.defaults.Width,
		Height:            c.defaults.Height,
		MultipleSolutions: c.defaults.MultipleSolutions,
		Seed:              c.defaults.Seed,
	}
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	id, err := c.sessions.Create(request.Width, request.Height, request.MultipleSolutions, request.Seed)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, CreateMazeResponse{ID: id})
}

// snapshot returns the current encoded grid of a session.
func (c *Controller) snapshot(ctx *gin.Context) {
	id, ok := c.sessionID(ctx)
	if !ok {
		return
	}

	rows, done, err := c.sessions.Snapshot(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "no session"})
		return
	}
	ctx.JSON(http.StatusOK, SnapshotResponse{Grid: rows, GenerationComplete: done})
}

// attachSolvers builds the four solver runs over a finished maze.
func (c *Controller) attachSolvers(ctx *gin.Context) {
	id, ok := c.sessionID(ctx)
	if !ok {
		return
	}

	err := c.sessions.AttachSolvers(id)
	switch {
	case err == nil:
		ctx.JSON(http.StatusCreated, gin.H{"strategies": service.Strategies})
	case errors.Is(err, service.ErrSessionNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "no session"})
	case errors.Is(err, service.ErrGenerationIncomplete), errors.Is(err, service.ErrUnsolvable):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// remove discards a session.
func (c *Controller) remove(ctx *gin.Context) {
	id, ok := c.sessionID(ctx)
	if !ok {
		return
	}

	if err := c.sessions.Remove(id); err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "no session"})
		return
	}
	ctx.Status(http.StatusNoContent)
}

// streamGeneration serves the generation event stream on a websocket.
// Every client message pulls one event; the final message has done set.
func (c *Controller) streamGeneration(ctx *gin.Context) {
	id, ok := c.sessionID(ctx)
	if !ok {
		return
	}
	if _, _, err := c.sessions.Snapshot(id); err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "no session"})
		return
	}

	conn, err := c.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.logger.WithField("error", err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	for {
		if !c.awaitPull(conn) {
			return
		}
		step, more, err := c.sessions.StepGeneration(id)
		if err != nil || !more {
			_ = conn.WriteJSON(GenerationEventResponse{Done: true})
			return
		}
		response := GenerationEventResponse{
			Phase: step.Phase,
			Cell:  step.Cell,
			Path:  step.Path,
			Grid:  step.Grid,
		}
		if err := conn.WriteJSON(response); err != nil {
			return
		}
	}
}

// streamSolver serves one strategy's solving event stream on a websocket.
func (c *Controller) streamSolver(ctx *gin.Context) {
	id, ok := c.sessionID(ctx)
	if !ok {
		return
	}
	strategy := ctx.Params.ByName("strategy")
	if _, _, err := c.sessions.Snapshot(id); err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "no session"})
		return
	}

	conn, err := c.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.logger.WithField("error", err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	for {
		if !c.awaitPull(conn) {
			return
		}
		ev, more, err := c.sessions.StepSolver(id, strategy)
		if !more {
			response := SolveEventResponse{Done: true}
			if err != nil {
				response.Error = err.Error()
			}
			_ = conn.WriteJSON(response)
			return
		}
		response := SolveEventResponse{Status: ev.Status, Solution: ev.Solution}
		if ev.Status == search.StatusExploring {
			cell := ev.Cell
			response.Cell = &cell
		}
		if err := conn.WriteJSON(response); err != nil {
			return
		}
	}
}

// awaitPull blocks until the client asks for the next event. Any text
// message counts as a pull; a read error or close ends the stream.
func (c *Controller) awaitPull(conn *websocket.Conn) bool {
	mt, _, err := conn.ReadMessage()
	if err != nil {
		if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			c.logger.WithField("error", err).Debug("websocket read ended")
		}
		return false
	}
	return mt == websocket.TextMessage
}

// sessionID parses the ID path parameter, replying 400 on a bad value.
func (c *Controller) sessionID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return uuid.Nil, false
	}
	return id, true
}
