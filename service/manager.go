package service

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/mazekit/mazekit-api/search"
	"github.com/mazekit/mazekit-api/service/i"
	"github.com/sirupsen/logrus"
)

// ErrSessionNotFound is returned for operations on unknown session IDs.
var ErrSessionNotFound = errors.New("session not found")

// Manager is an in-memory registry of live maze sessions keyed by ID.
type Manager struct {
	sessions map[uuid.UUID]*Session
	logger   logrus.FieldLogger
	sync.RWMutex
}

// NewManager creates an empty session registry.
func NewManager(logger logrus.FieldLogger) (*Manager, error) {
	return &Manager{
		sessions: make(map[uuid.UUID]*Session),
		logger:   logger,
	}, nil
}

// Create opens a new session and returns its ID.
func (m *Manager) Create(width, height int, multipleSolutions bool, seed int64) (uuid.UUID, error) {
	session, err := newSession(width, height, multipleSolutions, seed)
	if err != nil {
		return uuid.Nil, err
	}

	m.Lock()
	m.sessions[session.id] = session
	m.Unlock()

	m.logger.WithFields(logrus.Fields{
		"session":            session.id,
		"width":              width,
		"height":             height,
		"multiple_solutions": multipleSolutions,
	}).Info("maze session created")
	return session.id, nil
}

// get looks up a session by ID.
func (m *Manager) get(id uuid.UUID) (*Session, error) {
	m.RLock()
	defer m.RUnlock()
	session, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Snapshot returns the session's encoded grid and whether generation has
// completed.
func (m *Manager) Snapshot(id uuid.UUID) ([]string, bool, error) {
	session, err := m.get(id)
	if err != nil {
		return nil, false, err
	}
	rows, done := session.snapshot()
	return rows, done, nil
}

// StepGeneration advances the session's generator by one event.
func (m *Manager) StepGeneration(id uuid.UUID) (i.GenerationStep, bool, error) {
	session, err := m.get(id)
	if err != nil {
		return i.GenerationStep{}, false, err
	}
	ev, more := session.stepGeneration()
	if !more && session.gen.StalledWalks() > 0 {
		m.logger.WithFields(logrus.Fields{
			"session": id,
			"stalled": session.gen.StalledWalks(),
		}).Debug("generation finished after abandoned walks")
	}
	return ev, more, nil
}

// AttachSolvers builds fresh solver runs over the session's finished grid.
func (m *Manager) AttachSolvers(id uuid.UUID) error {
	session, err := m.get(id)
	if err != nil {
		return err
	}
	if err := session.attachSolvers(); err != nil {
		return err
	}
	m.logger.WithField("session", id).Info("solvers attached")
	return nil
}

// StepSolver advances the named strategy's solver by one event.
func (m *Manager) StepSolver(id uuid.UUID, strategy string) (search.Event, bool, error) {
	session, err := m.get(id)
	if err != nil {
		return search.Event{}, false, err
	}
	return session.stepSolver(strategy)
}

// Remove discards the session.
func (m *Manager) Remove(id uuid.UUID) error {
	m.Lock()
	defer m.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}
