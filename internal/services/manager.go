package services

import (
	"errors"
	"sync"

	"route-planner-service/internal/ports"
)

// ErrSessionNotFound reports an unknown or already-deleted session id.
var ErrSessionNotFound = errors.New("session not found")

// SessionManager creates and tracks live sessions. Each session owns
// its own state; the manager only maps ids to sessions. Safe for
// concurrent use.
type SessionManager struct {
	source    ports.SheetSource
	optimizer ports.RouteOptimizer

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewSessionManager(source ports.SheetSource, optimizer ports.RouteOptimizer) *SessionManager {
	return &SessionManager{
		source:    source,
		optimizer: optimizer,
		sessions:  make(map[string]*Session),
	}
}

func (m *SessionManager) Create() *Session {
	s := NewSession(m.source, m.optimizer)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID()] = s
	return s
}

func (m *SessionManager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (m *SessionManager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}

func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
