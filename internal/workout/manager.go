package workout

import (
	"errors"
	"sync"

	"ironlog/workout-app/internal/domain"
)

var (
	ErrSessionActive   = errors.New("another session is already active")
	ErrSessionNotFound = errors.New("no active session")
)

// Manager keeps at most one session per user. Terminal sessions are discarded
// on release; a new tracker is created for the next workout.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session // keyed by user ID hex
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
	}
}

// Begin creates a NotStarted session for the user's plan. Only one
// non-terminal session may exist per user at a time.
func (m *Manager) Begin(userID string, plan *domain.Plan) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.sessions[userID]; ok {
		switch existing.State() {
		case StateNotStarted, StateInProgress:
			return nil, ErrSessionActive
		}
	}

	session := NewSession(plan)
	m.sessions[userID] = session
	return session, nil
}

// Get returns the user's current session.
func (m *Manager) Get(userID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[userID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Release drops the user's session. Callers release after the session reached
// a terminal state; the tracker instance is not reused.
func (m *Manager) Release(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}
