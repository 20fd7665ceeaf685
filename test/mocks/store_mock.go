package mocks

import (
	"context"
	"sync"

	"github.com/Tarush5253/swasthya-setu/internal/core/ports"
)

// MockSessionStore implements ports.SessionStore for testing.
// It keeps sessions in memory and tracks every call so tests can verify that
// token and user are always written and cleared together.
type MockSessionStore struct {
	mu sync.RWMutex

	sessions map[string]ports.Session

	// Call tracking for verification
	SaveCalls   []string
	LoadCalls   []string
	DeleteCalls []string

	// Error injection for testing error scenarios
	SaveError   error
	LoadError   error
	DeleteError error
}

var _ ports.SessionStore = (*MockSessionStore)(nil)

func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{sessions: make(map[string]ports.Session)}
}

// Seed adds a session for test setup.
func (m *MockSessionStore) Seed(sid string, sess ports.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sid] = sess
}

// Stored returns the session currently cached under sid, if any.
func (m *MockSessionStore) Stored(sid string) (ports.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[sid]
	return sess, ok
}

func (m *MockSessionStore) Save(ctx context.Context, sid string, sess ports.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SaveCalls = append(m.SaveCalls, sid)

	if m.SaveError != nil {
		return m.SaveError
	}
	m.sessions[sid] = sess
	return nil
}

func (m *MockSessionStore) Load(ctx context.Context, sid string) (*ports.Session, error) {
	m.mu.Lock()
	m.LoadCalls = append(m.LoadCalls, sid)
	m.mu.Unlock()

	if m.LoadError != nil {
		return nil, m.LoadError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	sess, ok := m.sessions[sid]
	if !ok {
		return nil, ports.ErrSessionNotFound
	}
	return &sess, nil
}

func (m *MockSessionStore) Delete(ctx context.Context, sid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DeleteCalls = append(m.DeleteCalls, sid)

	if m.DeleteError != nil {
		return m.DeleteError
	}
	delete(m.sessions, sid)
	return nil
}
