package session

import (
	"context"
	"sync"

	"github.com/Tarush5253/swasthya-setu/internal/core/ports"
)

// MemoryStore is an in-process SessionStore for tests and local development.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]ports.Session
}

var _ ports.SessionStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]ports.Session)}
}

func (s *MemoryStore) Save(ctx context.Context, sid string, sess ports.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sid] = sess
	return nil
}

func (s *MemoryStore) Load(ctx context.Context, sid string) (*ports.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[sid]
	if !ok {
		return nil, ports.ErrSessionNotFound
	}
	return &sess, nil
}

func (s *MemoryStore) Delete(ctx context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sid)
	return nil
}
