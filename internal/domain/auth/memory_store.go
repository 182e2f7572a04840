package auth

import (
	"context"
	"sync"

	"ledgerpro/internal/core/apperror"
)

// MemorySessionStore keeps sessions in process memory. Used by tests and
// single-node setups without a database.
type MemorySessionStore struct {
	mu      sync.RWMutex
	byToken map[string]Session
}

// NewMemorySessionStore creates an empty in-memory store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{byToken: make(map[string]Session)}
}

func (m *MemorySessionStore) Create(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byToken[s.Token] = *s
	return nil
}

func (m *MemorySessionStore) Lookup(ctx context.Context, token string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.byToken[token]
	if !ok {
		return nil, apperror.NewNotFound("session", token)
	}
	out := s
	return &out, nil
}

func (m *MemorySessionStore) Destroy(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byToken[token]; !ok {
		return apperror.NewNotFound("session", token)
	}
	delete(m.byToken, token)
	return nil
}
