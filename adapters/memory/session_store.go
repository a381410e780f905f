package memory

import (
	"context"
	"sort"
	"sync"

	"gamblelab/domain/core"
	"gamblelab/domain/experiment"
)

// SessionStore is an in-memory session registry. Sessions are never
// persisted; the log lives only until it is exported at session end.
// Safe for concurrent shells, though each session itself is driven
// strictly one decision at a time.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[core.SessionID]*experiment.Session
}

// NewSessionStore creates an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[core.SessionID]*experiment.Session)}
}

// Create registers a new session
func (s *SessionStore) Create(ctx context.Context, session *experiment.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return nil
}

// Get retrieves a session by ID
func (s *SessionStore) Get(ctx context.Context, id core.SessionID) (*experiment.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, core.ErrSessionNotFound
	}
	return session, nil
}

// Save persists updated session state
func (s *SessionStore) Save(ctx context.Context, session *experiment.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[session.ID]; !ok {
		return core.ErrSessionNotFound
	}
	s.sessions[session.ID] = session
	return nil
}

// Delete removes a session
func (s *SessionStore) Delete(ctx context.Context, id core.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return core.ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

// List returns all live sessions ordered by start time.
func (s *SessionStore) List(ctx context.Context) ([]*experiment.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*experiment.Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		out = append(out, session)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartedAt.Before(out[j].StartedAt)
	})
	return out, nil
}
