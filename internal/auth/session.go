package auth

import (
	"sync"

	"github.com/admin-console-api/internal/models"
)

// SessionStore holds the token -> session mapping shared by every guard
// instance. It has a single writer (the login/logout flow) and many
// read-only consumers; login must persist the session before handing the
// token to the client so the first guarded request never reads an absent
// session.
type SessionStore interface {
	Get(token string) (*models.Session, bool)
	Put(session models.Session)
	Delete(token string)
	Clear()
}

// memorySessionStore is the in-process SessionStore implementation
type memorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
}

// NewMemorySessionStore creates an empty in-memory session store
func NewMemorySessionStore() SessionStore {
	return &memorySessionStore{
		sessions: make(map[string]models.Session),
	}
}

// Get returns the session for a token, if present
func (s *memorySessionStore) Get(token string) (*models.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[token]
	if !ok {
		return nil, false
	}
	return &session, true
}

// Put stores a session keyed by its token. Sessions without a token are
// dropped rather than stored under the empty key.
func (s *memorySessionStore) Put(session models.Session) {
	if session.Token == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Token] = session
}

// Delete removes a single session
func (s *memorySessionStore) Delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

// Clear removes all sessions
func (s *memorySessionStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = make(map[string]models.Session)
}
