package auth

import (
	"context"
	"sync"
)

// InMemorySessionStore implements SessionStore for tests and local development.
type InMemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]Session
}

// NewInMemorySessionStore returns an empty in-memory session store.
func NewInMemorySessionStore() *InMemorySessionStore {
	return &InMemorySessionStore{sessions: make(map[string]Session)}
}

// Save persists the provided session record.
func (s *InMemorySessionStore) Save(_ context.Context, session Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.RefreshToken] = session
	return nil
}

// Find retrieves a session by refresh token.
func (s *InMemorySessionStore) Find(_ context.Context, refreshToken string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[refreshToken]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return session, nil
}

// Delete removes the session associated with the refresh token.
func (s *InMemorySessionStore) Delete(_ context.Context, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, refreshToken)
	return nil
}

// Has reports whether a refresh token exists. Useful for tests.
func (s *InMemorySessionStore) Has(refreshToken string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[refreshToken]
	return ok
}
