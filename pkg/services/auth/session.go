// Package auth holds the admin credentials of one application session.
package auth

import "sync"

// Session carries the admin bearer token. It is created when the application
// starts, handed to every client that needs it and cleared on logout.
type Session struct {
	mu    sync.RWMutex
	token string
}

func NewSession(token string) *Session {
	return &Session{token: token}
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

func (s *Session) Clear() {
	s.SetToken("")
}

func (s *Session) Authenticated() bool {
	return s.Token() != ""
}
