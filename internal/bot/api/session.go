package api

import "sync"

// Session holds the bearer token for the current client session. It is
// passed explicitly into the client rather than read from ambient state,
// so tests can construct authenticated and anonymous sessions at will.
type Session struct {
	mu    sync.RWMutex
	token string
}

func NewSession() *Session {
	return &Session{}
}

// SetToken stores the token obtained from login or register. An empty
// token logs the session out.
func (s *Session) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Authenticated reports whether persistence calls should be attempted.
// Search stays usable either way.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}
