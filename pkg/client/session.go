package client

import "sync"

// LoginRoute is the route unauthenticated users are gated to.
const LoginRoute = "/login"

// Session is the process-local holder of the current bearer token and
// derived authenticated state. It performs no network calls of its own;
// the Client populates it.
type Session struct {
	mu        sync.Mutex
	token     string
	lastError string
	loading   bool
}

// NewSession creates an empty, unauthenticated session.
func NewSession() *Session {
	return &Session{}
}

// SetToken stores a bearer token and clears any previous error.
func (s *Session) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.lastError = ""
}

// Clear drops the token and resets the session to its initial state.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.lastError = ""
	s.loading = false
}

// Token returns the current bearer token, or "" when absent.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// IsAuthenticated reports whether a bearer token is held.
func (s *Session) IsAuthenticated() bool {
	return s.Token() != ""
}

// SetError records the last error message shown to the user.
func (s *Session) SetError(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = message
}

// LastError returns the last recorded error message.
func (s *Session) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

func (s *Session) setLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
}

// Loading reports whether a request is in flight.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// RouteFor gates navigation: without a token every path redirects to the
// login route, and with one the login route redirects away.
func (s *Session) RouteFor(path string) string {
	if !s.IsAuthenticated() {
		return LoginRoute
	}
	if path == LoginRoute {
		return "/"
	}
	return path
}
