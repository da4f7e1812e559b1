package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSession_TokenLifecycle(t *testing.T) {
	s := NewSession()

	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.Token())

	s.SetError("login failed")
	assert.Equal(t, "login failed", s.LastError())

	s.SetToken("bearer-token")
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "bearer-token", s.Token())
	assert.Empty(t, s.LastError(), "storing a token clears the previous error")

	s.Clear()
	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.Token())
	assert.False(t, s.Loading())
}

func TestSession_RouteFor(t *testing.T) {
	tests := []struct {
		name  string
		token string
		path  string
		want  string
	}{
		{"unauthenticated to protected page", "", "/executions", LoginRoute},
		{"unauthenticated to login", "", LoginRoute, LoginRoute},
		{"authenticated to protected page", "tok", "/executions", "/executions"},
		{"authenticated away from login", "tok", LoginRoute, "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession()
			if tt.token != "" {
				s.SetToken(tt.token)
			}
			assert.Equal(t, tt.want, s.RouteFor(tt.path))
		})
	}
}
