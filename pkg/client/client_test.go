package client

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VamsiGavva/Qa-monitor/internal/auth"
	"github.com/VamsiGavva/Qa-monitor/internal/config"
	internalhttp "github.com/VamsiGavva/Qa-monitor/internal/http"
	"github.com/VamsiGavva/Qa-monitor/internal/repository"
)

// newTestServer runs the full HTTP stack against an in-memory store with a
// provisioned first-login account.
func newTestServer(t *testing.T) (*httptest.Server, *auth.Service) {
	t.Helper()

	store := repository.NewMemoryStore()
	tokens := auth.NewTokenIssuer(auth.TokenConfig{
		Secret: []byte("test-secret-key-at-least-32-chars"),
		Issuer: "qa-monitor-test",
	})
	svc := auth.NewService(store, tokens)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := internalhttp.NewRouter(internalhttp.RouterConfig{
		Logger:             logger,
		AuthService:        svc,
		ExposeResetToken:   true,
		MaxRequestBodySize: 1 << 20,
		RateLimit:          config.RateLimitConfig{Enabled: false},
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, svc
}

func TestClient_FirstLoginScenario(t *testing.T) {
	server, svc := newTestServer(t)
	ctx := context.Background()

	_, err := svc.Provision(ctx, "alice@x.com", "Alice", "hunter2x")
	require.NoError(t, err)

	c := New(server.URL)

	// First login: reset requirement, no token stored.
	outcome, err := c.Login(ctx, "alice@x.com", "hunter2x")
	require.NoError(t, err)
	require.True(t, outcome.RequiresPasswordReset)
	require.NotEmpty(t, outcome.ResetToken)
	assert.False(t, c.Session().IsAuthenticated())

	// Complete the reset and log in with the new secret.
	require.NoError(t, c.CompletePasswordReset(ctx, outcome.ResetToken, "newpass1", "newpass1"))

	outcome, err = c.Login(ctx, "alice@x.com", "newpass1")
	require.NoError(t, err)
	assert.False(t, outcome.RequiresPasswordReset)
	assert.True(t, c.Session().IsAuthenticated())

	// The stored bearer token is accepted by the protected endpoint.
	profile, err := c.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", profile.Email)
	assert.False(t, profile.IsFirstLogin)

	c.Logout()
	assert.False(t, c.Session().IsAuthenticated())
	_, err = c.Me(ctx)
	assert.Error(t, err, "Me requires an authenticated session")
}

func TestClient_LoginFailureSetsSessionError(t *testing.T) {
	server, _ := newTestServer(t)
	c := New(server.URL)

	_, err := c.Login(context.Background(), "nobody@x.com", "whatever1")
	require.Error(t, err)
	assert.Equal(t, "login failed", err.Error())
	assert.Equal(t, "login failed", c.Session().LastError())
	assert.False(t, c.Session().IsAuthenticated())
}

func TestClient_RequestPasswordReset(t *testing.T) {
	server, svc := newTestServer(t)
	ctx := context.Background()

	_, err := svc.Provision(ctx, "bob@x.com", "Bob", "initial1")
	require.NoError(t, err)

	c := New(server.URL)

	existing, err := c.RequestPasswordReset(ctx, "bob@x.com")
	require.NoError(t, err)
	unknown, err := c.RequestPasswordReset(ctx, "nobody@x.com")
	require.NoError(t, err)

	assert.Equal(t, existing, unknown, "confirmation message must not reveal account existence")
}

func TestClient_ResetValidationErrors(t *testing.T) {
	server, _ := newTestServer(t)
	c := New(server.URL)
	ctx := context.Background()

	err := c.CompletePasswordReset(ctx, "tok", "newpass1", "different1")
	require.Error(t, err)
	assert.Equal(t, "passwords do not match", err.Error())

	err = c.CompletePasswordReset(ctx, "bad-token", "newpass1", "newpass1")
	require.Error(t, err)
	assert.Equal(t, "invalid or expired reset token", err.Error())
}
