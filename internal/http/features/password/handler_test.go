package password

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/VamsiGavva/Qa-monitor/internal/auth"
	"github.com/VamsiGavva/Qa-monitor/internal/repository"
)

func newTestHandler(t *testing.T, exposeResetToken bool) (*Handler, *auth.Service) {
	t.Helper()
	store := repository.NewMemoryStore()
	tokens := auth.NewTokenIssuer(auth.TokenConfig{
		Secret: []byte("test-secret-key-at-least-32-chars"),
		Issuer: "qa-monitor-test",
	})
	svc := auth.NewService(store, tokens)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(logger, svc, nil, "http://localhost:8080", exposeResetToken), svc
}

func post(t *testing.T, handlerFunc http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handlerFunc(rec, req)
	return rec
}

// activate walks a provisioned account through the first-login reset so it
// can log in normally.
func activate(t *testing.T, svc *auth.Service, email, initial, secret string) {
	t.Helper()
	ctx := context.Background()
	if _, err := svc.Provision(ctx, email, "Test User", initial); err != nil {
		t.Fatalf("Provision failed: %v", err)
	}
	result, err := svc.Authenticate(ctx, email, initial)
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if err := svc.CompletePasswordReset(ctx, result.ResetToken, secret, secret); err != nil {
		t.Fatalf("CompletePasswordReset failed: %v", err)
	}
}

func TestLogin_MissingFields(t *testing.T) {
	h, _ := newTestHandler(t, false)

	tests := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"missing password", `{"email":"a@x.com"}`},
		{"missing email", `{"password":"secret1"}`},
		{"invalid json", `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, h.Login, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestLogin_UniformFailureBody(t *testing.T) {
	h, svc := newTestHandler(t, false)
	activate(t, svc, "known@x.com", "initial1", "correct1")

	bodies := map[string]string{
		"unknown account": `{"email":"nobody@x.com","password":"whatever1"}`,
		"wrong password":  `{"email":"known@x.com","password":"correct1x"}`,
	}

	var reference string
	for name, body := range bodies {
		rec := post(t, h.Login, body)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: status = %d, want %d", name, rec.Code, http.StatusUnauthorized)
		}
		if reference == "" {
			reference = rec.Body.String()
			continue
		}
		if rec.Body.String() != reference {
			t.Errorf("%s: body %q differs from %q; failures must be indistinguishable",
				name, rec.Body.String(), reference)
		}
	}
}

func TestLogin_Success(t *testing.T) {
	h, svc := newTestHandler(t, false)
	activate(t, svc, "user@x.com", "initial1", "correct1")

	rec := post(t, h.Login, `{"email":"user@x.com","password":"correct1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.Data == nil || resp.Data.Token == "" {
		t.Errorf("response = %+v, want success with a bearer token", resp)
	}
	if resp.RequiresPasswordReset {
		t.Error("normal login must not require a password reset")
	}
}

func TestLogin_FirstLoginThenReset(t *testing.T) {
	h, svc := newTestHandler(t, false)
	if _, err := svc.Provision(context.Background(), "alice@x.com", "Alice", "hunter2x"); err != nil {
		t.Fatalf("Provision failed: %v", err)
	}

	rec := post(t, h.Login, `{"email":"alice@x.com","password":"hunter2x"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.RequiresPasswordReset || resp.ResetToken == "" {
		t.Fatalf("response = %+v, want a reset requirement with token", resp)
	}
	if resp.Data != nil {
		t.Error("first login must not carry a bearer token")
	}

	resetBody := fmt.Sprintf(`{"token":%q,"password":"newpass1","confirmPassword":"newpass1"}`, resp.ResetToken)
	rec = post(t, h.ResetPassword, resetBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("reset status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	rec = post(t, h.Login, `{"email":"alice@x.com","password":"newpass1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("second login status = %d, want %d", rec.Code, http.StatusOK)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data == nil || resp.Data.Token == "" {
		t.Error("login after reset should yield a bearer token")
	}
}

func TestForgotPassword_IdenticalMessage(t *testing.T) {
	h, svc := newTestHandler(t, false)
	activate(t, svc, "real@x.com", "initial1", "correct1")

	bodies := []string{
		`{"email":"real@x.com"}`,
		`{"email":"nobody@x.com"}`,
	}

	var reference string
	for _, body := range bodies {
		rec := post(t, h.RequestPasswordReset, body)
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		if reference == "" {
			reference = rec.Body.String()
			continue
		}
		if rec.Body.String() != reference {
			t.Errorf("body %q differs from %q; responses must not reveal account existence",
				rec.Body.String(), reference)
		}
	}
}

func TestForgotPassword_DiagnosticModeEchoesToken(t *testing.T) {
	h, svc := newTestHandler(t, true)
	activate(t, svc, "real@x.com", "initial1", "correct1")

	rec := post(t, h.RequestPasswordReset, `{"email":"real@x.com"}`)
	var resp ForgotPasswordResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ResetToken == "" {
		t.Error("diagnostic mode should echo the reset token for an existing account")
	}

	rec = post(t, h.RequestPasswordReset, `{"email":"nobody@x.com"}`)
	resp = ForgotPasswordResponse{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ResetToken != "" {
		t.Error("no token should be echoed for an unknown account")
	}
}

func TestForgotPassword_MissingEmail(t *testing.T) {
	h, _ := newTestHandler(t, false)

	rec := post(t, h.RequestPasswordReset, `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestResetPassword_Errors(t *testing.T) {
	h, _ := newTestHandler(t, false)

	tests := []struct {
		name string
		body string
	}{
		{"missing token", `{"password":"newpass1","confirmPassword":"newpass1"}`},
		{"missing passwords", `{"token":"tok"}`},
		{"mismatch", `{"token":"tok","password":"newpass1","confirmPassword":"newpass2"}`},
		{"too short", `{"token":"tok","password":"short","confirmPassword":"short"}`},
		{"unknown token", `{"token":"no-such-token","password":"newpass1","confirmPassword":"newpass1"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, h.ResetPassword, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d: %s", rec.Code, http.StatusBadRequest, rec.Body.String())
			}
		})
	}
}
