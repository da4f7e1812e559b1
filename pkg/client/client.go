// Package client is the Go client for the QA Monitor authentication API.
// It holds the current bearer token in a Session and attaches it to
// authenticated requests.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Client calls the authentication endpoints and keeps the Session current.
type Client struct {
	baseURL string
	http    *http.Client
	session *Session
}

// New creates a client for the given base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		session: NewSession(),
	}
}

// Session returns the client's session state holder.
func (c *Client) Session() *Session {
	return c.session
}

// LoginOutcome is the result of a Login call. When RequiresPasswordReset is
// true no bearer token was stored and ResetToken must be used to complete a
// password reset before logging in again.
type LoginOutcome struct {
	RequiresPasswordReset bool
	ResetToken            string
}

type apiResponse struct {
	Success               bool   `json:"success"`
	Error                 string `json:"error"`
	Message               string `json:"message"`
	RequiresPasswordReset bool   `json:"requiresPasswordReset"`
	ResetToken            string `json:"resetToken"`
	Data                  struct {
		Token string `json:"token"`
	} `json:"data"`
}

// Login authenticates and stores the bearer token in the Session, or
// reports the first-login reset requirement.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginOutcome, error) {
	c.session.setLoading(true)
	defer c.session.setLoading(false)

	resp, err := c.post(ctx, "/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		c.session.SetError(err.Error())
		return nil, err
	}

	if resp.RequiresPasswordReset {
		return &LoginOutcome{
			RequiresPasswordReset: true,
			ResetToken:            resp.ResetToken,
		}, nil
	}

	c.session.SetToken(resp.Data.Token)
	return &LoginOutcome{}, nil
}

// RequestPasswordReset asks for a reset link and returns the server's
// generic confirmation message.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	c.session.setLoading(true)
	defer c.session.setLoading(false)

	resp, err := c.post(ctx, "/forgot-password", map[string]string{"email": email})
	if err != nil {
		c.session.SetError(err.Error())
		return "", err
	}
	return resp.Message, nil
}

// CompletePasswordReset submits a reset token with the new password.
func (c *Client) CompletePasswordReset(ctx context.Context, token, password, confirm string) error {
	c.session.setLoading(true)
	defer c.session.setLoading(false)

	if _, err := c.post(ctx, "/reset-password", map[string]string{
		"token":           token,
		"password":        password,
		"confirmPassword": confirm,
	}); err != nil {
		c.session.SetError(err.Error())
		return err
	}
	return nil
}

// Profile is the authenticated account as returned by the server.
type Profile struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	IsFirstLogin bool   `json:"isFirstLogin"`
}

// Me fetches the authenticated account, attaching the session's bearer token.
func (c *Client) Me(ctx context.Context) (*Profile, error) {
	token := c.session.Token()
	if token == "" {
		return nil, errors.New("not authenticated")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/me", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	var body struct {
		Success bool    `json:"success"`
		Error   string  `json:"error"`
		Data    Profile `json:"data"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if !body.Success {
		if res.StatusCode == http.StatusUnauthorized {
			c.session.Clear()
		}
		return nil, errors.New(body.Error)
	}
	return &body.Data, nil
}

// Logout drops the session state. Purely local; bearer tokens expire
// server-side on their own.
func (c *Client) Logout() {
	c.session.Clear()
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) (*apiResponse, error) {
	buf, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	var body apiResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if !body.Success {
		if body.Error == "" {
			body.Error = fmt.Sprintf("request failed with status %d", res.StatusCode)
		}
		return nil, errors.New(body.Error)
	}
	return &body, nil
}
