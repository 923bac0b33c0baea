// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/unisurveyal/surveyshelf/internal/httputil"
	"github.com/unisurveyal/surveyshelf/pkg/types"
)

// AuthClient talks to the Auth Service for the token lifecycle: register,
// login, logout, and profile reads/updates.
type AuthClient struct {
	BaseURL   string
	UserAgent string
	HTTP      *http.Client
}

// NewAuthClient builds an Auth Service client from config.
func NewAuthClient(cfg types.ServiceConfig) *AuthClient {
	return &AuthClient{
		BaseURL:   cfg.AuthURL,
		UserAgent: cfg.UserAgent,
		HTTP:      &http.Client{Timeout: cfg.Timeout},
	}
}

// Credentials is the token-plus-identity payload login and register return.
type Credentials struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	User        types.User `json:"user"`
}

func (a *AuthClient) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", a.UserAgent)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := httputil.DoWithRetry(ctx, a.HTTP, req, 0)
	if err != nil {
		return fmt.Errorf("auth service request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		io.Copy(io.Discard, resp.Body)
		return ErrUnauthorized
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("auth service returned HTTP %d", resp.StatusCode)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing auth service response: %w", err)
	}
	return nil
}

// Login exchanges username/password for a bearer token and the user identity.
func (a *AuthClient) Login(ctx context.Context, username, password string) (Credentials, error) {
	body := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{Username: username, Password: password}

	var creds Credentials
	if err := a.do(ctx, http.MethodPost, "/login", "", body, &creds); err != nil {
		return Credentials{}, err
	}
	return creds, nil
}

// RegisterRequest carries a new account's fields.
type RegisterRequest struct {
	Username       string   `json:"username"`
	Email          string   `json:"email"`
	Password       string   `json:"password"`
	Nickname       string   `json:"nickname,omitempty"`
	InterestFields []string `json:"interest_fields,omitempty"`
}

// Register creates an account and returns its first credentials.
func (a *AuthClient) Register(ctx context.Context, req RegisterRequest) (Credentials, error) {
	var creds Credentials
	if err := a.do(ctx, http.MethodPost, "/register", "", req, &creds); err != nil {
		return Credentials{}, err
	}
	return creds, nil
}

// Logout invalidates the token server-side. A failure is not fatal: the
// local session is torn down regardless.
func (a *AuthClient) Logout(ctx context.Context, token string) error {
	return a.do(ctx, http.MethodPost, "/logout", token, struct{}{}, nil)
}

// Me returns the identity behind a token; ErrUnauthorized when it is stale.
func (a *AuthClient) Me(ctx context.Context, token string) (types.User, error) {
	var user types.User
	if err := a.do(ctx, http.MethodGet, "/me", token, nil, &user); err != nil {
		return types.User{}, err
	}
	return user, nil
}

// UpdateProfile changes nickname and interest fields; the refreshed identity
// comes back so the local session can be kept current.
func (a *AuthClient) UpdateProfile(ctx context.Context, token, nickname string, interestFields []string) (types.User, error) {
	body := struct {
		Nickname       string   `json:"nickname,omitempty"`
		InterestFields []string `json:"interest_fields,omitempty"`
	}{Nickname: nickname, InterestFields: interestFields}

	var user types.User
	if err := a.do(ctx, http.MethodPut, "/user/profile", token, body, &user); err != nil {
		return types.User{}, err
	}
	return user, nil
}
