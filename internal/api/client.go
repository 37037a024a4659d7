// Package api is the client for the bewell backend: registration, login,
// photo-metadata upload, and the explore feed.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bewellhq/bewell/internal/models"
)

// ErrNotAuthenticated is returned by calls that need a stored token when none
// is present.
var ErrNotAuthenticated = errors.New("not logged in")

// Client talks to the bewell API. Successful logins persist the token through
// the TokenStore so later runs stay authenticated.
type Client struct {
	baseURL string
	tokens  TokenStore
	http    *http.Client
}

func NewClient(baseURL string, tokens TokenStore) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type credentials struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// NormalizeEmail trims whitespace and strips one leading and one trailing
// single or double quote, each independently, so an unbalanced quote is
// removed too. Some clients historically submitted quoted emails; login
// behavior depends on this cleanup happening before the request.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	if len(email) > 0 && (email[0] == '"' || email[0] == '\'') {
		email = email[1:]
	}
	if n := len(email); n > 0 && (email[n-1] == '"' || email[n-1] == '\'') {
		email = email[:n-1]
	}
	return email
}

// Register creates an account and stores the returned token.
func (c *Client) Register(ctx context.Context, name, email, password string) (models.User, error) {
	return c.authRequest(ctx, "/api/users/register", credentials{
		Name:     name,
		Email:    NormalizeEmail(email),
		Password: password,
	}, "registration failed")
}

// Login authenticates and stores the returned token.
func (c *Client) Login(ctx context.Context, email, password string) (models.User, error) {
	return c.authRequest(ctx, "/api/users/login", credentials{
		Email:    NormalizeEmail(email),
		Password: password,
	}, "login failed")
}

func (c *Client) authRequest(ctx context.Context, path string, creds credentials, fallback string) (models.User, error) {
	var user models.User
	if err := c.post(ctx, path, "", creds, &user, fallback); err != nil {
		return models.User{}, err
	}
	if user.Token == "" {
		return models.User{}, errors.New("invalid response from server")
	}
	if err := c.tokens.Save(user.Token); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Logout discards the stored token. The server keeps no session state.
func (c *Client) Logout() error {
	return c.tokens.Clear()
}

// CurrentUser returns the authenticated user, or nil if no valid token is
// stored. Failures are not surfaced; an unreachable server just means the
// session starts logged out.
func (c *Client) CurrentUser(ctx context.Context) *models.User {
	token, err := c.tokens.Load()
	if err != nil || token == "" {
		return nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/users/me", nil)
	if err != nil {
		return nil
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil
	}
	var user models.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil
	}
	return &user
}

// UploadPhoto sends today's photo metadata to the server.
func (c *Client) UploadPhoto(ctx context.Context, url, caption string) error {
	token, err := c.tokens.Load()
	if err != nil {
		return err
	}
	if token == "" {
		return ErrNotAuthenticated
	}
	body := struct {
		URL     string `json:"url"`
		Caption string `json:"caption"`
	}{URL: url, Caption: caption}
	return c.post(ctx, "/api/users/upload-photo", token, body, nil, "photo upload failed")
}

// Feed fetches the explore feed.
func (c *Client) Feed(ctx context.Context) ([]models.Post, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/posts", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.New("no response from server, please check your connection")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp, "failed to load feed")
	}
	var posts []models.Post
	if err := json.NewDecoder(resp.Body).Decode(&posts); err != nil {
		return nil, fmt.Errorf("invalid response from server: %w", err)
	}
	return posts, nil
}

func (c *Client) post(ctx context.Context, path, token string, body, out any, fallback string) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return errors.New("no response from server, please check your connection")
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiError(resp, fallback)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("invalid response from server: %w", err)
		}
	}
	return nil
}

// apiError extracts the server's human-readable message, falling back to a
// generic one so the user always sees something actionable.
func apiError(resp *http.Response, fallback string) error {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Message != "" {
		return errors.New(payload.Message)
	}
	return errors.New(fallback)
}
