package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bewellhq/bewell/internal/models"
	"github.com/bewellhq/bewell/internal/server/config"
	"github.com/bewellhq/bewell/internal/server/store"
)

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)

	cfg := &config.Config{JWTSecret: "test-secret", TokenTTL: time.Hour}
	srv := httptest.NewServer(New(cfg, st, log).Router())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url, token string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func registerUser(t *testing.T, srv *httptest.Server, name, email, password string) models.User {
	t.Helper()
	resp := postJSON(t, srv.URL+"/api/users/register", "", map[string]string{
		"name": name, "email": email, "password": password,
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register returned %d", resp.StatusCode)
	}
	var user models.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	return user
}

func TestRegister_ReturnsUserWithToken(t *testing.T) {
	srv := setupTestServer(t)

	user := registerUser(t, srv, "Ada", "ada@example.com", "hunter2")
	if user.Token == "" {
		t.Error("expected a token in the register response")
	}
	if user.Name != "Ada" || user.Email != "ada@example.com" {
		t.Errorf("unexpected user %+v", user)
	}
}

func TestRegister_DefaultsMissingFields(t *testing.T) {
	srv := setupTestServer(t)

	resp := postJSON(t, srv.URL+"/api/users/register", "", map[string]string{})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register returned %d", resp.StatusCode)
	}
	var user models.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if user.Name != "Anonymous User" {
		t.Errorf("expected defaulted name, got %q", user.Name)
	}
	if user.Email == "" {
		t.Error("expected a generated email")
	}
}

func TestLogin_QuotedAndMixedCaseEmail(t *testing.T) {
	srv := setupTestServer(t)
	registerUser(t, srv, "Ada", "Ada@Example.com", "hunter2")

	resp := postJSON(t, srv.URL+"/api/users/login", "", map[string]string{
		"email": `"ada@example.com"`, "password": "hunter2",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login returned %d", resp.StatusCode)
	}
	var user models.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if user.Token == "" {
		t.Error("expected a token in the login response")
	}
}

func TestLogin_UnbalancedQuotedEmail(t *testing.T) {
	srv := setupTestServer(t)
	registerUser(t, srv, "Ada", "ada@example.com", "hunter2")

	resp := postJSON(t, srv.URL+"/api/users/login", "", map[string]string{
		"email": `"ada@example.com`, "password": "hunter2",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login with a lone leading quote returned %d", resp.StatusCode)
	}
}

func TestLogin_RejectsBadCredentials(t *testing.T) {
	srv := setupTestServer(t)
	registerUser(t, srv, "Ada", "ada@example.com", "hunter2")

	resp := postJSON(t, srv.URL+"/api/users/login", "", map[string]string{
		"email": "ada@example.com", "password": "wrong",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Message != "Invalid email or password" {
		t.Errorf("unexpected message %q", payload.Message)
	}
}

func TestMe_RequiresToken(t *testing.T) {
	srv := setupTestServer(t)

	resp, err := http.Get(srv.URL + "/api/users/me")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 without a token, got %d", resp.StatusCode)
	}
}

func TestMe_ReturnsAuthenticatedUser(t *testing.T) {
	srv := setupTestServer(t)
	user := registerUser(t, srv, "Ada", "ada@example.com", "hunter2")

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+user.Token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("me returned %d", resp.StatusCode)
	}
	var me models.User
	if err := json.NewDecoder(resp.Body).Decode(&me); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if me.ID != user.ID {
		t.Errorf("expected user %s, got %s", user.ID, me.ID)
	}
}

func TestUploadPhotoAndFeed(t *testing.T) {
	srv := setupTestServer(t)
	user := registerUser(t, srv, "Ada", "ada@example.com", "hunter2")

	resp := postJSON(t, srv.URL+"/api/users/upload-photo", user.Token, map[string]string{
		"url": "https://photos.example.com/a.jpg", "caption": "Morning walk",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("upload returned %d", resp.StatusCode)
	}

	feedResp, err := http.Get(srv.URL + "/api/posts")
	if err != nil {
		t.Fatalf("feed request failed: %v", err)
	}
	defer feedResp.Body.Close()
	var posts []models.Post
	if err := json.NewDecoder(feedResp.Body).Decode(&posts); err != nil {
		t.Fatalf("decode feed: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("expected 1 post, got %d", len(posts))
	}
	if posts[0].Name != "Ada" || posts[0].Prompt != "Morning walk" {
		t.Errorf("unexpected post %+v", posts[0])
	}
	if posts[0].ProfileColor == "" {
		t.Error("expected a profile color")
	}
}

func TestUploadPhoto_RequiresURL(t *testing.T) {
	srv := setupTestServer(t)
	user := registerUser(t, srv, "Ada", "ada@example.com", "hunter2")

	resp := postJSON(t, srv.URL+"/api/users/upload-photo", user.Token, map[string]string{"caption": "no url"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}
