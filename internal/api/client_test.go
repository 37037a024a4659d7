package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *FileTokenStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	tokens := NewFileTokenStore(filepath.Join(t.TempDir(), "token"))
	return NewClient(srv.URL, tokens), tokens
}

func TestNormalizeEmail(t *testing.T) {
	cases := map[string]string{
		"  user@example.com ":  "user@example.com",
		`"user@example.com"`:   "user@example.com",
		"'user@example.com'":   "user@example.com",
		"user@example.com":     "user@example.com",
		`"mismatched@quote.c'`: "mismatched@quote.c",
		`"unbalanced@lead.co`:  "unbalanced@lead.co",
		`unbalanced@trail.co'`: "unbalanced@trail.co",
	}
	for in, want := range cases {
		if got := NormalizeEmail(in); got != want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLogin_StoresToken(t *testing.T) {
	client, tokens := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/users/login" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var creds struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if creds.Email != "user@example.com" {
			t.Errorf("expected normalized email, got %q", creds.Email)
		}
		json.NewEncoder(w).Encode(map[string]string{
			"id": "u1", "name": "User", "email": creds.Email, "token": "tok-123",
		})
	}))

	user, err := client.Login(context.Background(), `"user@example.com"`, "pw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.Token != "tok-123" {
		t.Errorf("expected token tok-123, got %q", user.Token)
	}
	stored, err := tokens.Load()
	if err != nil || stored != "tok-123" {
		t.Errorf("expected stored token tok-123, got %q (%v)", stored, err)
	}
}

func TestLogin_SurfacesServerMessage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Invalid email or password"})
	}))

	_, err := client.Login(context.Background(), "user@example.com", "wrong")
	if err == nil || err.Error() != "Invalid email or password" {
		t.Errorf("expected server message, got %v", err)
	}
}

func TestLogin_RejectsResponseWithoutToken(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"id": "u1"})
	}))

	if _, err := client.Login(context.Background(), "user@example.com", "pw"); err == nil {
		t.Error("expected an error for a token-less response")
	}
}

func TestCurrentUser_NilWithoutToken(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not reach the server without a token")
	}))

	if user := client.CurrentUser(context.Background()); user != nil {
		t.Errorf("expected nil user, got %+v", user)
	}
}

func TestCurrentUser_AttachesBearerToken(t *testing.T) {
	client, tokens := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("expected bearer header, got %q", got)
		}
		json.NewEncoder(w).Encode(map[string]string{"id": "u1", "name": "User", "email": "user@example.com"})
	}))
	if err := tokens.Save("tok-123"); err != nil {
		t.Fatalf("save token: %v", err)
	}

	user := client.CurrentUser(context.Background())
	if user == nil || user.ID != "u1" {
		t.Errorf("expected user u1, got %+v", user)
	}
}

func TestUploadPhoto_RequiresToken(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	err := client.UploadPhoto(context.Background(), "file:///x.jpg", "caption")
	if err != ErrNotAuthenticated {
		t.Errorf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestLogout_ClearsToken(t *testing.T) {
	client, tokens := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	if err := tokens.Save("tok-123"); err != nil {
		t.Fatalf("save token: %v", err)
	}

	if err := client.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	stored, err := tokens.Load()
	if err != nil || stored != "" {
		t.Errorf("expected empty token after logout, got %q (%v)", stored, err)
	}
}
