// Package server is the bewell HTTP API: registration, login, the current
// user, photo-metadata uploads, and the explore feed.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/bewellhq/bewell/internal/models"
	"github.com/bewellhq/bewell/internal/server/auth"
	"github.com/bewellhq/bewell/internal/server/config"
	"github.com/bewellhq/bewell/internal/server/store"
)

const feedLimit = 50

type Server struct {
	cfg   *config.Config
	store *store.Store
	log   *logrus.Logger
}

func New(cfg *config.Config, st *store.Store, log *logrus.Logger) *Server {
	return &Server{cfg: cfg, store: st, log: log}
}

// Router assembles the API routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLogger)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("BeWell API is running..."))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/users/register", s.handleRegister)
		r.Post("/users/login", s.handleLogin)
		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/users/me", s.handleMe)
			r.Post("/users/upload-photo", s.handleUploadPhoto)
		})
		r.Get("/posts", s.handlePosts)
	})

	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start).String(),
		}).Info("request")
	})
}

type ctxKey int

const ctxKeyUserID ctxKey = iota

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			jsonError(w, "not authorized, no token", http.StatusUnauthorized)
			return
		}
		userID, err := auth.UserIDFromToken(token, []byte(s.cfg.JWTSecret))
		if err != nil {
			jsonError(w, "not authorized, token failed", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKeyUserID, userID)))
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request", http.StatusBadRequest)
		return
	}

	// Missing fields get placeholders instead of a rejection. Odd, but the
	// mobile client relies on registration never failing validation.
	if req.Name == "" {
		req.Name = "Anonymous User"
	}
	if req.Email == "" {
		req.Email = fmt.Sprintf("user%d@example.com", time.Now().UnixMilli())
	}
	if req.Password == "" {
		req.Password = "defaultpassword123"
	}

	user, err := s.store.CreateUser(r.Context(), req.Name, stripQuotes(req.Email), req.Password)
	if err != nil {
		s.log.WithError(err).Error("registration failed")
		jsonError(w, "failed to create user", http.StatusBadRequest)
		return
	}

	token, err := auth.GenerateToken(user.ID, []byte(s.cfg.JWTSecret), s.cfg.TokenTTL)
	if err != nil {
		jsonError(w, "failed to issue token", http.StatusInternalServerError)
		return
	}
	user.Token = token
	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request", http.StatusBadRequest)
		return
	}

	// Older clients sent the email wrapped in quotes; clean it up server-side
	// too so both ends agree.
	email := stripQuotes(req.Email)

	user, err := s.store.Authenticate(r.Context(), email, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrInvalidCredentials) {
			jsonError(w, "Invalid email or password", http.StatusUnauthorized)
			return
		}
		s.log.WithError(err).Error("login failed")
		jsonError(w, "login failed", http.StatusInternalServerError)
		return
	}

	token, err := auth.GenerateToken(user.ID, []byte(s.cfg.JWTSecret), s.cfg.TokenTTL)
	if err != nil {
		jsonError(w, "failed to issue token", http.StatusInternalServerError)
		return
	}
	user.Token = token
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(ctxKeyUserID).(string)
	user, err := s.store.GetUser(r.Context(), userID)
	if err != nil {
		jsonError(w, "user not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleUploadPhoto(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(ctxKeyUserID).(string)
	var req struct {
		URL     string `json:"url"`
		Caption string `json:"caption"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.URL == "" {
		jsonError(w, "url is required", http.StatusBadRequest)
		return
	}
	if _, err := s.store.AddPhoto(r.Context(), userID, req.URL, req.Caption); err != nil {
		s.log.WithError(err).Error("photo upload failed")
		jsonError(w, "photo upload failed", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Photo uploaded successfully"})
}

func (s *Server) handlePosts(w http.ResponseWriter, r *http.Request) {
	entries, err := s.store.RecentPhotos(r.Context(), feedLimit)
	if err != nil {
		s.log.WithError(err).Error("feed query failed")
		jsonError(w, "failed to load posts", http.StatusInternalServerError)
		return
	}

	posts := make([]models.Post, 0, len(entries))
	for _, e := range entries {
		posts = append(posts, models.Post{
			ID:           e.Photo.ID,
			Name:         e.UserName,
			Prompt:       e.Photo.Caption,
			ProfileColor: profileColor(e.UserName),
			Time:         postTime(e.Photo.DateUploaded),
			ImageURL:     e.Photo.URL,
		})
	}
	writeJSON(w, http.StatusOK, posts)
}

var profileColors = []string{"#FF6B6B", "#4ECDC4", "#45B7D1", "#98D8AA", "#E9BFF5"}

// profileColor picks a stable avatar color per user name.
func profileColor(name string) string {
	var sum int
	for _, r := range name {
		sum += int(r)
	}
	return profileColors[sum%len(profileColors)]
}

// stripQuotes removes whitespace and one leading and one trailing quote from
// an email, each independently, mirroring the client-side normalization.
func stripQuotes(email string) string {
	email = strings.TrimSpace(email)
	if len(email) > 0 && (email[0] == '"' || email[0] == '\'') {
		email = email[1:]
	}
	if n := len(email); n > 0 && (email[n-1] == '"' || email[n-1] == '\'') {
		email = email[:n-1]
	}
	return email
}

func postTime(rfc3339 string) string {
	ts, err := time.Parse(time.RFC3339, rfc3339)
	if err != nil {
		return ""
	}
	return ts.Local().Format("3:04 PM")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"message": message})
}
