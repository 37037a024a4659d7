// Package store is the server's document store: registered users and their
// uploaded photo metadata, backed by SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"

	"github.com/bewellhq/bewell/internal/models"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	email         TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	created_at    TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS photos (
	id            TEXT PRIMARY KEY,
	user_id       TEXT NOT NULL REFERENCES users(id),
	url           TEXT NOT NULL,
	caption       TEXT NOT NULL DEFAULT '',
	date_uploaded TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_photos_user ON photos(user_id);
`

type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the SQLite database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// CreateUser registers a user, hashing the password with bcrypt.
func (s *Store) CreateUser(ctx context.Context, name, email, password string) (models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}
	user := models.User{
		ID:    uuid.New().String(),
		Name:  name,
		Email: email,
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, user.ID, user.Name, user.Email, string(hash), time.Now().Format(time.RFC3339))
	if err != nil {
		return models.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Authenticate verifies email and password. The email lookup is
// case-insensitive. A missing user and a wrong password are indistinguishable
// to the caller.
func (s *Store) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	var user models.User
	var hash string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash FROM users
		WHERE email = ? COLLATE NOCASE
		ORDER BY created_at LIMIT 1
	`, email).Scan(&user.ID, &user.Name, &user.Email, &hash)
	if err == sql.ErrNoRows {
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to look up user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// GetUser fetches a user by ID.
func (s *Store) GetUser(ctx context.Context, id string) (models.User, error) {
	var user models.User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, email FROM users WHERE id = ?
	`, id).Scan(&user.ID, &user.Name, &user.Email)
	if err == sql.ErrNoRows {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// AddPhoto appends photo metadata to the user's record.
func (s *Store) AddPhoto(ctx context.Context, userID, url, caption string) (models.UploadedPhoto, error) {
	photo := models.UploadedPhoto{
		ID:           uuid.New().String(),
		URL:          url,
		Caption:      caption,
		DateUploaded: time.Now().Format(time.RFC3339),
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO photos (id, user_id, url, caption, date_uploaded)
		VALUES (?, ?, ?, ?, ?)
	`, photo.ID, userID, photo.URL, photo.Caption, photo.DateUploaded)
	if err != nil {
		return models.UploadedPhoto{}, fmt.Errorf("failed to add photo: %w", err)
	}
	return photo, nil
}

// PhotosByUser lists a user's uploads, newest first.
func (s *Store) PhotosByUser(ctx context.Context, userID string) ([]models.UploadedPhoto, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, url, caption, date_uploaded FROM photos
		WHERE user_id = ? ORDER BY date_uploaded DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}
	defer rows.Close()

	var photos []models.UploadedPhoto
	for rows.Next() {
		var p models.UploadedPhoto
		if err := rows.Scan(&p.ID, &p.URL, &p.Caption, &p.DateUploaded); err != nil {
			return nil, fmt.Errorf("failed to scan photo: %w", err)
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}

// FeedEntry is one uploaded photo joined with its owner, for the explore feed.
type FeedEntry struct {
	Photo    models.UploadedPhoto
	UserName string
}

// RecentPhotos returns the newest uploads across all users.
func (s *Store) RecentPhotos(ctx context.Context, limit int) ([]FeedEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.url, p.caption, p.date_uploaded, u.name
		FROM photos p JOIN users u ON u.id = p.user_id
		ORDER BY p.date_uploaded DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent photos: %w", err)
	}
	defer rows.Close()

	var entries []FeedEntry
	for rows.Next() {
		var e FeedEntry
		if err := rows.Scan(&e.Photo.ID, &e.Photo.URL, &e.Photo.Caption, &e.Photo.DateUploaded, &e.UserName); err != nil {
			return nil, fmt.Errorf("failed to scan feed entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
