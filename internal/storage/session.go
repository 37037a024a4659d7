// Package storage persists the client's photo journal between runs. The
// in-memory history stays the single source of truth while the app runs; this
// file is only read at startup and rewritten after each append.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bewellhq/bewell/internal/journal"
	"github.com/bewellhq/bewell/internal/models"
)

type sessionFile struct {
	Version int                  `json:"version"`
	Photos  []models.PhotoRecord `json:"photos"`
}

type SessionStore struct {
	path string
}

func NewSessionStore(path string) *SessionStore {
	return &SessionStore{path: path}
}

// Load reads the stored journal. A missing file yields an empty history.
func (s *SessionStore) Load() (*journal.History, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return journal.New(), nil
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var file sessionFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse session: %w", err)
	}
	return journal.NewFromRecords(file.Photos), nil
}

// Save writes the journal back, preserving insertion order.
func (s *SessionStore) Save(h *journal.History) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(sessionFile{Version: 1, Photos: h.Records()}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}
