package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bewellhq/bewell/internal/journal"
)

func writeFile(path, contents string) error {
	return os.WriteFile(path, []byte(contents), 0600)
}

func TestSessionStore_RoundTrip(t *testing.T) {
	store := NewSessionStore(filepath.Join(t.TempDir(), "session.json"))

	h := journal.New()
	h.Append("file:///a.jpg", time.Date(2024, 3, 1, 8, 0, 0, 0, time.Local))
	h.Append("file:///b.jpg", time.Date(2024, 3, 2, 8, 0, 0, 0, time.Local))

	if err := store.Save(h); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", loaded.Len())
	}
	if loaded.Records()[0].URI != "file:///a.jpg" {
		t.Errorf("insertion order lost: %+v", loaded.Records())
	}
	last, _ := loaded.Last()
	if last.Day != "2024-03-02" {
		t.Errorf("expected day key preserved, got %s", last.Day)
	}
}

func TestSessionStore_MissingFileIsEmptyHistory(t *testing.T) {
	store := NewSessionStore(filepath.Join(t.TempDir(), "absent.json"))

	h, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if h.Len() != 0 {
		t.Errorf("expected empty history, got %d records", h.Len())
	}
}

func TestSessionStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.json")
	if err := writeFile(path, "not json"); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}

	if _, err := NewSessionStore(path).Load(); err == nil {
		t.Error("expected an error for a corrupt session file")
	}
}
