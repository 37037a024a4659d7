// Package camera abstracts the device camera. A terminal app cannot drive a
// camera directly, so the default implementation imports image files dropped
// into an inbox directory (by a phone sync, screenshot tool, or the user).
package camera

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrPermission means the inbox cannot be read; the user can fix access
	// and retry.
	ErrPermission = errors.New("camera access denied: inbox directory is not readable")

	// ErrNoPhoto means the inbox holds no image to import.
	ErrNoPhoto = errors.New("no photo found in the inbox")
)

// Camera produces one captured photo per call.
type Camera interface {
	Capture(ctx context.Context) (uri string, err error)
}

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true, ".heic": true,
}

// FileCamera imports the newest image from InboxDir into PhotoDir and returns
// a file URI for the stored copy. The inbox file is left in place; the stored
// copy is the session's own reference.
type FileCamera struct {
	InboxDir string
	PhotoDir string
}

func NewFileCamera(inboxDir, photoDir string) *FileCamera {
	return &FileCamera{InboxDir: inboxDir, PhotoDir: photoDir}
}

func (c *FileCamera) Capture(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	entries, err := os.ReadDir(c.InboxDir)
	if err != nil {
		return "", ErrPermission
	}

	var newest os.DirEntry
	var newestMod time.Time
	for _, entry := range entries {
		if entry.IsDir() || !imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if newest == nil || info.ModTime().After(newestMod) {
			newest = entry
			newestMod = info.ModTime()
		}
	}
	if newest == nil {
		return "", ErrNoPhoto
	}

	if err := os.MkdirAll(c.PhotoDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create photo directory: %w", err)
	}

	src := filepath.Join(c.InboxDir, newest.Name())
	dst := filepath.Join(c.PhotoDir, uuid.New().String()+strings.ToLower(filepath.Ext(newest.Name())))
	if err := copyFile(src, dst); err != nil {
		return "", fmt.Errorf("failed to capture photo: %w", err)
	}
	return "file://" + dst, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}

// Stub is a test double whose Capture returns canned values.
type Stub struct {
	URI string
	Err error
}

func (s *Stub) Capture(ctx context.Context) (string, error) {
	return s.URI, s.Err
}
