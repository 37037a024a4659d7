package cli

import (
	"github.com/bewellhq/bewell/internal/api"
	"github.com/bewellhq/bewell/internal/camera"
	"github.com/bewellhq/bewell/internal/journal"
	"github.com/bewellhq/bewell/internal/prompt"
	"github.com/bewellhq/bewell/internal/storage"
)

// Context carries the application root's collaborators into every command.
// The photo history it loads is the single shared instance for the run; every
// screen and command reads through it.
type Context struct {
	Session *storage.SessionStore
	API     *api.Client
	Camera  camera.Camera
	Prompts *prompt.Generator
}

func (c *Context) LoadHistory() (*journal.History, error) {
	return c.Session.Load()
}
