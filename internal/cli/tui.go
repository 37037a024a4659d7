package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bewellhq/bewell/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	history, err := ctx.LoadHistory()
	if err != nil {
		return err
	}

	model := tui.NewModel(tui.Deps{
		History: history,
		Session: ctx.Session,
		API:     ctx.API,
		Camera:  ctx.Camera,
		Prompts: ctx.Prompts,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Alas, there's been an error: %v\n", err)
		os.Exit(1)
	}
	return nil
}
