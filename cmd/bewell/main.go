package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/bewellhq/bewell/internal/api"
	"github.com/bewellhq/bewell/internal/camera"
	"github.com/bewellhq/bewell/internal/cli"
	"github.com/bewellhq/bewell/internal/prompt"
	"github.com/bewellhq/bewell/internal/storage"
)

var CLI struct {
	Version   kong.VersionFlag
	DataDir   string `help:"Directory for session state and imported photos." type:"path" default:"~/.local/share/bewell"`
	APIURL    string `help:"BeWell API base URL." env:"BEWELL_API_URL" default:"http://localhost:5001"`
	PromptURL string `help:"Prompt generation API base URL." env:"BEWELL_PROMPT_URL" default:"https://api.cohere.ai"`
	PromptKey string `help:"Prompt generation API key." env:"BEWELL_PROMPT_KEY"`
	Inbox     string `help:"Directory watched for new photos." env:"BEWELL_INBOX" type:"path" default:"~/Pictures/bewell-inbox"`

	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Login    cli.LoginCmd    `cmd:"" help:"Log in to your BeWell account."`
	Register cli.RegisterCmd `cmd:"" help:"Create a BeWell account."`
	Logout   cli.LogoutCmd   `cmd:"" help:"Log out and forget the saved session."`
	Whoami   cli.WhoamiCmd   `cmd:"" help:"Show the logged-in user."`
	Capture  cli.CaptureCmd  `cmd:"" help:"Take today's photo."`
	Day      cli.DayCmd      `cmd:"" help:"Show the photo for a day."`
	Calendar cli.CalendarCmd `cmd:"" help:"Show the journal calendar."`
	Feed     cli.FeedCmd     `cmd:"" help:"Show the community feed."`
	Survey   cli.SurveyCmd   `cmd:"" help:"Run the weekly check-in."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("bewell"),
		kong.Description("Daily photo journal and wellness companion"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	appCtx := &cli.Context{
		Session: storage.NewSessionStore(filepath.Join(CLI.DataDir, "session.json")),
		API:     api.NewClient(CLI.APIURL, api.NewFileTokenStore(filepath.Join(CLI.DataDir, "token"))),
		Camera:  camera.NewFileCamera(CLI.Inbox, filepath.Join(CLI.DataDir, "photos")),
		Prompts: prompt.NewGenerator(CLI.PromptURL, CLI.PromptKey, prompt.DefaultMaxWords),
	}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
