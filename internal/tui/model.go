package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/bewellhq/bewell/internal/api"
	"github.com/bewellhq/bewell/internal/camera"
	"github.com/bewellhq/bewell/internal/feed"
	"github.com/bewellhq/bewell/internal/journal"
	"github.com/bewellhq/bewell/internal/models"
	"github.com/bewellhq/bewell/internal/nav"
	"github.com/bewellhq/bewell/internal/prompt"
	"github.com/bewellhq/bewell/internal/storage"
)

// Deps are the application root's collaborators, passed down by reference.
// History is the single shared photo journal; the model never copies it.
type Deps struct {
	History *journal.History
	Session *storage.SessionStore
	API     *api.Client
	Camera  camera.Camera
	Prompts *prompt.Generator
}

type LoginFormModel struct {
	Email    string
	Password string
}

type RegisterFormModel struct {
	Name     string
	Email    string
	Password string
}

type SurveyFormModel struct {
	Feelings string
}

type Model struct {
	deps   Deps
	screen nav.Screen
	user   *models.User

	keys KeyMap
	help help.Model

	form         *huh.Form
	loginForm    *LoginFormModel
	registerForm *RegisterFormModel
	surveyForm   *SurveyFormModel

	capturePrompt string
	posts         []models.Post
	errMsg        string
	busy          bool // a capture is in flight; blocks further capture keys
	quitting      bool
	width         int
	height        int
}

func NewModel(deps Deps) Model {
	m := Model{
		deps:   deps,
		screen: nav.ScreenLogin,
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}
	// The first frame renders before the session check resolves, so the
	// login form must exist from the start.
	m.loginForm = &LoginFormModel{}
	m.form = newLoginForm(m.loginForm)
	return m
}

// Messages produced by the async collaborator calls.

type sessionCheckedMsg struct{ user *models.User }

type authResultMsg struct {
	user models.User
	err  error
}

type captureResultMsg struct {
	uri string
	err error
}

type uploadResultMsg struct{ err error }

type promptResultMsg struct{ text string }

type feedLoadedMsg struct{ posts []models.Post }

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.form.Init(), m.checkSession)
}

func (m Model) checkSession() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return sessionCheckedMsg{user: m.deps.API.CurrentUser(ctx)}
}

func (m Model) loadFeed() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return feedLoadedMsg{posts: feed.Load(ctx, m.deps.API)}
}

func (m Model) hasPhotoToday() bool {
	return m.deps.History.HasPhotoForToday(time.Now())
}

// goTo applies a navigation event and performs the entry work for the screen
// that results: building forms, loading the feed, and re-running the gate
// checks the routing policy requires on every render.
func (m *Model) goTo(event nav.Event) tea.Cmd {
	next := m.applyGates(nav.Transition(m.screen, event))
	if next == m.screen {
		return nil
	}
	return m.enter(next)
}

// applyGates enforces the standing invariants: home immediately bounces to
// capture when today's photo is missing, and capture bounces home once it
// exists.
func (m *Model) applyGates(next nav.Screen) nav.Screen {
	if next == nav.ScreenHome {
		next = nav.Transition(next, nav.HomeRendered{HasPhotoToday: m.hasPhotoToday()})
	}
	if next == nav.ScreenCapture {
		next = nav.Transition(next, nav.CaptureEntered{HasPhotoToday: m.hasPhotoToday()})
	}
	return next
}

func (m *Model) enter(next nav.Screen) tea.Cmd {
	m.screen = next
	m.errMsg = ""

	switch next {
	case nav.ScreenLogin:
		m.loginForm = &LoginFormModel{}
		m.form = newLoginForm(m.loginForm)
		return m.form.Init()
	case nav.ScreenRegister:
		m.registerForm = &RegisterFormModel{}
		m.form = newRegisterForm(m.registerForm)
		return m.form.Init()
	case nav.ScreenSurvey:
		m.surveyForm = &SurveyFormModel{}
		m.form = newSurveyForm(m.surveyForm)
		return m.form.Init()
	case nav.ScreenExplore:
		return m.loadFeed
	}
	return nil
}

func newLoginForm(f *LoginFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&f.Email),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&f.Password),
		),
	)
}

func newRegisterForm(f *RegisterFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&f.Name),
			huh.NewInput().
				Title("Email").
				Value(&f.Email),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&f.Password),
		),
	)
}

func newSurveyForm(f *SurveyFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Weekly Check-In").
				Description("Start spilling your feelings...").
				CharLimit(1000).
				Value(&f.Feelings),
		),
	)
}
