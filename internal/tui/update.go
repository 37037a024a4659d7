package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/bewellhq/bewell/internal/nav"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case sessionCheckedMsg:
		m.user = msg.user
		next := m.applyGates(nav.Transition(m.screen, nav.AppStarted{
			Authenticated: m.user != nil,
			HasPhotoToday: m.hasPhotoToday(),
		}))
		return m, m.enter(next)

	case authResultMsg:
		return m.handleAuthResult(msg)

	case captureResultMsg:
		return m.handleCaptureResult(msg)

	case uploadResultMsg:
		if msg.err != nil {
			m.errMsg = "Photo saved locally but not uploaded: " + msg.err.Error()
		}
		return m, nil

	case promptResultMsg:
		m.capturePrompt = msg.text
		return m, m.goTo(nav.SurveySubmitted{})

	case feedLoadedMsg:
		m.posts = msg.posts
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
	}

	switch m.screen {
	case nav.ScreenLogin, nav.ScreenRegister, nav.ScreenSurvey:
		return m.updateForm(msg)
	case nav.ScreenCapture:
		return m.updateCapture(msg)
	default:
		return m.updateTabs(msg)
	}
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		switch m.screen {
		case nav.ScreenRegister:
			return m, m.goTo(nav.SwitchedToLogin{})
		case nav.ScreenSurvey:
			// Skipping the check-in still leads to the camera, just without
			// a personalized prompt.
			m.capturePrompt = ""
			return m, m.goTo(nav.SurveySubmitted{})
		}
	}
	if keyMsg, ok := msg.(tea.KeyMsg); ok && m.screen == nav.ScreenLogin && keyMsg.String() == "ctrl+r" {
		return m, m.goTo(nav.SwitchedToRegister{})
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m.handleFormCompleted()
	case huh.StateAborted:
		if m.screen == nav.ScreenRegister {
			return m, m.goTo(nav.SwitchedToLogin{})
		}
	}
	return m, cmd
}

func (m Model) handleFormCompleted() (tea.Model, tea.Cmd) {
	switch m.screen {
	case nav.ScreenLogin:
		email, password := m.loginForm.Email, m.loginForm.Password
		return m, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
			defer cancel()
			user, err := m.deps.API.Login(ctx, email, password)
			return authResultMsg{user: user, err: err}
		}
	case nav.ScreenRegister:
		name, email, password := m.registerForm.Name, m.registerForm.Email, m.registerForm.Password
		return m, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
			defer cancel()
			user, err := m.deps.API.Register(ctx, name, email, password)
			return authResultMsg{user: user, err: err}
		}
	case nav.ScreenSurvey:
		feelings := m.surveyForm.Feelings
		return m, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
			defer cancel()
			// Suggest never fails; the worst case is the fallback prompt.
			return promptResultMsg{text: m.deps.Prompts.Suggest(ctx, feelings)}
		}
	}
	return m, nil
}

func (m Model) handleAuthResult(msg authResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.errMsg = msg.err.Error()
		// Rebuild the form so the user can retry without restarting.
		switch m.screen {
		case nav.ScreenLogin:
			m.loginForm = &LoginFormModel{Email: m.loginForm.Email}
			m.form = newLoginForm(m.loginForm)
		case nav.ScreenRegister:
			m.registerForm = &RegisterFormModel{Name: m.registerForm.Name, Email: m.registerForm.Email}
			m.form = newRegisterForm(m.registerForm)
		}
		return m, m.form.Init()
	}
	user := msg.user
	m.user = &user
	return m, m.goTo(nav.LoggedIn{HasPhotoToday: m.hasPhotoToday()})
}

func (m Model) updateCapture(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Survey):
		return m, m.goTo(nav.Navigated{To: nav.ScreenSurvey})

	case key.Matches(keyMsg, m.keys.Capture):
		if m.busy {
			return m, nil
		}
		if m.hasPhotoToday() {
			// Someone beat us to it (e.g. a photo appended elsewhere);
			// bounce home instead of allowing a duplicate.
			return m, m.goTo(nav.CaptureEntered{HasPhotoToday: true})
		}
		m.busy = true
		m.errMsg = ""
		return m, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			uri, err := m.deps.Camera.Capture(ctx)
			return captureResultMsg{uri: uri, err: err}
		}
	}
	return m, nil
}

func (m Model) handleCaptureResult(msg captureResultMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	if msg.err != nil {
		// No history mutation on failure; the user can retry.
		m.errMsg = msg.err.Error()
		return m, nil
	}

	rec := m.deps.History.Append(msg.uri, time.Now())
	if err := m.deps.Session.Save(m.deps.History); err != nil {
		m.errMsg = err.Error()
	}

	caption := m.capturePrompt
	upload := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		return uploadResultMsg{err: m.deps.API.UploadPhoto(ctx, rec.URI, caption)}
	}
	return m, tea.Batch(m.goTo(nav.PhotoCaptured{}), upload)
}

var tabOrder = []nav.Screen{nav.ScreenHome, nav.ScreenExplore, nav.ScreenFriends}

func (m Model) updateTabs(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(keyMsg, m.keys.Tab):
		return m, m.goTo(nav.Navigated{To: m.nextTab(1)})
	case key.Matches(keyMsg, m.keys.ShiftTab):
		return m, m.goTo(nav.Navigated{To: m.nextTab(-1)})
	case key.Matches(keyMsg, m.keys.Survey):
		return m, m.goTo(nav.Navigated{To: nav.ScreenSurvey})
	case key.Matches(keyMsg, m.keys.Logout):
		if err := m.deps.API.Logout(); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.user = nil
		return m, m.goTo(nav.LoggedOut{})
	}
	return m, nil
}

func (m Model) nextTab(offset int) nav.Screen {
	current := 0
	for i, s := range tabOrder {
		if s == m.screen {
			current = i
			break
		}
	}
	return tabOrder[(current+offset+len(tabOrder))%len(tabOrder)]
}
