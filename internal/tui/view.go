package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bewellhq/bewell/internal/calendar"
	"github.com/bewellhq/bewell/internal/nav"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.screen {
	case nav.ScreenLogin:
		content = m.viewAuthForm("Welcome back")
	case nav.ScreenRegister:
		content = m.viewAuthForm("Create your account")
	case nav.ScreenSurvey:
		content = m.form.View()
	case nav.ScreenCapture:
		content = m.viewCapture()
	case nav.ScreenHome:
		content = m.viewHome()
	case nav.ScreenExplore:
		content = m.viewExplore()
	case nav.ScreenFriends:
		content = m.viewFriends()
	}

	sections := []string{}
	if m.showTabs() {
		sections = append(sections, m.viewTabs())
	}
	sections = append(sections, content)
	if m.errMsg != "" {
		sections = append(sections, errorStyle.Render(m.errMsg))
	}
	if m.showTabs() {
		sections = append(sections, m.help.View(m.keys))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) showTabs() bool {
	switch m.screen {
	case nav.ScreenHome, nav.ScreenExplore, nav.ScreenFriends:
		return true
	}
	return false
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Home", "Explore", "Friends"} {
		if m.screen == tabOrder[i] {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewAuthForm(title string) string {
	hint := "ctrl+r to register"
	if m.screen == nav.ScreenRegister {
		hint = "esc to go back to login"
	}
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(title),
		"",
		m.form.View(),
		mutedStyle.Render(hint),
	))
}

func (m Model) viewCapture() string {
	header := titleStyle.Render("Take your daily photo")
	promptLine := ""
	if m.capturePrompt != "" {
		promptLine = promptStyle.Render(m.capturePrompt)
	}

	body := "[c] take picture   [s] check-in   [q] quit"
	if m.busy {
		body = "Capturing..."
	}

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		header,
		promptLine,
		"",
		body,
	))
}

func (m Model) viewHome() string {
	var b strings.Builder
	name := ""
	if m.user != nil {
		name = " " + m.user.Name
	}
	b.WriteString(titleStyle.Render("Your journal,"+name) + "\n\n")

	for _, month := range calendar.Build(m.deps.History, time.Now()) {
		b.WriteString(titleStyle.Render(month.Anchor.Format("January 2006")) + "\n")
		b.WriteString(mutedStyle.Render(" Su  Mo  Tu  We  Th  Fr  Sa") + "\n")
		for _, week := range month.Weeks {
			for _, day := range week {
				switch {
				case day.DayOfMonth == 0:
					b.WriteString("    ")
				case day.Photo != nil:
					b.WriteString(photoDayStyle.Render(fmt.Sprintf("[%2d]", day.DayOfMonth)))
				default:
					b.WriteString(fmt.Sprintf(" %2d ", day.DayOfMonth))
				}
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return docStyle.Render(b.String())
}

func (m Model) viewExplore() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Explore") + "\n\n")

	if rec, ok := m.deps.History.Last(); ok {
		b.WriteString("Your photo today: " + mutedStyle.Render(rec.URI) + "\n\n")
	}

	if len(m.posts) == 0 {
		b.WriteString(mutedStyle.Render("Loading feed..."))
	}
	for _, post := range m.posts {
		b.WriteString(fmt.Sprintf("%s  %s\n", titleStyle.Render(post.Name), mutedStyle.Render(post.Time)))
		b.WriteString(promptStyle.Render(post.Prompt) + "\n\n")
	}
	return docStyle.Render(b.String())
}

func (m Model) viewFriends() string {
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Friends"),
		"",
		mutedStyle.Render("Friends are coming soon."),
	))
}
