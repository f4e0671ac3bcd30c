// Package login prompts for the server password and exchanges it for a
// bearer token before the quiz starts.
package login

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/nicojapas/interview-trainer/internal/apiclient"
	"github.com/nicojapas/interview-trainer/internal/router"
	"github.com/nicojapas/interview-trainer/internal/screen"
	"github.com/nicojapas/interview-trainer/internal/ui/components"
	"github.com/nicojapas/interview-trainer/internal/ui/layout"
	"github.com/nicojapas/interview-trainer/internal/ui/theme"
)

type loginResultMsg struct {
	err error
}

// Model is the password prompt screen.
type Model struct {
	client  *apiclient.Client
	next    func() screen.Screen
	input   components.TextInput
	busy    bool
	status  string
	failure string
}

// New creates the login screen. next builds the screen shown after a
// successful login.
func New(client *apiclient.Client, next func() screen.Screen) *Model {
	return &Model{
		client: client,
		next:   next,
		input:  components.NewTextInput("password", true),
	}
}

func (m *Model) Init() tea.Cmd {
	// A token from a previous run skips the prompt entirely. The quiz
	// screen falls back here if the server has stopped accepting it.
	if m.client.HasToken() {
		return func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: m.next()}
		}
	}
	return m.input.Init()
}

func (m *Model) login(password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return loginResultMsg{err: m.client.Login(ctx, password)}
	}
}

func (m *Model) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		m.busy = false
		switch {
		case msg.err == nil:
			return m, func() tea.Msg {
				return router.ReplaceScreenMsg{Screen: m.next()}
			}
		case errors.Is(msg.err, apiclient.ErrUnauthorized):
			m.failure = "Invalid password."
		default:
			m.failure = msg.err.Error()
		}
		m.input.Reset()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "enter" && !m.busy {
			password := strings.TrimSpace(m.input.Value())
			if password == "" {
				return m, nil
			}
			m.busy = true
			m.failure = ""
			m.status = "Authenticating..."
			return m, m.login(password)
		}
	}

	if m.busy {
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Interview Trainer"))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render("Enter password to connect."))
	b.WriteString("\n\n")

	if m.busy {
		b.WriteString(theme.Hint.Render(m.status))
	} else {
		b.WriteString(m.input.View())
	}

	if m.failure != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Incorrect.Render(m.failure))
	}

	return b.String()
}

func (m *Model) Title() string {
	return "login"
}

// KeyHints implements screen.KeyHintProvider.
func (m *Model) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Connect"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
