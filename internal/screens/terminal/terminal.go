// Package terminal renders the quiz as a scrolling line-oriented
// transcript with a single input prompt, in the style of a serial
// console.
package terminal

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/nicojapas/interview-trainer/internal/apiclient"
	"github.com/nicojapas/interview-trainer/internal/quiz"
	"github.com/nicojapas/interview-trainer/internal/screen"
	"github.com/nicojapas/interview-trainer/internal/ui/components"
	"github.com/nicojapas/interview-trainer/internal/ui/layout"
	"github.com/nicojapas/interview-trainer/internal/ui/theme"
)

// Source provides the question bank and explanations. Implemented by
// the remote API client and by the local store adapter.
type Source interface {
	Questions(ctx context.Context) ([]quiz.SubtopicGroup, error)
	Explain(ctx context.Context, req quiz.ExplainRequest) (string, error)
}

const requestTimeout = 90 * time.Second

type questionsLoadedMsg struct {
	groups []quiz.SubtopicGroup
	err    error
}

type explainDoneMsg struct {
	req  quiz.ExplainRequest
	text string
	err  error
}

// Model is the terminal quiz screen.
type Model struct {
	source     Source
	engine     *quiz.Engine
	input      components.TextInput
	transcript strings.Builder
	waiting    bool
	loadErr    error

	// AuthExpired, when set, produces the message dispatched if the
	// server rejects the stored token (remote mode re-login).
	AuthExpired func() tea.Msg
}

// New creates the terminal screen backed by the given source.
func New(source Source) *Model {
	input := components.NewTextInput("", false)
	// The engine renders its own prompts at the end of the transcript,
	// so typed input continues that line.
	input.Model.Prompt = ""
	return &Model{
		source: source,
		input:  input,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.input.Init(), m.loadQuestions())
}

func (m *Model) loadQuestions() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		groups, err := m.source.Questions(ctx)
		return questionsLoadedMsg{groups: groups, err: err}
	}
}

func (m *Model) fetchExplanation(req quiz.ExplainRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		text, err := m.source.Explain(ctx, req)
		return explainDoneMsg{req: req, text: text, err: err}
	}
}

func (m *Model) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionsLoadedMsg:
		if msg.err != nil {
			if errors.Is(msg.err, apiclient.ErrUnauthorized) && m.AuthExpired != nil {
				return m, func() tea.Msg { return m.AuthExpired() }
			}
			m.loadErr = msg.err
			return m, nil
		}
		m.engine = quiz.NewEngine(quiz.BuildTree(msg.groups))
		m.transcript.WriteString(m.engine.Start())
		return m, nil

	case explainDoneMsg:
		if m.engine == nil {
			return m, nil
		}
		m.transcript.WriteString(m.engine.ResolveExplain(msg.req, msg.text, msg.err))
		m.waiting = false
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "enter" {
			return m, m.submitLine()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submitLine echoes the typed line into the transcript and feeds it to
// the engine. Input during an explanation fetch is dropped.
func (m *Model) submitLine() tea.Cmd {
	if m.engine == nil || m.waiting {
		return nil
	}

	line := strings.TrimSpace(m.input.Value())
	m.input.Reset()
	m.transcript.WriteString(line + "\n")

	reply := m.engine.HandleLine(line)
	m.transcript.WriteString(reply.Output)

	if reply.Halted {
		return tea.Quit
	}
	if reply.Explain != nil {
		m.waiting = true
		return m.fetchExplanation(*reply.Explain)
	}
	return nil
}

func (m *Model) View(width, height int) string {
	if m.loadErr != nil {
		return theme.Incorrect.Render("Error loading questions: "+m.loadErr.Error()) +
			"\n\n" + theme.Hint.Render("Press Ctrl+C to quit.")
	}
	if m.engine == nil {
		return theme.Body.Render("Loading questions...")
	}

	prompt := ""
	if !m.waiting {
		prompt = m.input.View()
	}

	// Keep only the tail of the transcript that fits above the prompt.
	lines := strings.Split(m.transcript.String(), "\n")
	avail := height - 1
	if avail < 1 {
		avail = 1
	}
	if len(lines) > avail {
		lines = lines[len(lines)-avail:]
	}

	return theme.Body.Render(strings.Join(lines, "\n")) + prompt
}

func (m *Model) Title() string {
	if m.engine == nil {
		return "connecting"
	}
	return strings.ToLower(m.engine.State().String())
}

// KeyHints implements screen.KeyHintProvider.
func (m *Model) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "quit", Description: "End session"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
