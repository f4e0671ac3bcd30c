package terminal

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/nicojapas/interview-trainer/internal/apiclient"
	"github.com/nicojapas/interview-trainer/internal/quiz"
)

// mockSource implements Source for testing.
type mockSource struct {
	groups      []quiz.SubtopicGroup
	questionErr error
	explainText string
	explainErr  error
	explainReqs []quiz.ExplainRequest
}

func (m *mockSource) Questions(_ context.Context) ([]quiz.SubtopicGroup, error) {
	return m.groups, m.questionErr
}

func (m *mockSource) Explain(_ context.Context, req quiz.ExplainRequest) (string, error) {
	m.explainReqs = append(m.explainReqs, req)
	return m.explainText, m.explainErr
}

func testGroups() []quiz.SubtopicGroup {
	return []quiz.SubtopicGroup{
		{
			Topic:    "networking",
			Subtopic: "tcp_basics",
			Questions: []quiz.Question{
				{
					ID:          "n1",
					Prompt:      "Which layer is TCP?",
					Correct:     "Transport",
					Options:     []string{"Application", "Transport"},
					Answer:      1,
					Explanation: "TCP lives at the transport layer.",
				},
			},
		},
	}
}

// typeLine simulates the user submitting one line of input.
func typeLine(t *testing.T, m *Model, line string) tea.Cmd {
	t.Helper()
	for _, r := range line {
		m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	return cmd
}

func loadQuestions(t *testing.T, m *Model, src *mockSource) {
	t.Helper()
	m.Update(questionsLoadedMsg{groups: src.groups, err: src.questionErr})
}

func TestLoadRendersTopicMenu(t *testing.T) {
	src := &mockSource{groups: testGroups()}
	m := New(src)
	loadQuestions(t, m, src)

	view := m.View(80, 24)
	if !strings.Contains(view, "Choose topics") {
		t.Errorf("view missing topic menu:\n%s", view)
	}
	if !strings.Contains(view, "Networking") {
		t.Errorf("view missing topic name:\n%s", view)
	}
}

func TestLoadErrorShown(t *testing.T) {
	src := &mockSource{questionErr: errors.New("connection refused")}
	m := New(src)
	loadQuestions(t, m, src)

	view := m.View(80, 24)
	if !strings.Contains(view, "connection refused") {
		t.Errorf("view missing load error:\n%s", view)
	}
}

func TestAnswerFlowThroughTranscript(t *testing.T) {
	src := &mockSource{groups: testGroups()}
	m := New(src)
	loadQuestions(t, m, src)

	typeLine(t, m, "1")        // select topic
	typeLine(t, m, "")         // confirm selection
	typeLine(t, m, "1")        // one question
	cmd := typeLine(t, m, "b") // correct answer

	if cmd != nil {
		t.Fatal("expected no command for a plain answer")
	}
	view := m.View(80, 40)
	if !strings.Contains(view, "Correct!") {
		t.Errorf("view missing feedback:\n%s", view)
	}
}

func TestExplainRoundTrip(t *testing.T) {
	src := &mockSource{groups: testGroups(), explainText: "Think about which layer handles reliability."}
	m := New(src)
	loadQuestions(t, m, src)

	typeLine(t, m, "1")
	typeLine(t, m, "")
	typeLine(t, m, "1")
	typeLine(t, m, "a") // wrong answer
	cmd := typeLine(t, m, "e")

	if cmd == nil {
		t.Fatal("expected a fetch command for the explanation")
	}
	if !m.waiting {
		t.Error("expected model to be waiting for the explanation")
	}

	msg := cmd()
	done, ok := msg.(explainDoneMsg)
	if !ok {
		t.Fatalf("command produced %T, want explainDoneMsg", msg)
	}
	if done.req.ID != "n1" {
		t.Errorf("explain request id = %q, want n1", done.req.ID)
	}

	m.Update(done)
	if m.waiting {
		t.Error("expected waiting to clear after resolution")
	}
	view := m.View(80, 40)
	if !strings.Contains(view, src.explainText) {
		t.Errorf("view missing explanation:\n%s", view)
	}
}

func TestExplainErrorShownInTranscript(t *testing.T) {
	src := &mockSource{groups: testGroups(), explainErr: errors.New("provider down")}
	m := New(src)
	loadQuestions(t, m, src)

	typeLine(t, m, "1")
	typeLine(t, m, "")
	typeLine(t, m, "1")
	typeLine(t, m, "a")
	cmd := typeLine(t, m, "e")
	m.Update(cmd())

	view := m.View(80, 40)
	if !strings.Contains(view, "provider down") {
		t.Errorf("view missing explain error:\n%s", view)
	}
}

func TestInputDroppedWhileWaiting(t *testing.T) {
	src := &mockSource{groups: testGroups(), explainText: "later"}
	m := New(src)
	loadQuestions(t, m, src)

	typeLine(t, m, "1")
	typeLine(t, m, "")
	typeLine(t, m, "1")
	typeLine(t, m, "a")
	typeLine(t, m, "e")

	before := m.transcript.String()
	if cmd := typeLine(t, m, "anything"); cmd != nil {
		t.Error("expected input during fetch to produce no command")
	}
	if m.transcript.String() != before {
		t.Error("expected transcript unchanged while waiting")
	}
}

func TestQuitProducesQuitCommand(t *testing.T) {
	src := &mockSource{groups: testGroups()}
	m := New(src)
	loadQuestions(t, m, src)

	cmd := typeLine(t, m, "quit")
	if cmd == nil {
		t.Fatal("expected a command after quit")
	}
	if msg := cmd(); msg == nil {
		t.Error("expected quit message")
	}
}

func TestTranscriptTailFitsHeight(t *testing.T) {
	src := &mockSource{groups: testGroups()}
	m := New(src)
	loadQuestions(t, m, src)

	view := m.View(80, 6)
	lines := strings.Split(view, "\n")
	if len(lines) > 7 {
		t.Errorf("view has %d lines for height 6", len(lines))
	}
}

func TestStaleTokenTriggersAuthFallback(t *testing.T) {
	m := New(&mockSource{})
	fired := false
	m.AuthExpired = func() tea.Msg {
		fired = true
		return nil
	}

	_, cmd := m.Update(questionsLoadedMsg{err: apiclient.ErrUnauthorized})
	if cmd == nil {
		t.Fatal("expected a command for the auth fallback")
	}
	cmd()
	if !fired {
		t.Error("expected AuthExpired to fire")
	}
	if m.loadErr != nil {
		t.Error("auth failure should not be shown as a load error")
	}
}
