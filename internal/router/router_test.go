package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/nicojapas/interview-trainer/internal/screen"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title   string
	initRan bool
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

func TestPushAndPop(t *testing.T) {
	s1 := &stubScreen{title: "login"}
	r := New(s1)

	s2 := &stubScreen{title: "terminal"}
	r.Push(s2)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "terminal" {
		t.Errorf("expected active 'terminal', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on pushed screen")
	}

	r.Pop()
	if r.Active().Title() != "login" {
		t.Errorf("expected active 'login', got %q", r.Active().Title())
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	r := New(&stubScreen{title: "login"})
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after pop at bottom, got %d", r.Depth())
	}
}

func TestPushScreenMsg(t *testing.T) {
	r := New(&stubScreen{title: "login"})

	s2 := &stubScreen{title: "terminal"}
	r.Update(PushScreenMsg{Screen: s2})

	if r.Depth() != 2 || r.Active().Title() != "terminal" {
		t.Errorf("expected terminal on top, got depth %d active %q", r.Depth(), r.Active().Title())
	}
}

func TestReplaceScreenMsg(t *testing.T) {
	r := New(&stubScreen{title: "login"})

	s2 := &stubScreen{title: "terminal"}
	r.Update(ReplaceScreenMsg{Screen: s2})

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after replace, got %d", r.Depth())
	}
	if r.Active().Title() != "terminal" {
		t.Errorf("expected active 'terminal', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run via ReplaceScreenMsg")
	}
}

func TestReplacePreservesStackDepth(t *testing.T) {
	r := New(&stubScreen{title: "first"})
	r.Push(&stubScreen{title: "second"})
	r.Replace(&stubScreen{title: "third"})

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "third" {
		t.Errorf("expected active 'third', got %q", r.Active().Title())
	}
}
