package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/nicojapas/interview-trainer/internal/store"
)

// recordingRepo captures appended events for assertions.
type recordingRepo struct {
	events []store.LLMEventData
	err    error
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, data store.LLMEventData) error {
	r.events = append(r.events, data)
	return r.err
}

func (r *recordingRepo) QueryLLMEvents(_ context.Context, _ int) ([]store.LLMEvent, error) {
	return nil, nil
}

func (r *recordingRepo) LLMStats(_ context.Context) (*store.LLMStats, error) {
	return &store.LLMStats{}, nil
}

func TestLogging_RecordsSuccess(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMockProvider(
		MockResponse{Text: "ok", Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
	)
	p := WithLogging(mock, "mock", repo)

	ctx := WithPurpose(context.Background(), "explain")
	if _, err := p.Generate(ctx, Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("events = %d, want 1", len(repo.events))
	}
	ev := repo.events[0]
	if ev.Purpose != "explain" {
		t.Errorf("purpose = %q, want explain", ev.Purpose)
	}
	if ev.Provider != "mock" {
		t.Errorf("provider = %q, want mock", ev.Provider)
	}
	if !ev.Success || ev.InputTokens != 10 || ev.OutputTokens != 5 {
		t.Errorf("event = %+v, want success with usage", ev)
	}
}

func TestLogging_RecordsFailure(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
	)
	p := WithLogging(mock, "mock", repo)

	if _, err := p.Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected error")
	}

	if len(repo.events) != 1 {
		t.Fatalf("events = %d, want 1", len(repo.events))
	}
	ev := repo.events[0]
	if ev.Success || ev.ErrorMessage == "" {
		t.Errorf("event = %+v, want failure with message", ev)
	}
	if ev.Purpose != "unknown" {
		t.Errorf("purpose = %q, want unknown", ev.Purpose)
	}
}

func TestLogging_RepoFailureDoesNotFailRequest(t *testing.T) {
	repo := &recordingRepo{err: errors.New("disk full")}
	p := WithLogging(NewMockProvider(MockResponse{Text: "ok"}), "mock", repo)

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "ok" {
		t.Fatalf("unexpected text: %s", resp.Text)
	}
}

func TestLogging_NilRepoPassthrough(t *testing.T) {
	mock := NewMockProvider(MockResponse{Text: "ok"})
	p := WithLogging(mock, "mock", nil)
	if p != Provider(mock) {
		t.Fatal("expected nil repo to return the inner provider unchanged")
	}
}

func TestLogging_RecordsSessionID(t *testing.T) {
	repo := &recordingRepo{}
	p := WithLogging(NewMockProvider(MockResponse{Text: "ok"}), "mock", repo)

	ctx := WithSession(WithPurpose(context.Background(), "explain"), "7b1e0a2c")
	if _, err := p.Generate(ctx, Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("events = %d, want 1", len(repo.events))
	}
	if got := repo.events[0].SessionID; got != "7b1e0a2c" {
		t.Errorf("session id = %q, want 7b1e0a2c", got)
	}
}

func TestLogging_NoSessionRecordsEmpty(t *testing.T) {
	repo := &recordingRepo{}
	p := WithLogging(NewMockProvider(MockResponse{Text: "ok"}), "mock", repo)

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := repo.events[0].SessionID; got != "" {
		t.Errorf("session id = %q, want empty", got)
	}
}
