package explain

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/nicojapas/interview-trainer/internal/llm"
)

type memCache struct {
	learn   map[string]string
	saveErr error
	reads   int
	writes  int
}

func newMemCache() *memCache {
	return &memCache{learn: make(map[string]string)}
}

func (c *memCache) Learn(_ context.Context, id string) (string, error) {
	c.reads++
	return c.learn[id], nil
}

func (c *memCache) SaveLearn(_ context.Context, id, text string) error {
	c.writes++
	if c.saveErr != nil {
		return c.saveErr
	}
	c.learn[id] = text
	return nil
}

func TestExplain_CacheHitSkipsProvider(t *testing.T) {
	cache := newMemCache()
	cache.learn["q1"] = "already explained"
	mock := llm.NewMockProvider()
	svc := NewService(mock, cache)

	got, err := svc.Explain(context.Background(), "q1", "What is TCP?", []string{"a", "b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "already explained" {
		t.Errorf("got %q, want cached text", got)
	}
	if mock.CallCount() != 0 {
		t.Errorf("provider called %d times, want 0", mock.CallCount())
	}
}

func TestExplain_CacheMissGeneratesAndCaches(t *testing.T) {
	cache := newMemCache()
	mock := llm.NewMockProvider(llm.MockResponse{Text: "TCP is a transport protocol.\n"})
	svc := NewService(mock, cache)

	got, err := svc.Explain(context.Background(), "q1", "What is TCP?", []string{"transport", "application"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "TCP is a transport protocol." {
		t.Errorf("got %q, want trimmed provider text", got)
	}
	if cache.learn["q1"] != "TCP is a transport protocol." {
		t.Errorf("cached = %q, want provider text", cache.learn["q1"])
	}

	req := mock.Calls[0]
	if !strings.Contains(req.System, "friendly tutor") {
		t.Errorf("system prompt missing tutor persona: %q", req.System)
	}
	if len(req.Messages) != 1 || !strings.Contains(req.Messages[0].Content, "Options: transport, application") {
		t.Errorf("user message = %+v, want question with joined options", req.Messages)
	}
	if req.MaxTokens != 500 || req.Temperature != 0.5 {
		t.Errorf("generation config = (%d, %v), want (500, 0.5)", req.MaxTokens, req.Temperature)
	}
}

func TestExplain_ProviderErrorPropagates(t *testing.T) {
	cache := newMemCache()
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}})
	svc := NewService(mock, cache)

	if _, err := svc.Explain(context.Background(), "q1", "q", nil); err == nil {
		t.Fatal("expected error")
	}
	if cache.writes != 0 {
		t.Errorf("cache writes = %d, want 0", cache.writes)
	}
}

func TestExplain_EmptyTextIsError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "   \n"})
	svc := NewService(mock, newMemCache())

	_, err := svc.Explain(context.Background(), "q1", "q", nil)
	var empty *llm.ErrEmptyResponse
	if !errors.As(err, &empty) {
		t.Fatalf("error = %v, want ErrEmptyResponse", err)
	}
}

func TestExplain_CacheWriteFailureIsNonFatal(t *testing.T) {
	cache := newMemCache()
	cache.saveErr = errors.New("disk full")
	mock := llm.NewMockProvider(llm.MockResponse{Text: "explanation"})
	svc := NewService(mock, cache)

	got, err := svc.Explain(context.Background(), "q1", "q", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "explanation" {
		t.Errorf("got %q, want provider text", got)
	}
}

func TestExplain_NilCache(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Text: "first"},
		llm.MockResponse{Text: "second"},
	)
	svc := NewService(mock, nil)

	for _, want := range []string{"first", "second"} {
		got, err := svc.Explain(context.Background(), "q1", "q", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	}
}
