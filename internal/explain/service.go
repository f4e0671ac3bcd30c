package explain

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/nicojapas/interview-trainer/internal/llm"
)

// Cache persists generated explanations keyed by question id so each
// question is explained at most once.
type Cache interface {
	Learn(ctx context.Context, questionID string) (string, error)
	SaveLearn(ctx context.Context, questionID, text string) error
}

// Service generates tutor explanations for quiz questions, reading
// through a persistent cache.
type Service struct {
	provider llm.Provider
	cache    Cache
}

// NewService builds an explanation service. The cache may be nil, in
// which case every request hits the provider.
func NewService(provider llm.Provider, cache Cache) *Service {
	return &Service{provider: provider, cache: cache}
}

// Explain returns a pedagogical explanation for the given question. A
// cached explanation is returned without calling the provider; a fresh
// one is cached before returning. Cache write failures are reported to
// stderr but do not fail the request.
func (s *Service) Explain(ctx context.Context, questionID, question string, options []string) (string, error) {
	if s.cache != nil && questionID != "" {
		cached, err := s.cache.Learn(ctx, questionID)
		if err != nil {
			return "", fmt.Errorf("read cached explanation: %w", err)
		}
		if cached != "" {
			return cached, nil
		}
	}

	resp, err := s.provider.Generate(llm.WithPurpose(ctx, "explain"), llm.Request{
		System: tutorSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserPrompt(question, options)},
		},
		MaxTokens:   explainMaxTokens,
		Temperature: explainTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("generate explanation: %w", err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", &llm.ErrEmptyResponse{}
	}

	if s.cache != nil && questionID != "" {
		if err := s.cache.SaveLearn(ctx, questionID, text); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to cache explanation for %s: %v\n", questionID, err)
		}
	}

	return text, nil
}
