package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/nicojapas/interview-trainer/internal/config"
	"github.com/nicojapas/interview-trainer/internal/quiz"
)

// QuestionSource provides the grouped question bank.
type QuestionSource interface {
	ListGroups(ctx context.Context) ([]quiz.SubtopicGroup, error)
}

// Explainer generates (and caches) tutor explanations.
type Explainer interface {
	Explain(ctx context.Context, questionID, question string, options []string) (string, error)
}

// Server exposes the trainer API over HTTP.
type Server struct {
	cfg       config.Server
	questions QuestionSource
	explainer Explainer
}

// NewServer builds a Server. The explainer may be nil, in which case
// the explain endpoint reports the provider as unconfigured.
func NewServer(cfg config.Server, questions QuestionSource, explainer Explainer) *Server {
	return &Server{cfg: cfg, questions: questions, explainer: explainer}
}

// Handler builds the chi router with the full middleware stack. All
// endpoints except POST /api/auth require a bearer token.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Post("/api/auth", s.handleAuth)

	r.Group(func(pr chi.Router) {
		pr.Use(requireToken(s.cfg.AuthPassword))
		pr.Get("/api/questions", s.handleQuestions)
		pr.Post("/api/explain", s.handleExplain)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
