package api

import (
	"encoding/json"
	"net/http"

	"github.com/nicojapas/interview-trainer/internal/llm"
	"github.com/nicojapas/interview-trainer/internal/quiz"
)

func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	if s.questions == nil {
		writeError(w, http.StatusInternalServerError, "Database not configured")
		return
	}

	groups, err := s.questions.ListGroups(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if groups == nil {
		groups = []quiz.SubtopicGroup{}
	}

	writeJSON(w, http.StatusOK, groups)
}

func (s *Server) handleExplain(w http.ResponseWriter, r *http.Request) {
	if s.explainer == nil {
		writeError(w, http.StatusInternalServerError, "Explanation provider not configured")
		return
	}

	var req quiz.ExplainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Prompt == "" {
		writeError(w, http.StatusBadRequest, "question is required")
		return
	}

	ctx := llm.WithSession(r.Context(), req.SessionID)
	text, err := s.explainer.Explain(ctx, req.ID, req.Prompt, req.Options)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"explanation": text})
}
