package cmd

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/nicojapas/interview-trainer/internal/apiclient"
	"github.com/nicojapas/interview-trainer/internal/app"
	"github.com/nicojapas/interview-trainer/internal/explain"
	"github.com/nicojapas/interview-trainer/internal/llm"
	"github.com/nicojapas/interview-trainer/internal/quiz"
	"github.com/nicojapas/interview-trainer/internal/router"
	"github.com/nicojapas/interview-trainer/internal/screen"
	"github.com/nicojapas/interview-trainer/internal/screens/login"
	"github.com/nicojapas/interview-trainer/internal/screens/terminal"
	"github.com/nicojapas/interview-trainer/internal/store"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a quiz session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func init() {
	playCmd.Flags().String("server", "", "Trainer API server URL (remote mode)")
	rootCmd.Flags().String("server", "", "Trainer API server URL (remote mode)")
}

// runPlay launches the TUI. With --server the questions and
// explanations come from a remote trainer API; otherwise everything is
// served from the local database.
func runPlay(cmd *cobra.Command) error {
	server, _ := cmd.Flags().GetString("server")
	if server != "" {
		client := apiclient.New(server)
		var mkLogin func() screen.Screen
		mkTerminal := func() screen.Screen {
			t := terminal.New(client)
			t.AuthExpired = func() tea.Msg {
				return router.ReplaceScreenMsg{Screen: mkLogin()}
			}
			return t
		}
		mkLogin = func() screen.Screen {
			return login.New(client, mkTerminal)
		}
		return app.Run(mkLogin())
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	src := &localSource{store: st}
	provider, err := llm.NewProviderFromEnv(cmd.Context(), st.EventRepo())
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Explanations will be unavailable.")
	} else {
		src.explainer = explain.NewService(provider, st)
	}

	return app.Run(terminal.New(src))
}

// localSource serves the quiz directly from the local store.
type localSource struct {
	store     *store.Store
	explainer *explain.Service
}

func (s *localSource) Questions(ctx context.Context) ([]quiz.SubtopicGroup, error) {
	groups, err := s.store.ListGroups(ctx)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("no questions in the database; run 'trainer import <bank.json>' first")
	}
	return groups, nil
}

func (s *localSource) Explain(ctx context.Context, req quiz.ExplainRequest) (string, error) {
	if s.explainer == nil {
		return "", fmt.Errorf("no LLM provider configured; set TRAINER_GEMINI_API_KEY or a similar key")
	}
	ctx = llm.WithSession(ctx, req.SessionID)
	return s.explainer.Explain(ctx, req.ID, req.Prompt, req.Options)
}
