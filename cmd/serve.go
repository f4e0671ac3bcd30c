package cmd

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/nicojapas/interview-trainer/internal/api"
	"github.com/nicojapas/interview-trainer/internal/config"
	"github.com/nicojapas/interview-trainer/internal/explain"
	"github.com/nicojapas/interview-trainer/internal/llm"
	"github.com/nicojapas/interview-trainer/internal/store"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the trainer API server",
	Long:  "Serves /api/auth, /api/questions, and /api/explain for remote clients.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromEnv()
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.HTTPAddr = addr
		}
		if p, _ := cmd.Flags().GetString("db"); p != "" {
			cfg.DBPath = p
		}
		if cfg.AuthPassword == "" {
			return errors.New("TRAINER_AUTH_PASSWORD must be set")
		}

		dbPath := cfg.DBPath
		if dbPath == "" {
			var err error
			dbPath, err = store.DefaultDBPath()
			if err != nil {
				return fmt.Errorf("resolve DB path: %w", err)
			}
		} else if err := store.EnsureDir(dbPath); err != nil {
			return err
		}

		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		var explainer api.Explainer
		provider, err := llm.NewProviderFromEnv(cmd.Context(), st.EventRepo())
		if err != nil {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
			fmt.Fprintln(os.Stderr, "The explain endpoint will report an error.")
		} else {
			explainer = explain.NewService(provider, st)
		}

		srv := api.NewServer(cfg, st, explainer)
		log.Printf("trainer API listening on %s (db %s)", cfg.HTTPAddr, dbPath)
		return http.ListenAndServe(cfg.HTTPAddr, srv.Handler())
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides TRAINER_ADDR, default :8787)")
}
