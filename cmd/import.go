package cmd

import (
	"fmt"

	"github.com/nicojapas/interview-trainer/internal/bank"
	"github.com/nicojapas/interview-trainer/internal/store"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <bank.json>",
	Short: "Import a question bank file into the database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		n, err := bank.ImportFile(cmd.Context(), st, args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Imported %d questions into %s\n", n, dbPath)
		return nil
	},
}
