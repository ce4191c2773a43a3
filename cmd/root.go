package cmd

import (
	"github.com/joho/godotenv"
	"github.com/openshelf/booklens/internal/runcmd"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "booklens",
		Short: "Book list analyzer answering twelve standing questions from Open Library data",
		Long: `Booklens resolves a list of ISBNs against Open Library, normalizes the raw
payloads into a uniform record table, and answers twelve standing questions
about the set (distinct titles, medians, top publishers, text statistics).

Raw payloads are cached in a local key-value store so repeated runs are fast
and can operate fully offline.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(runcmd.NewRunCmd())
	cmd.AddCommand(runcmd.NewFetchCmd())
	cmd.AddCommand(runcmd.NewInspectCmd())

	return cmd
}
