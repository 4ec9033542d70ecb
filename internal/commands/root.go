package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cardledger-dev/cardledger/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "cardledger",
		Short:   "Credit-card ledger batch processing",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newPostCommand())
	rootCmd.AddCommand(newInterestCommand())
	rootCmd.AddCommand(newStatementsCommand())
	rootCmd.AddCommand(newExportCommand())
	rootCmd.AddCommand(newNightlyCommand())
	rootCmd.AddCommand(newHistoryCommand())

	return rootCmd
}
