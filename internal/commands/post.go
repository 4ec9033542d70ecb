package commands

import (
	"github.com/spf13/cobra"

	"github.com/cardledger-dev/cardledger/internal/batch"
	"github.com/cardledger-dev/cardledger/internal/posting"
)

func newPostCommand() *cobra.Command {
	var ledgerDir string

	cmd := &cobra.Command{
		Use:   "post",
		Short: "Post pending transactions to account balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnv(ledgerDir)
			if err != nil {
				return err
			}
			defer env.logger.Sync() //nolint:errcheck

			registry := batch.Registry{
				batch.JobTransactionPosting: posting.NewService(env.store, env.logger).Run,
			}
			runner := batch.NewRunner(registry, env.history, env.logger)

			res, err := runner.Run(cmd.Context(), batch.JobTransactionPosting)
			if err != nil {
				return err
			}
			printResult(res)
			return nil
		},
	}

	cmd.Flags().StringVar(&ledgerDir, "ledger", ".", "ledger directory")

	return cmd
}
