package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cardledger-dev/cardledger/internal/batch"
	"github.com/cardledger-dev/cardledger/internal/interest"
	"github.com/cardledger-dev/cardledger/internal/posting"
)

func newNightlyCommand() *cobra.Command {
	var ledgerDir string
	var dateStr string

	cmd := &cobra.Command{
		Use:   "nightly",
		Short: "Run the nightly cycle: post, accrue interest, month-end statements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnv(ledgerDir)
			if err != nil {
				return err
			}
			defer env.logger.Sync() //nolint:errcheck

			day := time.Now().UTC()
			if dateStr != "" {
				day, err = time.Parse("2006-01-02", dateStr)
				if err != nil {
					return fmt.Errorf("parsing date: %w", err)
				}
			}

			rate := decimal.NewFromFloat(env.cfg.Interest.AnnualRate)
			interestSvc := interest.NewService(env.store, rate, env.logger)

			registry := batch.Registry{
				batch.JobTransactionPosting: posting.NewService(env.store, env.logger).Run,
				batch.JobInterestAccrual: func(ctx context.Context, res *batch.Result) error {
					return interestSvc.RunFor(ctx, res, day)
				},
				batch.JobStatementGeneration: env.statementHandler(day.Year(), int(day.Month())),
			}
			runner := batch.NewRunner(registry, env.history, env.logger)

			nightly, err := runner.RunNightly(cmd.Context(), batch.NightlyStages(), day)
			if err != nil {
				return err
			}
			printNightly(nightly)
			return nil
		},
	}

	cmd.Flags().StringVar(&ledgerDir, "ledger", ".", "ledger directory")
	cmd.Flags().StringVar(&dateStr, "date", "", "cycle date (YYYY-MM-DD, default today)")

	return cmd
}
