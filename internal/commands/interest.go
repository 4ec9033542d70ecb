package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cardledger-dev/cardledger/internal/batch"
	"github.com/cardledger-dev/cardledger/internal/interest"
)

func newInterestCommand() *cobra.Command {
	var ledgerDir string
	var dateStr string
	var apr float64

	cmd := &cobra.Command{
		Use:   "interest",
		Short: "Accrue daily interest on positive balances",
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
			if cmd.Flags().Changed("apr") {
				rate = decimal.NewFromFloat(apr)
			}

			svc := interest.NewService(env.store, rate, env.logger)
			registry := batch.Registry{
				batch.JobInterestAccrual: func(ctx context.Context, res *batch.Result) error {
					return svc.RunFor(ctx, res, day)
				},
			}
			runner := batch.NewRunner(registry, env.history, env.logger)

			res, err := runner.Run(cmd.Context(), batch.JobInterestAccrual)
			if err != nil {
				return err
			}
			printResult(res)
			return nil
		},
	}

	cmd.Flags().StringVar(&ledgerDir, "ledger", ".", "ledger directory")
	cmd.Flags().StringVar(&dateStr, "date", "", "calculation date (YYYY-MM-DD, default today)")
	cmd.Flags().Float64Var(&apr, "apr", 0, "annual rate override (e.g. 0.1999)")

	return cmd
}
