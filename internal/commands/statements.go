package commands

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cardledger-dev/cardledger/internal/batch"
	"github.com/cardledger-dev/cardledger/internal/id"
	"github.com/cardledger-dev/cardledger/internal/statement"
)

func newStatementsCommand() *cobra.Command {
	var ledgerDir string
	var year, month int

	cmd := &cobra.Command{
		Use:   "statements",
		Short: "Assemble monthly statements into a text report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnv(ledgerDir)
			if err != nil {
				return err
			}
			defer env.logger.Sync() //nolint:errcheck

			registry := batch.Registry{
				batch.JobStatementGeneration: env.statementHandler(year, month),
			}
			runner := batch.NewRunner(registry, env.history, env.logger)

			res, err := runner.Run(cmd.Context(), batch.JobStatementGeneration)
			if err != nil {
				return err
			}
			printResult(res)
			return nil
		},
	}

	cmd.Flags().StringVar(&ledgerDir, "ledger", ".", "ledger directory")
	cmd.Flags().IntVar(&year, "year", 0, "statement year (required)")
	cmd.Flags().IntVar(&month, "month", 0, "statement month 1-12 (required)")
	_ = cmd.MarkFlagRequired("year")
	_ = cmd.MarkFlagRequired("month")

	return cmd
}

// statementHandler assembles, renders, and writes the period's report,
// recording the artifact path on the result.
func (e *env) statementHandler(year, month int) batch.Handler {
	return func(ctx context.Context, res *batch.Result) error {
		svc := statement.NewService(e.store, e.policy(), e.logger)
		statements, err := svc.Assemble(ctx, res, year, month)
		if err != nil {
			return err
		}

		var sb strings.Builder
		if err := statement.Render(&sb, e.cfg.Business.Name, statements); err != nil {
			return err
		}

		path, err := e.outputPath(id.StatementArtifact(year, month))
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
			return err
		}
		res.OutputFilePath = path
		return nil
	}
}
