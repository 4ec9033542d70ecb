package commands

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cardledger-dev/cardledger/internal/batch"
	"github.com/cardledger-dev/cardledger/internal/export"
	"github.com/cardledger-dev/cardledger/internal/id"
)

func newExportCommand() *cobra.Command {
	var ledgerDir string
	var dataName string
	var formatName string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Snapshot a ledger collection to fixed-width, CSV, or JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnv(ledgerDir)
			if err != nil {
				return err
			}
			defer env.logger.Sync() //nolint:errcheck

			dataset, err := export.ParseDataset(dataName)
			if err != nil {
				return err
			}
			format, err := export.ParseFormat(formatName)
			if err != nil {
				return err
			}

			registry := batch.Registry{
				batch.JobExport: func(ctx context.Context, res *batch.Result) error {
					generated := time.Now().UTC()
					svc := export.NewService(env.store, env.logger)

					var sb strings.Builder
					count, err := svc.Export(&sb, dataset, format, generated)
					if err != nil {
						return err
					}

					path, err := env.outputPath(id.ExportArtifact(string(dataset), format.Ext(), generated))
					if err != nil {
						return err
					}
					if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
						return err
					}

					res.OutputFilePath = path
					for i := 0; i < count; i++ {
						res.RecordSuccess()
					}
					return nil
				},
			}
			runner := batch.NewRunner(registry, env.history, env.logger)

			res, err := runner.Run(cmd.Context(), batch.JobExport)
			if err != nil {
				return err
			}
			printResult(res)
			return nil
		},
	}

	cmd.Flags().StringVar(&ledgerDir, "ledger", ".", "ledger directory")
	cmd.Flags().StringVar(&dataName, "data", "", "dataset: accounts, transactions, customers (required)")
	cmd.Flags().StringVar(&formatName, "format", "csv", "format: fixed, csv, json")
	_ = cmd.MarkFlagRequired("data")

	return cmd
}
