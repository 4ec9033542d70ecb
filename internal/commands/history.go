package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHistoryCommand() *cobra.Command {
	var ledgerDir string
	var limit int
	var jobID string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent batch job runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnv(ledgerDir)
			if err != nil {
				return err
			}
			defer env.logger.Sync() //nolint:errcheck

			if jobID != "" {
				res, ok, err := env.history.Get(jobID)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("no job %s in history", jobID)
				}
				printResult(res)
				return nil
			}

			results, err := env.history.Recent(limit)
			if err != nil {
				return err
			}
			if len(results) == 0 {
				fmt.Println("no job history")
				return nil
			}
			for _, res := range results {
				fmt.Printf("%s  %-22s %-22s processed=%d failed=%d\n",
					res.StartTime.Format("2006-01-02 15:04:05"),
					res.JobName, res.Status, res.RecordsProcessed, res.RecordsFailed)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&ledgerDir, "ledger", ".", "ledger directory")
	cmd.Flags().IntVar(&limit, "limit", 10, "max runs to list, most recent first")
	cmd.Flags().StringVar(&jobID, "job", "", "show one run by job id")

	return cmd
}
