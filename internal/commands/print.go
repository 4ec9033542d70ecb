package commands

import (
	"fmt"
	"time"

	"github.com/cardledger-dev/cardledger/internal/batch"
)

func printResult(res *batch.Result) {
	fmt.Printf("%s  [%s]\n", res.JobName, res.Status)
	fmt.Printf("  job id:    %s\n", res.JobID)
	fmt.Printf("  processed: %d  succeeded: %d  failed: %d\n",
		res.RecordsProcessed, res.RecordsSucceeded, res.RecordsFailed)
	if res.OutputFilePath != "" {
		fmt.Printf("  output:    %s\n", res.OutputFilePath)
	}
	if res.ErrorMessage != "" {
		fmt.Printf("  error:     %s\n", res.ErrorMessage)
	}
	for _, e := range res.Errors {
		fmt.Printf("  - %s\n", e)
	}
}

func printNightly(nightly *batch.NightlyResult) {
	fmt.Printf("nightly cycle (%s)\n", nightly.EndTime.Sub(nightly.StartTime).Round(time.Millisecond))
	for _, sr := range nightly.Stages {
		if sr.Skipped {
			fmt.Printf("== %s: skipped\n", sr.Stage)
			continue
		}
		fmt.Printf("== ")
		printResult(sr.Result)
	}
}
