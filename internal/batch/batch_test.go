package batch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultLifecycle(t *testing.T) {
	res := NewResult("transaction-posting")
	assert.Equal(t, StatusStarted, res.Status)
	assert.NotEmpty(t, res.JobID)
	assert.False(t, res.StartTime.IsZero())

	res.RecordSuccess()
	res.RecordSuccess()
	res.Finish()

	assert.Equal(t, StatusCompleted, res.Status)
	assert.Equal(t, 2, res.RecordsProcessed)
	assert.Equal(t, 2, res.RecordsSucceeded)
	assert.Zero(t, res.RecordsFailed)
	assert.False(t, res.EndTime.IsZero())
}

func TestResultCompletedWithErrors(t *testing.T) {
	res := NewResult("transaction-posting")
	res.RecordSuccess()
	res.RecordError("transaction %s rejected: %s", "t9", "credit limit exceeded")
	res.Finish()

	assert.Equal(t, StatusCompletedWithErrors, res.Status)
	assert.Equal(t, 2, res.RecordsProcessed)
	assert.Equal(t, 1, res.RecordsFailed)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "t9")
}

func TestResultFail(t *testing.T) {
	res := NewResult("interest-accrual")
	res.Fail(errors.New("store unreachable"))

	assert.Equal(t, StatusFailed, res.Status)
	assert.Equal(t, "store unreachable", res.ErrorMessage)
}

func TestKindNames(t *testing.T) {
	kind, ok := KindByName("statement-generation")
	require.True(t, ok)
	assert.Equal(t, JobStatementGeneration, kind)
	assert.Equal(t, "statement-generation", kind.Name())

	_, ok = KindByName("bogus")
	assert.False(t, ok)
}

func TestRunnerHandlerError(t *testing.T) {
	history := NewMemoryHistory()
	registry := Registry{
		JobTransactionPosting: func(ctx context.Context, res *Result) error {
			return errors.New("store unreachable")
		},
	}
	runner := NewRunner(registry, history, nil)

	res, err := runner.Run(context.Background(), JobTransactionPosting)
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, res.Status)
	assert.Equal(t, "store unreachable", res.ErrorMessage)

	// Failed runs still land in history.
	got, ok, err := history.Get(res.JobID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, StatusFailed, got.Status)
}

func TestRunnerPanicBecomesFailed(t *testing.T) {
	history := NewMemoryHistory()
	registry := Registry{
		JobInterestAccrual: func(ctx context.Context, res *Result) error {
			panic("divide by zero")
		},
	}
	runner := NewRunner(registry, history, nil)

	res, err := runner.Run(context.Background(), JobInterestAccrual)
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, res.Status)
	assert.Contains(t, res.ErrorMessage, "divide by zero")
}

func TestRunnerUnknownKind(t *testing.T) {
	runner := NewRunner(Registry{}, NewMemoryHistory(), nil)
	_, err := runner.Run(context.Background(), JobExport)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no handler")
}

func TestMemoryHistoryRecent(t *testing.T) {
	history := NewMemoryHistory()
	for _, name := range []string{"a", "b", "c"} {
		res := NewResult(name)
		res.Finish()
		require.NoError(t, history.Append(res))
	}

	recent, err := history.Recent(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "c", recent[0].JobName)
	assert.Equal(t, "b", recent[1].JobName)

	all, err := history.Recent(10)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestFileHistoryRoundTrip(t *testing.T) {
	dir := t.TempDir()
	history := NewFileHistory(dir)

	res := NewResult("transaction-posting")
	res.RecordSuccess()
	res.RecordError("transaction t9 rejected: card 4111 not found")
	res.RecordError("transaction t10 rejected: account 7 inactive")
	res.OutputFilePath = "exports/out.csv"
	res.Finish()
	require.NoError(t, history.Append(res))

	// Reopen to prove the history survives restarts.
	reopened := NewFileHistory(dir)
	got, ok, err := reopened.Get(res.JobID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, res.JobName, got.JobName)
	assert.Equal(t, StatusCompletedWithErrors, got.Status)
	assert.Equal(t, 3, got.RecordsProcessed)
	assert.Equal(t, 2, got.RecordsFailed)
	require.Len(t, got.Errors, 2)
	assert.Contains(t, got.Errors[1], "t10")
	assert.Equal(t, "exports/out.csv", got.OutputFilePath)
}

func TestFileHistoryRecentOrder(t *testing.T) {
	history := NewFileHistory(t.TempDir())
	for _, name := range []string{"first", "second", "third"} {
		res := NewResult(name)
		res.Finish()
		require.NoError(t, history.Append(res))
	}

	recent, err := history.Recent(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "third", recent[0].JobName)
	assert.Equal(t, "second", recent[1].JobName)
}

func TestLastDayOfMonth(t *testing.T) {
	assert.True(t, LastDayOfMonth(time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)))
	assert.False(t, LastDayOfMonth(time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC)))
	assert.True(t, LastDayOfMonth(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)))
	assert.False(t, LastDayOfMonth(time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC)))
	assert.True(t, LastDayOfMonth(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)))
}

func TestRunNightlyStatementStageGating(t *testing.T) {
	noop := func(ctx context.Context, res *Result) error { return nil }
	registry := Registry{
		JobTransactionPosting:  noop,
		JobInterestAccrual:     noop,
		JobStatementGeneration: noop,
	}
	runner := NewRunner(registry, NewMemoryHistory(), nil)

	// Last day of a 30-day month: statements run.
	nightly, err := runner.RunNightly(context.Background(), NightlyStages(), time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, nightly.Stages, 3)
	assert.NotNil(t, nightly.Stage("statement-generation"))

	// Mid-month: posting and interest run, statements skipped.
	nightly, err = runner.RunNightly(context.Background(), NightlyStages(), time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, nightly.Stages, 3)
	assert.NotNil(t, nightly.Stage("transaction-posting"))
	assert.NotNil(t, nightly.Stage("interest-accrual"))
	assert.Nil(t, nightly.Stage("statement-generation"))
	assert.True(t, nightly.Stages[2].Skipped)
}

func TestRunNightlyContinuesPastFailedStage(t *testing.T) {
	registry := Registry{
		JobTransactionPosting: func(ctx context.Context, res *Result) error {
			return errors.New("store unreachable")
		},
		JobInterestAccrual: func(ctx context.Context, res *Result) error {
			res.RecordSuccess()
			return nil
		},
		JobStatementGeneration: func(ctx context.Context, res *Result) error { return nil },
	}
	runner := NewRunner(registry, NewMemoryHistory(), nil)

	nightly, err := runner.RunNightly(context.Background(), NightlyStages(), time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, nightly.Stage("transaction-posting").Status)
	assert.Equal(t, StatusCompleted, nightly.Stage("interest-accrual").Status)
}
