package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardledger-dev/cardledger/internal/batch"
	"github.com/cardledger-dev/cardledger/internal/ledger"
	"github.com/cardledger-dev/cardledger/internal/model"
)

func run(t *testing.T, args ...string) error {
	t.Helper()
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	return cmd.Execute()
}

func initLedger(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, run(t, "init", dir, "--name", "Test Bank"))
	return dir
}

func TestInitCreatesLedger(t *testing.T) {
	dir := initLedger(t)

	for _, name := range []string{
		ConfigFile,
		ledger.AccountsFile,
		ledger.CardsFile,
		ledger.CustomersFile,
		ledger.TransactionsFile,
	} {
		_, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, "%s should exist", name)
	}

	_, err := os.Stat(filepath.Join(dir, "exports"))
	require.NoError(t, err)
}

func TestInitSampleSeedsData(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, run(t, "init", dir, "--name", "Test Bank", "--sample"))

	store, err := ledger.LoadDir(dir)
	require.NoError(t, err)
	assert.Len(t, store.Accounts(nil), 1)
	assert.Len(t, store.Customers(), 1)
	assert.Len(t, store.Transactions(nil), 1)
}

func TestPostCommandPersistsAndRecordsHistory(t *testing.T) {
	dir := initLedger(t)

	// Seed an account, card, and one unposted debit.
	store, err := ledger.LoadDir(dir)
	require.NoError(t, err)
	store.SetAccounts([]model.Account{{
		ID: 1, CustomerID: 101, Status: model.AccountActive,
		CurrentBalance: decimal.NewFromInt(100),
		CreditLimit:    decimal.NewFromInt(5000),
		OpenDate:       time.Now().UTC(), ExpirationDate: time.Now().UTC().AddDate(4, 0, 0),
	}})
	store.SetCards([]model.Card{{
		Number: "4111111111111111", AccountID: 1,
		Status: model.CardActive, Expiration: time.Now().UTC().AddDate(4, 0, 0),
	}})
	require.NoError(t, store.AddTransaction(model.Transaction{
		ID: "t1", AccountID: 1, CardNumber: "4111111111111111",
		Amount: decimal.NewFromInt(50), Date: time.Now().UTC().AddDate(0, 0, -1),
	}))
	require.NoError(t, store.Commit(context.Background()))

	require.NoError(t, run(t, "post", "--ledger", dir))

	// The balance change survived the process boundary.
	reloaded, err := ledger.LoadDir(dir)
	require.NoError(t, err)
	a, ok := reloaded.Account(1)
	require.True(t, ok)
	assert.True(t, a.CurrentBalance.Equal(decimal.NewFromInt(150)))

	// History landed on disk.
	history := batch.NewFileHistory(dir)
	recent, err := history.Recent(5)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "transaction-posting", recent[0].JobName)
	assert.Equal(t, batch.StatusCompleted, recent[0].Status)
}

func TestNightlyMidMonthSkipsStatements(t *testing.T) {
	dir := initLedger(t)

	require.NoError(t, run(t, "nightly", "--ledger", dir, "--date", "2025-04-15"))

	history := batch.NewFileHistory(dir)
	recent, err := history.Recent(10)
	require.NoError(t, err)
	names := make([]string, len(recent))
	for i, res := range recent {
		names[i] = res.JobName
	}
	assert.Contains(t, names, "transaction-posting")
	assert.Contains(t, names, "interest-accrual")
	assert.NotContains(t, names, "statement-generation")
}

func TestNightlyMonthEndGeneratesStatements(t *testing.T) {
	dir := initLedger(t)

	require.NoError(t, run(t, "nightly", "--ledger", dir, "--date", "2025-04-30"))

	history := batch.NewFileHistory(dir)
	recent, err := history.Recent(10)
	require.NoError(t, err)
	names := make([]string, len(recent))
	for i, res := range recent {
		names[i] = res.JobName
	}
	assert.Contains(t, names, "statement-generation")

	_, err = os.Stat(filepath.Join(dir, "exports", "statements-2025-04.txt"))
	require.NoError(t, err)
}

func TestExportCommandWritesArtifact(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, run(t, "init", dir, "--name", "Test Bank", "--sample"))

	require.NoError(t, run(t, "export", "--ledger", dir, "--data", "accounts", "--format", "json"))

	entries, err := os.ReadDir(filepath.Join(dir, "exports"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Name(), "accounts-")
	assert.Contains(t, entries[0].Name(), ".json")
}

func TestHistoryUnknownJob(t *testing.T) {
	dir := initLedger(t)
	err := run(t, "history", "--ledger", dir, "--job", "nope")
	require.Error(t, err)
}
