package interest

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardledger-dev/cardledger/internal/batch"
	"github.com/cardledger-dev/cardledger/internal/id"
	"github.com/cardledger-dev/cardledger/internal/ledger"
	"github.com/cardledger-dev/cardledger/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

var accrualDay = time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

func account(accountID int, balance string, status model.AccountStatus) model.Account {
	return model.Account{
		ID:             accountID,
		CustomerID:     100 + accountID,
		Status:         status,
		CurrentBalance: dec(balance),
		CreditLimit:    dec("10000.00"),
	}
}

func accrue(t *testing.T, store *ledger.Memory, apr string) *batch.Result {
	t.Helper()
	res := batch.NewResult("interest-accrual")
	err := NewService(store, dec(apr), nil).RunFor(context.Background(), res, accrualDay)
	require.NoError(t, err)
	res.Finish()
	return res
}

func TestAccrual(t *testing.T) {
	store := ledger.NewMemory()
	store.SetAccounts([]model.Account{account(1, "1000.00", model.AccountActive)})

	res := accrue(t, store, "0.365") // daily rate exactly 0.001

	assert.Equal(t, batch.StatusCompleted, res.Status)
	assert.Equal(t, 1, res.RecordsSucceeded)

	// 1000.00 * 0.001 = 1.00
	tx, ok := store.Transaction(id.FormatInterestID(1, accrualDay))
	require.True(t, ok)
	assert.True(t, tx.Amount.Equal(dec("1.00")))
	assert.True(t, tx.Processed, "synthetic transaction is pre-posted")
	assert.Equal(t, model.TypeInterest, tx.TypeCode)
	assert.Equal(t, model.SourceBatch, tx.Source)
	assert.Contains(t, tx.Description, "2025-01-31")
	assert.Equal(t, accrualDay, tx.Date)

	a, _ := store.Account(1)
	assert.True(t, a.CurrentBalance.Equal(dec("1001.00")))
	assert.True(t, a.CurrentCycleDebit.Equal(dec("1.00")))
}

func TestRoundingHalfAwayFromZero(t *testing.T) {
	store := ledger.NewMemory()
	// 4567.00 * (0.1999/365) = 2.50131... -> 2.50
	// 1234.56 * (0.1999/365) = 0.67615... -> 0.68
	store.SetAccounts([]model.Account{
		account(1, "4567.00", model.AccountActive),
		account(2, "1234.56", model.AccountActive),
	})

	accrue(t, store, "0.1999")

	tx1, _ := store.Transaction(id.FormatInterestID(1, accrualDay))
	assert.Equal(t, "2.50", tx1.Amount.StringFixed(2))
	tx2, _ := store.Transaction(id.FormatInterestID(2, accrualDay))
	assert.Equal(t, "0.68", tx2.Amount.StringFixed(2))
}

func TestSkipsIneligibleAccounts(t *testing.T) {
	store := ledger.NewMemory()
	store.SetAccounts([]model.Account{
		account(1, "0.00", model.AccountActive),
		account(2, "-50.00", model.AccountActive),
		account(3, "1000.00", model.AccountClosed),
	})

	res := accrue(t, store, "0.1999")

	assert.Zero(t, res.RecordsProcessed, "no eligible accounts")
	assert.Empty(t, store.Transactions(nil))
}

func TestDuplicateAccrualGuard(t *testing.T) {
	store := ledger.NewMemory()
	store.SetAccounts([]model.Account{account(1, "1000.00", model.AccountActive)})

	first := accrue(t, store, "0.365")
	require.Equal(t, 1, first.RecordsSucceeded)

	second := accrue(t, store, "0.365")
	assert.Equal(t, batch.StatusCompletedWithErrors, second.Status)
	assert.Equal(t, 1, second.RecordsFailed)
	require.Len(t, second.Errors, 1)
	assert.Contains(t, second.Errors[0], "already accrued")

	a, _ := store.Account(1)
	assert.True(t, a.CurrentBalance.Equal(dec("1001.00")), "balance moved once only")
}

func TestPerAccountFailureIsolation(t *testing.T) {
	store := ledger.NewMemory()
	store.SetAccounts([]model.Account{
		account(1, "1000.00", model.AccountActive),
		account(2, "2000.00", model.AccountActive),
	})
	// Pre-seed account 1's interest transaction so it fails the guard.
	require.NoError(t, store.AddTransaction(model.Transaction{
		ID:        id.FormatInterestID(1, accrualDay),
		AccountID: 1,
		Amount:    dec("1.00"),
		Date:      accrualDay,
		Processed: true,
	}))
	require.NoError(t, store.Commit(context.Background()))

	res := accrue(t, store, "0.365")

	assert.Equal(t, 1, res.RecordsFailed)
	assert.Equal(t, 1, res.RecordsSucceeded, "other accounts still accrue")
	_, ok := store.Transaction(id.FormatInterestID(2, accrualDay))
	assert.True(t, ok)
}
