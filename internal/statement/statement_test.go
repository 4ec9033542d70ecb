package statement

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardledger-dev/cardledger/internal/batch"
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

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func account(accountID int, balance, limit string) model.Account {
	return model.Account{
		ID:             accountID,
		CustomerID:     100 + accountID,
		Status:         model.AccountActive,
		CurrentBalance: dec(balance),
		CreditLimit:    dec(limit),
	}
}

func processedTx(txID string, accountID int, amount string, day time.Time) model.Transaction {
	return model.Transaction{
		ID:        txID,
		AccountID: accountID,
		Amount:    dec(amount),
		Date:      day,
		Processed: true,
	}
}

func TestPeriod(t *testing.T) {
	start, end := Period(2025, 4)
	assert.Equal(t, date(2025, 4, 1), start)
	assert.Equal(t, date(2025, 4, 30), end)

	_, end = Period(2024, 2)
	assert.Equal(t, date(2024, 2, 29), end)
}

func TestComputeAggregates(t *testing.T) {
	start, end := Period(2025, 1)
	a := account(1, "1150.00", "5000.00")
	txs := []model.Transaction{
		processedTx("t1", 1, "200.00", date(2025, 1, 10)),
		processedTx("t2", 1, "-50.00", date(2025, 1, 20)),
	}

	stmt := Compute(a, txs, start, end, DefaultPolicy())

	assert.True(t, stmt.PreviousBalance.Equal(dec("1000.00")), "currentBalance - period sum")
	assert.True(t, stmt.TotalDebits.Equal(dec("200.00")))
	assert.True(t, stmt.TotalCredits.Equal(dec("50.00")))
	assert.True(t, stmt.NewBalance.Equal(dec("1150.00")))
	assert.True(t, stmt.AvailableCredit.Equal(dec("3850.00")))
	assert.Equal(t, date(2025, 2, 25), stmt.PaymentDueDate, "period end + 25 days")
}

func TestMinimumPaymentDue(t *testing.T) {
	start, end := Period(2025, 1)
	policy := DefaultPolicy()

	cases := []struct {
		balance string
		want    string
	}{
		{"5000.00", "100.00"}, // 2% over the floor
		{"1250.00", "25.00"},  // 2% = 25 exactly
		{"500.00", "25.00"},   // floor applies
		{"0.00", "0.00"},
		{"-75.00", "0.00"}, // credit balance owes nothing
	}
	for _, tc := range cases {
		stmt := Compute(account(1, tc.balance, "10000.00"), nil, start, end, policy)
		assert.Equal(t, tc.want, stmt.MinimumPaymentDue.StringFixed(2), "balance %s", tc.balance)
	}
}

func TestAssembleFiltersPeriodAndProcessed(t *testing.T) {
	store := ledger.NewMemory()
	store.SetAccounts([]model.Account{account(1, "300.00", "5000.00")})
	inPeriod := processedTx("t1", 1, "100.00", date(2025, 1, 15))
	before := processedTx("t0", 1, "40.00", date(2024, 12, 31))
	unposted := model.Transaction{ID: "t2", AccountID: 1, Amount: dec("60.00"), Date: date(2025, 1, 16)}
	store.SetTransactions([]model.Transaction{inPeriod, before, unposted})

	res := batch.NewResult("statement-generation")
	statements, err := NewService(store, DefaultPolicy(), nil).Assemble(context.Background(), res, 2025, 1)
	require.NoError(t, err)
	res.Finish()

	require.Len(t, statements, 1)
	require.Len(t, statements[0].Transactions, 1)
	assert.Equal(t, "t1", statements[0].Transactions[0].ID)
	assert.Equal(t, batch.StatusCompleted, res.Status)
}

func TestAssembleSkipsInactiveAccounts(t *testing.T) {
	store := ledger.NewMemory()
	closed := account(2, "100.00", "5000.00")
	closed.Status = model.AccountClosed
	store.SetAccounts([]model.Account{account(1, "100.00", "5000.00"), closed})

	res := batch.NewResult("statement-generation")
	statements, err := NewService(store, DefaultPolicy(), nil).Assemble(context.Background(), res, 2025, 1)
	require.NoError(t, err)

	require.Len(t, statements, 1)
	assert.Equal(t, 1, statements[0].AccountID)
}

func TestAssembleInvalidMonth(t *testing.T) {
	store := ledger.NewMemory()
	res := batch.NewResult("statement-generation")
	_, err := NewService(store, DefaultPolicy(), nil).Assemble(context.Background(), res, 2025, 13)
	require.Error(t, err)
}

func TestAssembleDoesNotMutate(t *testing.T) {
	store := ledger.NewMemory()
	store.SetAccounts([]model.Account{account(1, "300.00", "5000.00")})
	store.SetTransactions([]model.Transaction{processedTx("t1", 1, "100.00", date(2025, 1, 15))})

	res := batch.NewResult("statement-generation")
	_, err := NewService(store, DefaultPolicy(), nil).Assemble(context.Background(), res, 2025, 1)
	require.NoError(t, err)

	a, _ := store.Account(1)
	assert.True(t, a.CurrentBalance.Equal(dec("300.00")))
}

func TestRender(t *testing.T) {
	start, end := Period(2025, 1)
	stmt := Compute(
		account(1, "1150.00", "5000.00"),
		[]model.Transaction{
			processedTx("t1", 1, "200.00", date(2025, 1, 10)),
		},
		start, end, DefaultPolicy(),
	)

	var sb strings.Builder
	require.NoError(t, Render(&sb, "FIRST CARD CO", []model.Statement{stmt}))
	out := sb.String()

	assert.Contains(t, out, "FIRST CARD CO  MONTHLY STATEMENT")
	assert.Contains(t, out, "Account 1")
	assert.Contains(t, out, "New balance")
	assert.Contains(t, out, "1150.00")
	assert.Contains(t, out, "Minimum payment due")
	assert.Contains(t, out, "t1")
}
