package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction type and category codes. Callers may use any code; the batch
// engine only creates interest transactions itself.
const (
	TypeInterest     = "01"
	CategoryInterest = "0005"

	SourceBatch = "BATCH"
)

// Transaction is an immutable ledger entry in transactions.csv.
//
// Amount sign convention, applied uniformly: positive = debit (a charge
// that increases the balance), negative = credit (a payment or refund that
// decreases it).
type Transaction struct {
	ID           string
	AccountID    int
	CardNumber   string
	TypeCode     string
	CategoryCode string
	Source       string
	Description  string
	Amount       decimal.Decimal
	MerchantID   string
	MerchantName string
	MerchantCity string
	Date         time.Time
	Processed    bool // idempotency marker: a processed transaction is never re-applied
}

// Debit reports whether the transaction increases the account balance.
func (t Transaction) Debit() bool {
	return t.Amount.IsPositive()
}
