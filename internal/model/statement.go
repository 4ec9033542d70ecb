package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Statement is a per-account monthly summary derived from processed
// transactions. It is recomputed on each request and never persisted.
type Statement struct {
	AccountID         int
	CustomerID        int
	PeriodStart       time.Time
	PeriodEnd         time.Time
	PreviousBalance   decimal.Decimal
	TotalDebits       decimal.Decimal
	TotalCredits      decimal.Decimal
	NewBalance        decimal.Decimal
	MinimumPaymentDue decimal.Decimal
	PaymentDueDate    time.Time
	AvailableCredit   decimal.Decimal
	Transactions      []Transaction // period's processed transactions, date ascending
}
