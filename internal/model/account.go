package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

const (
	AccountActive AccountStatus = "active"
	AccountClosed AccountStatus = "closed"
)

// Account is a credit-card account in accounts.csv.
type Account struct {
	ID                 int
	CustomerID         int
	Status             AccountStatus
	CurrentBalance     decimal.Decimal // positive = amount owed
	CreditLimit        decimal.Decimal
	CashCreditLimit    decimal.Decimal
	CurrentCycleDebit  decimal.Decimal
	CurrentCycleCredit decimal.Decimal
	OpenDate           time.Time
	ExpirationDate     time.Time
	GroupID            string
}

// Active reports whether the account can accept postings.
func (a Account) Active() bool {
	return a.Status == AccountActive
}

// AvailableCredit returns creditLimit minus currentBalance.
func (a Account) AvailableCredit() decimal.Decimal {
	return a.CreditLimit.Sub(a.CurrentBalance)
}
