package statement

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cardledger-dev/cardledger/internal/model"
)

// Policy sets the minimum payment and due date rules.
type Policy struct {
	MinimumPaymentRate  decimal.Decimal // fraction of the new balance
	MinimumPaymentFloor decimal.Decimal
	DueGraceDays        int // days past period end
}

// DefaultPolicy returns the standard card terms: 2% of the new balance,
// $25 floor, due 25 days after the period ends.
func DefaultPolicy() Policy {
	return Policy{
		MinimumPaymentRate:  decimal.NewFromFloat(0.02),
		MinimumPaymentFloor: decimal.NewFromInt(25),
		DueGraceDays:        25,
	}
}

// Period returns the closed [start, end] day range for a statement month.
func Period(year, month int) (start, end time.Time) {
	start = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, -1)
	return start, end
}

// Compute derives one account's statement from its period transactions.
// Pure: callers pass the processed transactions already filtered to the
// period and sorted by date ascending. Kept separate from rendering so
// other output formats can reuse the aggregates.
func Compute(account model.Account, txs []model.Transaction, start, end time.Time, policy Policy) model.Statement {
	periodTotal := decimal.Zero
	totalDebits := decimal.Zero
	totalCredits := decimal.Zero
	for _, tx := range txs {
		periodTotal = periodTotal.Add(tx.Amount)
		if tx.Debit() {
			totalDebits = totalDebits.Add(tx.Amount)
		} else {
			totalCredits = totalCredits.Add(tx.Amount.Abs())
		}
	}

	newBalance := account.CurrentBalance

	minimumDue := decimal.Zero
	if newBalance.IsPositive() {
		minimumDue = policy.MinimumPaymentRate.Mul(newBalance).Round(2)
		if minimumDue.LessThan(policy.MinimumPaymentFloor) {
			minimumDue = policy.MinimumPaymentFloor
		}
	}

	return model.Statement{
		AccountID:         account.ID,
		CustomerID:        account.CustomerID,
		PeriodStart:       start,
		PeriodEnd:         end,
		PreviousBalance:   newBalance.Sub(periodTotal),
		TotalDebits:       totalDebits,
		TotalCredits:      totalCredits,
		NewBalance:        newBalance,
		MinimumPaymentDue: minimumDue,
		PaymentDueDate:    end.AddDate(0, 0, policy.DueGraceDays),
		AvailableCredit:   account.AvailableCredit(),
		Transactions:      txs,
	}
}
