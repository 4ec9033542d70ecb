package posting

import (
	"fmt"

	"github.com/cardledger-dev/cardledger/internal/ledger"
	"github.com/cardledger-dev/cardledger/internal/model"
)

// Reason classifies why a transaction was rejected. The set is closed;
// first failing check wins.
type Reason string

const (
	ReasonCardNotFound        Reason = "card-not-found"
	ReasonCardInactive        Reason = "card-inactive"
	ReasonCardExpired         Reason = "card-expired"
	ReasonAccountNotFound     Reason = "account-not-found"
	ReasonAccountInactive     Reason = "account-inactive"
	ReasonCreditLimitExceeded Reason = "credit-limit-exceeded"
)

// Rejection describes a single transaction's validation failure.
type Rejection struct {
	TransactionID string
	Reason        Reason
	Detail        string
}

func (r Rejection) Error() string {
	return fmt.Sprintf("transaction %s rejected (%s): %s", r.TransactionID, r.Reason, r.Detail)
}

// validate runs the posting checks in order and returns the transaction's
// account on success. A rejection skips the record; it never aborts the run.
func validate(store ledger.Store, tx model.Transaction) (model.Account, *Rejection) {
	card, ok := store.Card(tx.CardNumber)
	if !ok {
		return model.Account{}, &Rejection{
			TransactionID: tx.ID,
			Reason:        ReasonCardNotFound,
			Detail:        fmt.Sprintf("no card %s", tx.CardNumber),
		}
	}

	if !card.Active() {
		return model.Account{}, &Rejection{
			TransactionID: tx.ID,
			Reason:        ReasonCardInactive,
			Detail:        fmt.Sprintf("card %s is not active", tx.CardNumber),
		}
	}

	if card.ExpiredAt(tx.Date) {
		return model.Account{}, &Rejection{
			TransactionID: tx.ID,
			Reason:        ReasonCardExpired,
			Detail:        fmt.Sprintf("card %s expired %s", tx.CardNumber, card.Expiration.Format("2006-01-02")),
		}
	}

	account, ok := store.Account(tx.AccountID)
	if !ok {
		return model.Account{}, &Rejection{
			TransactionID: tx.ID,
			Reason:        ReasonAccountNotFound,
			Detail:        fmt.Sprintf("no account %d", tx.AccountID),
		}
	}

	if !account.Active() {
		return model.Account{}, &Rejection{
			TransactionID: tx.ID,
			Reason:        ReasonAccountInactive,
			Detail:        fmt.Sprintf("account %d is not active", tx.AccountID),
		}
	}

	if tx.Debit() && account.CurrentBalance.Add(tx.Amount).GreaterThan(account.CreditLimit) {
		return model.Account{}, &Rejection{
			TransactionID: tx.ID,
			Reason:        ReasonCreditLimitExceeded,
			Detail: fmt.Sprintf("balance %s + %s exceeds credit limit %s",
				account.CurrentBalance.StringFixed(2), tx.Amount.StringFixed(2), account.CreditLimit.StringFixed(2)),
		}
	}

	return account, nil
}
