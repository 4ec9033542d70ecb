package ledger

import (
	"context"

	"github.com/cardledger-dev/cardledger/internal/model"
)

// Store is the batch engine's view of the ledger. Reads see the run's own
// staged mutations (read-your-writes); Commit makes staged mutations
// durable in one atomic step. Counters reported by a job must be derived
// from what Commit actually applied.
type Store interface {
	// Accounts returns accounts matching the predicate. A nil predicate
	// matches everything.
	Accounts(filter func(model.Account) bool) []model.Account
	// Account returns an account by ID.
	Account(id int) (model.Account, bool)
	// Card returns a card by number.
	Card(number string) (model.Card, bool)
	// Customers returns all customers.
	Customers() []model.Customer
	// Transactions returns transactions matching the predicate, in
	// insertion order. A nil predicate matches everything.
	Transactions(filter func(model.Transaction) bool) []model.Transaction
	// Transaction returns a transaction by ID.
	Transaction(id string) (model.Transaction, bool)

	// PutAccount stages an account update.
	PutAccount(a model.Account)
	// AddTransaction stages a new transaction. Fails if the ID already
	// exists, staged or committed.
	AddTransaction(t model.Transaction) error
	// MarkPosted stages setting a transaction's processed flag.
	MarkPosted(txID string)

	// Commit atomically applies all staged mutations. On error or
	// cancellation nothing staged is applied and the stage is preserved.
	Commit(ctx context.Context) error
	// Discard drops all staged mutations.
	Discard()
}
