package posting

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/cardledger-dev/cardledger/internal/batch"
	"github.com/cardledger-dev/cardledger/internal/ledger"
	"github.com/cardledger-dev/cardledger/internal/model"
)

// Service applies unposted transactions to account balances.
type Service struct {
	store  ledger.Store
	logger *zap.Logger
}

// NewService creates a posting Service. A nil logger defaults to a no-op
// logger.
func NewService(store ledger.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// Run posts all unposted transactions in date order, recording each
// record's outcome on the result. Mutations for the batch stage in the
// store and commit together when the loop finishes; on cancellation the
// prefix processed so far is committed instead, so the reported counts
// always match persisted state.
func (s *Service) Run(ctx context.Context, res *batch.Result) error {
	candidates := s.store.Transactions(func(tx model.Transaction) bool {
		return !tx.Processed
	})
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Date.Equal(candidates[j].Date) {
			return candidates[i].ID < candidates[j].ID
		}
		return candidates[i].Date.Before(candidates[j].Date)
	})

	for i, tx := range candidates {
		if err := ctx.Err(); err != nil {
			if cerr := s.store.Commit(context.WithoutCancel(ctx)); cerr != nil {
				return fmt.Errorf("committing partial batch: %w", cerr)
			}
			return fmt.Errorf("posting cancelled after %d of %d transactions: %w", i, len(candidates), err)
		}

		account, rejection := validate(s.store, tx)
		if rejection != nil {
			res.RecordError("%s", rejection.Error())
			s.logger.Debug("transaction rejected",
				zap.String("transaction_id", tx.ID),
				zap.String("reason", string(rejection.Reason)),
			)
			continue
		}

		s.apply(account, tx)
		res.RecordSuccess()
	}

	if err := s.store.Commit(ctx); err != nil {
		return fmt.Errorf("committing posting batch: %w", err)
	}
	return nil
}

// apply stages a validated transaction's effect: balance moves by the
// signed amount, the matching cycle total grows, and the processed flag
// flips so the transaction is never applied again.
func (s *Service) apply(account model.Account, tx model.Transaction) {
	account.CurrentBalance = account.CurrentBalance.Add(tx.Amount)
	if tx.Debit() {
		account.CurrentCycleDebit = account.CurrentCycleDebit.Add(tx.Amount)
	} else {
		account.CurrentCycleCredit = account.CurrentCycleCredit.Add(tx.Amount.Abs())
	}
	s.store.PutAccount(account)
	s.store.MarkPosted(tx.ID)
}
