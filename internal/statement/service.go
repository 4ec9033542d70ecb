package statement

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/cardledger-dev/cardledger/internal/batch"
	"github.com/cardledger-dev/cardledger/internal/ledger"
	"github.com/cardledger-dev/cardledger/internal/model"
)

// Service assembles monthly statements for active accounts.
type Service struct {
	store  ledger.Store
	policy Policy
	logger *zap.Logger
}

// NewService creates a statement Service. A nil logger defaults to a no-op
// logger.
func NewService(store ledger.Store, policy Policy, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, policy: policy, logger: logger}
}

// Assemble computes statements for every active account over the given
// month, recording per-account outcomes on the result. An account that
// fails is recorded and skipped; the loop continues. Assembly reads the
// ledger but never mutates it.
func (s *Service) Assemble(ctx context.Context, res *batch.Result, year, month int) ([]model.Statement, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("invalid statement month %d", month)
	}
	start, end := Period(year, month)

	accounts := s.store.Accounts(func(a model.Account) bool {
		return a.Active()
	})

	var statements []model.Statement
	for i, account := range accounts {
		if err := ctx.Err(); err != nil {
			return statements, fmt.Errorf("assembly cancelled after %d of %d accounts: %w", i, len(accounts), err)
		}

		stmt, err := s.assembleOne(account, start, end)
		if err != nil {
			res.RecordError("account %d: %v", account.ID, err)
			s.logger.Debug("statement skipped", zap.Int("account_id", account.ID), zap.Error(err))
			continue
		}
		statements = append(statements, stmt)
		res.RecordSuccess()
	}
	return statements, nil
}

// assembleOne contains one account's fault domain: a panic while
// aggregating becomes that account's error, not the run's.
func (s *Service) assembleOne(account model.Account, start, end time.Time) (stmt model.Statement, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("assembling statement: %v", p)
		}
	}()

	txs := s.store.Transactions(func(tx model.Transaction) bool {
		return tx.Processed && tx.AccountID == account.ID &&
			!tx.Date.Before(start) && !tx.Date.After(end)
	})
	sort.SliceStable(txs, func(i, j int) bool {
		if txs[i].Date.Equal(txs[j].Date) {
			return txs[i].ID < txs[j].ID
		}
		return txs[i].Date.Before(txs[j].Date)
	})

	return Compute(account, txs, start, end, s.policy), nil
}
