package interest

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cardledger-dev/cardledger/internal/batch"
	"github.com/cardledger-dev/cardledger/internal/id"
	"github.com/cardledger-dev/cardledger/internal/ledger"
	"github.com/cardledger-dev/cardledger/internal/model"
)

var daysPerYear = decimal.NewFromInt(365)

// Service accrues daily interest on active accounts carrying a positive
// balance.
type Service struct {
	store      ledger.Store
	annualRate decimal.Decimal
	logger     *zap.Logger
}

// NewService creates an interest Service for the given APR. A nil logger
// defaults to a no-op logger.
func NewService(store ledger.Store, annualRate decimal.Decimal, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, annualRate: annualRate, logger: logger}
}

// Run accrues interest for the current date.
func (s *Service) Run(ctx context.Context, res *batch.Result) error {
	return s.RunFor(ctx, res, time.Now().UTC())
}

// RunFor accrues interest for the given calculation date. Each account's
// failure is recorded without aborting the remaining accounts. An account
// that already has an interest transaction for the date is rejected, so
// running the job twice for the same date never double-accrues.
func (s *Service) RunFor(ctx context.Context, res *batch.Result, day time.Time) error {
	day = day.Truncate(24 * time.Hour)
	dailyRate := s.annualRate.Div(daysPerYear)

	accounts := s.store.Accounts(func(a model.Account) bool {
		return a.Active() && a.CurrentBalance.IsPositive()
	})

	for i, account := range accounts {
		if err := ctx.Err(); err != nil {
			if cerr := s.store.Commit(context.WithoutCancel(ctx)); cerr != nil {
				return fmt.Errorf("committing partial accrual: %w", cerr)
			}
			return fmt.Errorf("accrual cancelled after %d of %d accounts: %w", i, len(accounts), err)
		}

		// Round half away from zero to cents.
		dailyInterest := account.CurrentBalance.Mul(dailyRate).Round(2)
		if !dailyInterest.IsPositive() {
			res.RecordSuccess()
			continue
		}

		txID := id.FormatInterestID(account.ID, day)
		if _, exists := s.store.Transaction(txID); exists {
			res.RecordError("account %d: interest already accrued for %s", account.ID, day.Format("2006-01-02"))
			continue
		}

		tx := model.Transaction{
			ID:           txID,
			AccountID:    account.ID,
			TypeCode:     model.TypeInterest,
			CategoryCode: model.CategoryInterest,
			Source:       model.SourceBatch,
			Description:  fmt.Sprintf("Interest for %s", day.Format("2006-01-02")),
			Amount:       dailyInterest,
			Date:         day,
			Processed:    true, // pre-applied below, never re-posted
		}
		if err := s.store.AddTransaction(tx); err != nil {
			res.RecordError("account %d: %v", account.ID, err)
			continue
		}

		account.CurrentBalance = account.CurrentBalance.Add(dailyInterest)
		account.CurrentCycleDebit = account.CurrentCycleDebit.Add(dailyInterest)
		s.store.PutAccount(account)

		s.logger.Debug("interest accrued",
			zap.Int("account_id", account.ID),
			zap.String("amount", dailyInterest.StringFixed(2)),
		)
		res.RecordSuccess()
	}

	if err := s.store.Commit(ctx); err != nil {
		return fmt.Errorf("committing accrual batch: %w", err)
	}
	return nil
}
