package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cardledger-dev/cardledger/internal/config"
	"github.com/cardledger-dev/cardledger/internal/ledger"
	"github.com/cardledger-dev/cardledger/internal/model"
)

func newInitCommand() *cobra.Command {
	var name string
	var sample bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new ledger directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir, name, sample)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "issuer name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().BoolVar(&sample, "sample", false, "seed sample accounts, cards, and transactions")

	return cmd
}

func runInit(dir, name string, sample bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating ledger directory: %w", err)
	}

	cfg := config.Default(name)
	if err := config.Save(filepath.Join(dir, ConfigFile), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	if err := os.MkdirAll(filepath.Join(dir, cfg.Export.OutputDir), 0o755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}

	store, err := ledger.LoadDir(dir)
	if err != nil {
		return err
	}
	if sample {
		seedSample(store)
	}

	// Commit writes the CSV files, headers included, even when empty.
	if err := store.Commit(context.Background()); err != nil {
		return fmt.Errorf("writing ledger files: %w", err)
	}

	fmt.Printf("initialized ledger for %s in %s\n", name, dir)
	return nil
}

func seedSample(store *ledger.Memory) {
	today := time.Now().UTC()
	store.SetAccounts([]model.Account{{
		ID:             1,
		CustomerID:     101,
		Status:         model.AccountActive,
		CurrentBalance: decimal.NewFromInt(0),
		CreditLimit:    decimal.NewFromInt(5000),
		OpenDate:       today,
		ExpirationDate: today.AddDate(4, 0, 0),
		GroupID:        "DEFAULT",
	}})
	store.SetCards([]model.Card{{
		Number:     "4111111111111111",
		AccountID:  1,
		Status:     model.CardActive,
		Expiration: today.AddDate(4, 0, 0),
		HolderName: "SAMPLE CARDHOLDER",
	}})
	store.SetCustomers([]model.Customer{{
		ID:        101,
		FirstName: "Sample",
		LastName:  "Cardholder",
		Address:   "1 Main St",
		City:      "Springfield",
		State:     "IL",
		Zip:       "62701",
		Phone:     "555-0100",
		FICOScore: 720,
	}})
	_ = store.AddTransaction(model.Transaction{
		ID:           "TXN-0001",
		AccountID:    1,
		CardNumber:   "4111111111111111",
		TypeCode:     "02",
		CategoryCode: "1000",
		Source:       "POS",
		Description:  "SAMPLE PURCHASE",
		Amount:       decimal.NewFromFloat(42.50),
		MerchantName: "SAMPLE MERCHANT",
		Date:         today,
	})
}
