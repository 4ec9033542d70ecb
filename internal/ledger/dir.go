package ledger

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cardledger-dev/cardledger/internal/model"
)

// Ledger directory file names.
const (
	AccountsFile     = "accounts.csv"
	CardsFile        = "cards.csv"
	CustomersFile    = "customers.csv"
	TransactionsFile = "transactions.csv"
)

// LoadDir reads a ledger directory into a file-backed Memory store.
// Missing files load as empty collections so a freshly scaffolded ledger
// works without all four files present.
func LoadDir(dir string) (*Memory, error) {
	m := NewMemory()
	m.dir = dir

	accounts, err := readFile(filepath.Join(dir, AccountsFile), ReadAccounts)
	if err != nil {
		return nil, fmt.Errorf("loading ledger: %w", err)
	}
	m.SetAccounts(accounts)

	cards, err := readFile(filepath.Join(dir, CardsFile), ReadCards)
	if err != nil {
		return nil, fmt.Errorf("loading ledger: %w", err)
	}
	m.SetCards(cards)

	customers, err := readFile(filepath.Join(dir, CustomersFile), ReadCustomers)
	if err != nil {
		return nil, fmt.Errorf("loading ledger: %w", err)
	}
	m.SetCustomers(customers)

	txs, err := readFile(filepath.Join(dir, TransactionsFile), ReadTransactions)
	if err != nil {
		return nil, fmt.Errorf("loading ledger: %w", err)
	}
	m.SetTransactions(txs)

	return m, nil
}

func readFile[T any](path string, read func(r io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	items, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return items, nil
}

// saveLocked rewrites all four CSV files via temp files and renames, so a
// crash mid-save never leaves a half-written ledger. Caller holds mu.
func (m *Memory) saveLocked() error {
	accounts := make([]model.Account, 0, len(m.accountOrder))
	for _, accountID := range m.accountOrder {
		accounts = append(accounts, m.accounts[accountID])
	}
	cards := make([]model.Card, 0, len(m.cardOrder))
	for _, num := range m.cardOrder {
		cards = append(cards, m.cards[num])
	}
	txs := make([]model.Transaction, 0, len(m.txOrder))
	for _, txID := range m.txOrder {
		txs = append(txs, m.transactions[txID])
	}

	if err := writeFile(filepath.Join(m.dir, AccountsFile), accounts, WriteAccounts); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(m.dir, CardsFile), cards, WriteCards); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(m.dir, CustomersFile), m.customers, WriteCustomers); err != nil {
		return err
	}
	return writeFile(filepath.Join(m.dir, TransactionsFile), txs, WriteTransactions)
}

func writeFile[T any](path string, items []T, write func(w io.Writer, items []T) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp, items); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming %s: %w", filepath.Base(path), err)
	}
	return nil
}
