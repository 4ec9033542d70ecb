package ledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/cardledger-dev/cardledger/internal/model"
)

// Memory is an in-memory Store. Mutations stage in per-session buffers and
// apply to the committed maps only inside Commit, under one lock. If the
// store was loaded from a ledger directory, Commit also rewrites the CSV
// files (temp file + rename), so a successful Commit is durable.
type Memory struct {
	mu sync.Mutex

	dir string // "" = not file-backed

	accounts     map[int]model.Account
	accountOrder []int
	cards        map[string]model.Card
	cardOrder    []string
	customers    []model.Customer
	transactions map[string]model.Transaction
	txOrder      []string

	stagedAccounts map[int]model.Account
	stagedTxs      []model.Transaction
	stagedPosted   map[string]bool
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		accounts:       make(map[int]model.Account),
		cards:          make(map[string]model.Card),
		transactions:   make(map[string]model.Transaction),
		stagedAccounts: make(map[int]model.Account),
		stagedPosted:   make(map[string]bool),
	}
}

// SetAccounts replaces the committed account set (load-time only).
func (m *Memory) SetAccounts(accounts []model.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts = make(map[int]model.Account, len(accounts))
	m.accountOrder = m.accountOrder[:0]
	for _, a := range accounts {
		m.accounts[a.ID] = a
		m.accountOrder = append(m.accountOrder, a.ID)
	}
}

// SetCards replaces the committed card set (load-time only).
func (m *Memory) SetCards(cards []model.Card) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cards = make(map[string]model.Card, len(cards))
	m.cardOrder = m.cardOrder[:0]
	for _, c := range cards {
		m.cards[c.Number] = c
		m.cardOrder = append(m.cardOrder, c.Number)
	}
}

// SetCustomers replaces the committed customer set (load-time only).
func (m *Memory) SetCustomers(customers []model.Customer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.customers = append([]model.Customer(nil), customers...)
}

// SetTransactions replaces the committed transaction set (load-time only).
func (m *Memory) SetTransactions(txs []model.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions = make(map[string]model.Transaction, len(txs))
	m.txOrder = m.txOrder[:0]
	for _, tx := range txs {
		m.transactions[tx.ID] = tx
		m.txOrder = append(m.txOrder, tx.ID)
	}
}

// Accounts returns accounts matching the predicate, staged state visible.
func (m *Memory) Accounts(filter func(model.Account) bool) []model.Account {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.Account
	for _, id := range m.accountOrder {
		a := m.accountView(id)
		if filter == nil || filter(a) {
			result = append(result, a)
		}
	}
	for id, a := range m.stagedAccounts {
		if _, committed := m.accounts[id]; committed {
			continue
		}
		if filter == nil || filter(a) {
			result = append(result, a)
		}
	}
	return result
}

// Account returns an account by ID, staged state visible.
func (m *Memory) Account(id int) (model.Account, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.stagedAccounts[id]; ok {
		return a, true
	}
	a, ok := m.accounts[id]
	return a, ok
}

// accountView returns the staged version of an account if present.
// Caller holds mu.
func (m *Memory) accountView(id int) model.Account {
	if a, ok := m.stagedAccounts[id]; ok {
		return a
	}
	return m.accounts[id]
}

// Card returns a card by number.
func (m *Memory) Card(number string) (model.Card, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.cards[number]
	return c, ok
}

// Cards returns all cards in load order.
func (m *Memory) Cards() []model.Card {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]model.Card, 0, len(m.cardOrder))
	for _, num := range m.cardOrder {
		result = append(result, m.cards[num])
	}
	return result
}

// Customers returns all customers.
func (m *Memory) Customers() []model.Customer {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Customer(nil), m.customers...)
}

// Transactions returns transactions matching the predicate in insertion
// order, staged state visible.
func (m *Memory) Transactions(filter func(model.Transaction) bool) []model.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.Transaction
	for _, txID := range m.txOrder {
		tx := m.txView(txID)
		if filter == nil || filter(tx) {
			result = append(result, tx)
		}
	}
	for _, tx := range m.stagedTxs {
		if filter == nil || filter(tx) {
			result = append(result, tx)
		}
	}
	return result
}

// Transaction returns a transaction by ID, staged state visible.
func (m *Memory) Transaction(txID string) (model.Transaction, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.transactions[txID]; ok {
		return m.txView(txID), true
	}
	for _, tx := range m.stagedTxs {
		if tx.ID == txID {
			return tx, true
		}
	}
	return model.Transaction{}, false
}

// txView returns a committed transaction with any staged posted flag
// applied. Caller holds mu.
func (m *Memory) txView(txID string) model.Transaction {
	tx := m.transactions[txID]
	if m.stagedPosted[txID] {
		tx.Processed = true
	}
	return tx
}

// PutAccount stages an account update or insert.
func (m *Memory) PutAccount(a model.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stagedAccounts[a.ID] = a
}

// AddTransaction stages a new transaction.
func (m *Memory) AddTransaction(tx model.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.transactions[tx.ID]; ok {
		return fmt.Errorf("transaction %s already exists", tx.ID)
	}
	for _, staged := range m.stagedTxs {
		if staged.ID == tx.ID {
			return fmt.Errorf("transaction %s already staged", tx.ID)
		}
	}
	m.stagedTxs = append(m.stagedTxs, tx)
	return nil
}

// MarkPosted stages setting a transaction's processed flag.
func (m *Memory) MarkPosted(txID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stagedPosted[txID] = true
}

// Commit atomically applies all staged mutations, then rewrites the ledger
// directory if the store is file-backed. Honors context cancellation
// before any mutation is applied.
func (m *Memory) Commit(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	for accountID, a := range m.stagedAccounts {
		if _, ok := m.accounts[accountID]; !ok {
			m.accountOrder = append(m.accountOrder, accountID)
		}
		m.accounts[accountID] = a
	}
	for _, tx := range m.stagedTxs {
		m.transactions[tx.ID] = tx
		m.txOrder = append(m.txOrder, tx.ID)
	}
	for txID := range m.stagedPosted {
		if tx, ok := m.transactions[txID]; ok {
			tx.Processed = true
			m.transactions[txID] = tx
		}
	}

	m.stagedAccounts = make(map[int]model.Account)
	m.stagedTxs = nil
	m.stagedPosted = make(map[string]bool)

	if m.dir != "" {
		if err := m.saveLocked(); err != nil {
			return fmt.Errorf("saving ledger: %w", err)
		}
	}
	return nil
}

// Discard drops all staged mutations.
func (m *Memory) Discard() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stagedAccounts = make(map[int]model.Account)
	m.stagedTxs = nil
	m.stagedPosted = make(map[string]bool)
}
