package export

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/cardledger-dev/cardledger/internal/ledger"
	"github.com/cardledger-dev/cardledger/internal/model"
)

const exportDateFormat = "2006-01-02"

// Service serializes ledger collections into snapshot artifacts. It only
// reads; no field is ever mutated.
type Service struct {
	store  ledger.Store
	logger *zap.Logger
}

// NewService creates an export Service. A nil logger defaults to a no-op
// logger.
func NewService(store ledger.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// Export writes the dataset in the given format and returns the record
// count. Writing the stream to durable storage is the caller's concern.
func (s *Service) Export(w io.Writer, dataset Dataset, format Format, generated time.Time) (int, error) {
	enc, ok := encoders[format]
	if !ok {
		return 0, fmt.Errorf("unknown export format %q", format)
	}

	var tbl table
	switch dataset {
	case DatasetAccounts:
		tbl = accountsTable(s.store.Accounts(nil))
	case DatasetTransactions:
		tbl = transactionsTable(s.store.Transactions(nil))
	case DatasetCustomers:
		tbl = customersTable(s.store.Customers())
	default:
		return 0, fmt.Errorf("unknown export dataset %q", dataset)
	}

	if err := enc(w, tbl, generated); err != nil {
		return 0, fmt.Errorf("encoding %s snapshot: %w", dataset, err)
	}

	s.logger.Debug("snapshot encoded",
		zap.String("dataset", string(dataset)),
		zap.String("format", string(format)),
		zap.Int("records", len(tbl.rows)),
	)
	return len(tbl.rows), nil
}

type accountRecord struct {
	AccountID       int    `json:"account_id"`
	CustomerID      int    `json:"customer_id"`
	Status          string `json:"status"`
	CurrentBalance  string `json:"current_balance"`
	CreditLimit     string `json:"credit_limit"`
	CashCreditLimit string `json:"cash_credit_limit"`
	CycleDebit      string `json:"cycle_debit"`
	CycleCredit     string `json:"cycle_credit"`
	OpenDate        string `json:"open_date"`
	ExpirationDate  string `json:"expiration_date"`
	GroupID         string `json:"group_id"`
}

func accountsTable(accounts []model.Account) table {
	records := make([]accountRecord, 0, len(accounts))
	rows := make([][]string, 0, len(accounts))
	for _, a := range accounts {
		rec := accountRecord{
			AccountID:       a.ID,
			CustomerID:      a.CustomerID,
			Status:          string(a.Status),
			CurrentBalance:  a.CurrentBalance.StringFixed(2),
			CreditLimit:     a.CreditLimit.StringFixed(2),
			CashCreditLimit: a.CashCreditLimit.StringFixed(2),
			CycleDebit:      a.CurrentCycleDebit.StringFixed(2),
			CycleCredit:     a.CurrentCycleCredit.StringFixed(2),
			OpenDate:        a.OpenDate.Format(exportDateFormat),
			ExpirationDate:  a.ExpirationDate.Format(exportDateFormat),
			GroupID:         a.GroupID,
		}
		records = append(records, rec)
		rows = append(rows, []string{
			strconv.Itoa(rec.AccountID), strconv.Itoa(rec.CustomerID), rec.Status,
			rec.CurrentBalance, rec.CreditLimit, rec.CashCreditLimit,
			rec.CycleDebit, rec.CycleCredit, rec.OpenDate, rec.ExpirationDate, rec.GroupID,
		})
	}
	return table{dataset: DatasetAccounts, schema: AccountSchema, rows: rows, records: records}
}

type transactionRecord struct {
	TransactionID string `json:"transaction_id"`
	AccountID     int    `json:"account_id"`
	CardNumber    string `json:"card_number"`
	TypeCode      string `json:"type_code"`
	CategoryCode  string `json:"category_code"`
	Source        string `json:"source"`
	Description   string `json:"description"`
	Amount        string `json:"amount"`
	MerchantID    string `json:"merchant_id"`
	MerchantName  string `json:"merchant_name"`
	MerchantCity  string `json:"merchant_city"`
	Date          string `json:"date"`
	Processed     bool   `json:"processed"`
}

func transactionsTable(txs []model.Transaction) table {
	records := make([]transactionRecord, 0, len(txs))
	rows := make([][]string, 0, len(txs))
	for _, tx := range txs {
		rec := transactionRecord{
			TransactionID: tx.ID,
			AccountID:     tx.AccountID,
			CardNumber:    tx.CardNumber,
			TypeCode:      tx.TypeCode,
			CategoryCode:  tx.CategoryCode,
			Source:        tx.Source,
			Description:   tx.Description,
			Amount:        tx.Amount.StringFixed(2),
			MerchantID:    tx.MerchantID,
			MerchantName:  tx.MerchantName,
			MerchantCity:  tx.MerchantCity,
			Date:          tx.Date.Format(exportDateFormat),
			Processed:     tx.Processed,
		}
		records = append(records, rec)
		rows = append(rows, []string{
			rec.TransactionID, strconv.Itoa(rec.AccountID), rec.CardNumber,
			rec.TypeCode, rec.CategoryCode, rec.Source, rec.Description,
			rec.Amount, rec.MerchantID, rec.MerchantName, rec.MerchantCity,
			rec.Date, strconv.FormatBool(rec.Processed),
		})
	}
	return table{dataset: DatasetTransactions, schema: TransactionSchema, rows: rows, records: records}
}

type customerRecord struct {
	CustomerID int    `json:"customer_id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	Zip        string `json:"zip"`
	Phone      string `json:"phone"`
	FICOScore  int    `json:"fico_score"`
}

func customersTable(customers []model.Customer) table {
	records := make([]customerRecord, 0, len(customers))
	rows := make([][]string, 0, len(customers))
	for _, c := range customers {
		rec := customerRecord{
			CustomerID: c.ID,
			FirstName:  c.FirstName,
			LastName:   c.LastName,
			Address:    c.Address,
			City:       c.City,
			State:      c.State,
			Zip:        c.Zip,
			Phone:      c.Phone,
			FICOScore:  c.FICOScore,
		}
		records = append(records, rec)
		rows = append(rows, []string{
			strconv.Itoa(rec.CustomerID), rec.FirstName, rec.LastName,
			rec.Address, rec.City, rec.State, rec.Zip, rec.Phone,
			strconv.Itoa(rec.FICOScore),
		})
	}
	return table{dataset: DatasetCustomers, schema: CustomerSchema, rows: rows, records: records}
}
