package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cardledger-dev/cardledger/internal/model"
)

const (
	txNumFields    = 13
	txColID        = 0
	txColAccount   = 1
	txColCard      = 2
	txColType      = 3
	txColCategory  = 4
	txColSource    = 5
	txColDesc      = 6
	txColAmount    = 7
	txColMerchID   = 8
	txColMerchName = 9
	txColMerchCity = 10
	txColDate      = 11
	txColProcessed = 12
)

// TransactionsHeader is the CSV header for transactions.csv.
var TransactionsHeader = []string{
	"transaction_id", "account_id", "card_number", "type_code",
	"category_code", "source", "description", "amount", "merchant_id",
	"merchant_name", "merchant_city", "date", "processed",
}

// ReadTransactions reads transactions.csv.
func ReadTransactions(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = txNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading transactions CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var txs []model.Transaction
	for i, rec := range records[1:] {
		tx, err := UnmarshalTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// WriteTransactions writes transactions.csv.
func WriteTransactions(w io.Writer, txs []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(TransactionsHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, tx := range txs {
		if err := cw.Write(MarshalTransaction(tx)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalTransaction converts a Transaction to a CSV row.
func MarshalTransaction(tx model.Transaction) []string {
	row := make([]string, txNumFields)
	row[txColID] = tx.ID
	row[txColAccount] = strconv.Itoa(tx.AccountID)
	row[txColCard] = tx.CardNumber
	row[txColType] = tx.TypeCode
	row[txColCategory] = tx.CategoryCode
	row[txColSource] = tx.Source
	row[txColDesc] = tx.Description
	row[txColAmount] = tx.Amount.StringFixed(2)
	row[txColMerchID] = tx.MerchantID
	row[txColMerchName] = tx.MerchantName
	row[txColMerchCity] = tx.MerchantCity
	row[txColDate] = tx.Date.Format(dateFormat)
	row[txColProcessed] = strconv.FormatBool(tx.Processed)
	return row
}

// UnmarshalTransaction converts a CSV row to a Transaction.
func UnmarshalTransaction(record []string) (model.Transaction, error) {
	if len(record) != txNumFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", txNumFields, len(record))
	}

	accountID, err := strconv.Atoi(record[txColAccount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing account_id %q: %w", record[txColAccount], err)
	}

	amount, err := decimal.NewFromString(record[txColAmount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", record[txColAmount], err)
	}

	date, err := time.Parse(dateFormat, record[txColDate])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date %q: %w", record[txColDate], err)
	}

	processed, err := strconv.ParseBool(record[txColProcessed])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing processed %q: %w", record[txColProcessed], err)
	}

	return model.Transaction{
		ID:           record[txColID],
		AccountID:    accountID,
		CardNumber:   record[txColCard],
		TypeCode:     record[txColType],
		CategoryCode: record[txColCategory],
		Source:       record[txColSource],
		Description:  record[txColDesc],
		Amount:       amount,
		MerchantID:   record[txColMerchID],
		MerchantName: record[txColMerchName],
		MerchantCity: record[txColMerchCity],
		Date:         date,
		Processed:    processed,
	}, nil
}
