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

const dateFormat = "2006-01-02"

const (
	acctNumFields   = 11
	acctColID       = 0
	acctColCustomer = 1
	acctColStatus   = 2
	acctColBalance  = 3
	acctColLimit    = 4
	acctColCashLim  = 5
	acctColCycDebit = 6
	acctColCycCred  = 7
	acctColOpened   = 8
	acctColExpires  = 9
	acctColGroup    = 10
)

// AccountsHeader is the CSV header for accounts.csv.
var AccountsHeader = []string{
	"account_id", "customer_id", "status", "current_balance", "credit_limit",
	"cash_credit_limit", "cycle_debit", "cycle_credit", "open_date",
	"expiration_date", "group_id",
}

// ReadAccounts reads accounts.csv.
func ReadAccounts(r io.Reader) ([]model.Account, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = acctNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading accounts CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var accounts []model.Account
	for i, rec := range records[1:] {
		a, err := UnmarshalAccount(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		accounts = append(accounts, a)
	}
	return accounts, nil
}

// WriteAccounts writes accounts.csv.
func WriteAccounts(w io.Writer, accounts []model.Account) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(AccountsHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, a := range accounts {
		if err := cw.Write(MarshalAccount(a)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalAccount converts an Account to a CSV row.
func MarshalAccount(a model.Account) []string {
	row := make([]string, acctNumFields)
	row[acctColID] = strconv.Itoa(a.ID)
	row[acctColCustomer] = strconv.Itoa(a.CustomerID)
	row[acctColStatus] = string(a.Status)
	row[acctColBalance] = a.CurrentBalance.StringFixed(2)
	row[acctColLimit] = a.CreditLimit.StringFixed(2)
	row[acctColCashLim] = a.CashCreditLimit.StringFixed(2)
	row[acctColCycDebit] = a.CurrentCycleDebit.StringFixed(2)
	row[acctColCycCred] = a.CurrentCycleCredit.StringFixed(2)
	row[acctColOpened] = a.OpenDate.Format(dateFormat)
	row[acctColExpires] = a.ExpirationDate.Format(dateFormat)
	row[acctColGroup] = a.GroupID
	return row
}

// UnmarshalAccount converts a CSV row to an Account.
func UnmarshalAccount(record []string) (model.Account, error) {
	if len(record) != acctNumFields {
		return model.Account{}, fmt.Errorf("expected %d fields, got %d", acctNumFields, len(record))
	}

	accountID, err := strconv.Atoi(record[acctColID])
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing account_id %q: %w", record[acctColID], err)
	}

	customerID, err := strconv.Atoi(record[acctColCustomer])
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing customer_id %q: %w", record[acctColCustomer], err)
	}

	balance, err := decimal.NewFromString(record[acctColBalance])
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing current_balance %q: %w", record[acctColBalance], err)
	}

	limit, err := decimal.NewFromString(record[acctColLimit])
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing credit_limit %q: %w", record[acctColLimit], err)
	}

	cashLimit, err := decimal.NewFromString(record[acctColCashLim])
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing cash_credit_limit %q: %w", record[acctColCashLim], err)
	}

	cycleDebit, err := decimal.NewFromString(record[acctColCycDebit])
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing cycle_debit %q: %w", record[acctColCycDebit], err)
	}

	cycleCredit, err := decimal.NewFromString(record[acctColCycCred])
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing cycle_credit %q: %w", record[acctColCycCred], err)
	}

	opened, err := time.Parse(dateFormat, record[acctColOpened])
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing open_date %q: %w", record[acctColOpened], err)
	}

	expires, err := time.Parse(dateFormat, record[acctColExpires])
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing expiration_date %q: %w", record[acctColExpires], err)
	}

	return model.Account{
		ID:                 accountID,
		CustomerID:         customerID,
		Status:             model.AccountStatus(record[acctColStatus]),
		CurrentBalance:     balance,
		CreditLimit:        limit,
		CashCreditLimit:    cashLimit,
		CurrentCycleDebit:  cycleDebit,
		CurrentCycleCredit: cycleCredit,
		OpenDate:           opened,
		ExpirationDate:     expires,
		GroupID:            record[acctColGroup],
	}, nil
}
