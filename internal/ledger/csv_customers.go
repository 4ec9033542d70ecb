package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/cardledger-dev/cardledger/internal/model"
)

const (
	custNumFields = 9
	custColID     = 0
	custColFirst  = 1
	custColLast   = 2
	custColAddr   = 3
	custColCity   = 4
	custColState  = 5
	custColZip    = 6
	custColPhone  = 7
	custColFICO   = 8
)

// CustomersHeader is the CSV header for customers.csv.
var CustomersHeader = []string{
	"customer_id", "first_name", "last_name", "address", "city", "state",
	"zip", "phone", "fico_score",
}

// ReadCustomers reads customers.csv.
func ReadCustomers(r io.Reader) ([]model.Customer, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = custNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading customers CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var customers []model.Customer
	for i, rec := range records[1:] {
		c, err := UnmarshalCustomer(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		customers = append(customers, c)
	}
	return customers, nil
}

// WriteCustomers writes customers.csv.
func WriteCustomers(w io.Writer, customers []model.Customer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(CustomersHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, c := range customers {
		if err := cw.Write(MarshalCustomer(c)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalCustomer converts a Customer to a CSV row.
func MarshalCustomer(c model.Customer) []string {
	row := make([]string, custNumFields)
	row[custColID] = strconv.Itoa(c.ID)
	row[custColFirst] = c.FirstName
	row[custColLast] = c.LastName
	row[custColAddr] = c.Address
	row[custColCity] = c.City
	row[custColState] = c.State
	row[custColZip] = c.Zip
	row[custColPhone] = c.Phone
	row[custColFICO] = strconv.Itoa(c.FICOScore)
	return row
}

// UnmarshalCustomer converts a CSV row to a Customer.
func UnmarshalCustomer(record []string) (model.Customer, error) {
	if len(record) != custNumFields {
		return model.Customer{}, fmt.Errorf("expected %d fields, got %d", custNumFields, len(record))
	}

	customerID, err := strconv.Atoi(record[custColID])
	if err != nil {
		return model.Customer{}, fmt.Errorf("parsing customer_id %q: %w", record[custColID], err)
	}

	fico, err := strconv.Atoi(record[custColFICO])
	if err != nil {
		return model.Customer{}, fmt.Errorf("parsing fico_score %q: %w", record[custColFICO], err)
	}

	return model.Customer{
		ID:        customerID,
		FirstName: record[custColFirst],
		LastName:  record[custColLast],
		Address:   record[custColAddr],
		City:      record[custColCity],
		State:     record[custColState],
		Zip:       record[custColZip],
		Phone:     record[custColPhone],
		FICOScore: fico,
	}, nil
}
