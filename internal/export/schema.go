package export

import (
	"fmt"
	"strings"
)

// Column is one field of a fixed-width layout: numeric fields are
// zero-padded on the left, text fields space-padded on the right.
// Widths and order are the documented contract for downstream consumers
// built against the legacy layout; do not reorder or resize casually.
type Column struct {
	Name    string
	Width   int
	Numeric bool
}

// AccountSchema is the fixed-width layout for account data lines.
// Monetary fields carry an explicit decimal point and sign, e.g.
// "-0001200.50" in an 11-wide column.
var AccountSchema = []Column{
	{Name: "account_id", Width: 11, Numeric: true},
	{Name: "customer_id", Width: 11, Numeric: true},
	{Name: "status", Width: 8},
	{Name: "current_balance", Width: 14, Numeric: true},
	{Name: "credit_limit", Width: 14, Numeric: true},
	{Name: "cash_credit_limit", Width: 14, Numeric: true},
	{Name: "cycle_debit", Width: 14, Numeric: true},
	{Name: "cycle_credit", Width: 14, Numeric: true},
	{Name: "open_date", Width: 10},
	{Name: "expiration_date", Width: 10},
	{Name: "group_id", Width: 10},
}

// TransactionSchema is the fixed-width layout for transaction data lines.
var TransactionSchema = []Column{
	{Name: "transaction_id", Width: 16},
	{Name: "account_id", Width: 11, Numeric: true},
	{Name: "card_number", Width: 16},
	{Name: "type_code", Width: 2},
	{Name: "category_code", Width: 4},
	{Name: "source", Width: 10},
	{Name: "description", Width: 40},
	{Name: "amount", Width: 12, Numeric: true},
	{Name: "merchant_id", Width: 9},
	{Name: "merchant_name", Width: 30},
	{Name: "merchant_city", Width: 20},
	{Name: "date", Width: 10},
	{Name: "processed", Width: 5},
}

// CustomerSchema is the fixed-width layout for customer data lines.
var CustomerSchema = []Column{
	{Name: "customer_id", Width: 11, Numeric: true},
	{Name: "first_name", Width: 20},
	{Name: "last_name", Width: 25},
	{Name: "address", Width: 40},
	{Name: "city", Width: 25},
	{Name: "state", Width: 2},
	{Name: "zip", Width: 10},
	{Name: "phone", Width: 15},
	{Name: "fico_score", Width: 3, Numeric: true},
}

// headerSchema lays out the single header line: record type "H", the
// dataset name, the generation timestamp (yyyymmddhhmmss), and the record
// count. The trailer line is record type "T" followed by the count alone.
var headerSchema = []Column{
	{Name: "record_type", Width: 1},
	{Name: "dataset", Width: 12},
	{Name: "generated", Width: 14, Numeric: true},
	{Name: "count", Width: 9, Numeric: true},
}

var trailerSchema = []Column{
	{Name: "record_type", Width: 1},
	{Name: "count", Width: 9, Numeric: true},
}

// padField fits one value into its column.
func padField(col Column, value string) (string, error) {
	if len(value) > col.Width {
		return "", fmt.Errorf("field %s value %q exceeds width %d", col.Name, value, col.Width)
	}
	if col.Numeric {
		// Sign stays leftmost: "-1200.50" pads to "-00001200.50".
		sign := ""
		digits := value
		if strings.HasPrefix(value, "-") {
			sign, digits = "-", value[1:]
		}
		return sign + strings.Repeat("0", col.Width-len(value)) + digits, nil
	}
	return value + strings.Repeat(" ", col.Width-len(value)), nil
}

// fixedLine renders one record at the schema's widths.
func fixedLine(schema []Column, values []string) (string, error) {
	if len(values) != len(schema) {
		return "", fmt.Errorf("expected %d values, got %d", len(schema), len(values))
	}
	var sb strings.Builder
	for i, col := range schema {
		field, err := padField(col, values[i])
		if err != nil {
			return "", err
		}
		sb.WriteString(field)
	}
	return sb.String(), nil
}
