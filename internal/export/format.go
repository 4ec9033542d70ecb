package export

import "fmt"

// Format selects a snapshot encoding. The set is closed; dispatch goes
// through the encoder table, not string comparison at call sites.
type Format string

const (
	FormatFixed Format = "fixed"
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
)

var formatExts = map[Format]string{
	FormatFixed: "dat",
	FormatCSV:   "csv",
	FormatJSON:  "json",
}

// ParseFormat resolves a format name.
func ParseFormat(name string) (Format, error) {
	f := Format(name)
	if _, ok := formatExts[f]; !ok {
		return "", fmt.Errorf("unknown export format %q", name)
	}
	return f, nil
}

// Ext returns the artifact file extension for a format.
func (f Format) Ext() string {
	return formatExts[f]
}

// Dataset selects which ledger collection to snapshot.
type Dataset string

const (
	DatasetAccounts     Dataset = "accounts"
	DatasetTransactions Dataset = "transactions"
	DatasetCustomers    Dataset = "customers"
)

var datasets = map[Dataset]bool{
	DatasetAccounts:     true,
	DatasetTransactions: true,
	DatasetCustomers:    true,
}

// ParseDataset resolves a dataset name.
func ParseDataset(name string) (Dataset, error) {
	d := Dataset(name)
	if !datasets[d] {
		return "", fmt.Errorf("unknown export dataset %q", name)
	}
	return d, nil
}
