package model

// Customer is a row in customers.csv. Read-only to the batch engine;
// present for export snapshots and posting ownership.
type Customer struct {
	ID        int
	FirstName string
	LastName  string
	Address   string
	City      string
	State     string
	Zip       string
	Phone     string
	FICOScore int
}
