package batch

// JobKind identifies one of the fixed batch job types. The set is closed;
// dispatch goes through a Registry rather than string comparison.
type JobKind int

const (
	JobTransactionPosting JobKind = iota + 1
	JobInterestAccrual
	JobStatementGeneration
	JobExport
	JobNightly
)

var kindNames = map[JobKind]string{
	JobTransactionPosting:  "transaction-posting",
	JobInterestAccrual:     "interest-accrual",
	JobStatementGeneration: "statement-generation",
	JobExport:              "export",
	JobNightly:             "nightly",
}

// Name returns the stable job name used in results and history.
func (k JobKind) Name() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// KindByName resolves a job name back to its kind.
func KindByName(name string) (JobKind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}
