package id

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const interestDateFormat = "20060102"

// FormatInterestID returns the synthetic transaction ID for a daily
// interest accrual, like "INT-42-20250131". The (account, date) pair makes
// the ID unique, which is what the duplicate-accrual guard keys on.
func FormatInterestID(accountID int, day time.Time) string {
	return fmt.Sprintf("INT-%d-%s", accountID, day.Format(interestDateFormat))
}

// ParseInterestID parses "INT-42-20250131" into account ID and accrual date.
func ParseInterestID(id string) (accountID int, day time.Time, err error) {
	parts := strings.SplitN(id, "-", 3)
	if len(parts) != 3 || parts[0] != "INT" {
		return 0, time.Time{}, fmt.Errorf("invalid interest ID format: %q", id)
	}

	accountID, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("invalid account in interest ID %q: %w", id, err)
	}

	day, err = time.Parse(interestDateFormat, parts[2])
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("invalid date in interest ID %q: %w", id, err)
	}

	return accountID, day, nil
}

// IsInterestID reports whether a transaction ID was generated by the
// interest accrual engine.
func IsInterestID(id string) bool {
	_, _, err := ParseInterestID(id)
	return err == nil
}

// StatementArtifact returns the report file name for a statement period,
// like "statements-2025-01.txt".
func StatementArtifact(year, month int) string {
	return fmt.Sprintf("statements-%04d-%02d.txt", year, month)
}

// ExportArtifact returns the snapshot file name for a dataset and format
// extension, like "accounts-20250131-120000.csv".
func ExportArtifact(dataset, ext string, generated time.Time) string {
	return fmt.Sprintf("%s-%s.%s", dataset, generated.Format("20060102-150405"), ext)
}
