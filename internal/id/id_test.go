package id

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatInterestID(t *testing.T) {
	day := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "INT-42-20250131", FormatInterestID(42, day))
}

func TestParseInterestID(t *testing.T) {
	accountID, day, err := ParseInterestID("INT-42-20250131")
	require.NoError(t, err)
	assert.Equal(t, 42, accountID)
	assert.Equal(t, time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), day)
}

func TestParseInterestID_Invalid(t *testing.T) {
	cases := []string{"", "INT-42", "TXN-42-20250131", "INT-x-20250131", "INT-42-2025013"}
	for _, c := range cases {
		_, _, err := ParseInterestID(c)
		assert.Error(t, err, c)
	}
}

func TestIsInterestID(t *testing.T) {
	assert.True(t, IsInterestID("INT-7-20250615"))
	assert.False(t, IsInterestID("TXN-0001"))
}

func TestStatementArtifact(t *testing.T) {
	assert.Equal(t, "statements-2025-01.txt", StatementArtifact(2025, 1))
}

func TestExportArtifact(t *testing.T) {
	generated := time.Date(2025, 1, 31, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "accounts-20250131-120000.csv", ExportArtifact("accounts", "csv", generated))
}
