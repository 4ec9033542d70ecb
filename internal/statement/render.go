package statement

import (
	"fmt"
	"io"
	"strings"

	"github.com/cardledger-dev/cardledger/internal/model"
)

const renderDateFormat = "2006-01-02"

var divider = strings.Repeat("=", 72)

// Render writes the assembled statements as one textual report. The
// aggregates come from Compute; this layer only formats.
func Render(w io.Writer, issuer string, statements []model.Statement) error {
	for _, stmt := range statements {
		if err := renderOne(w, issuer, stmt); err != nil {
			return fmt.Errorf("rendering statement for account %d: %w", stmt.AccountID, err)
		}
	}
	return nil
}

func renderOne(w io.Writer, issuer string, stmt model.Statement) error {
	lines := []string{
		divider,
		fmt.Sprintf("%s  MONTHLY STATEMENT", issuer),
		fmt.Sprintf("Account %d  (customer %d)", stmt.AccountID, stmt.CustomerID),
		fmt.Sprintf("Period  %s through %s", stmt.PeriodStart.Format(renderDateFormat), stmt.PeriodEnd.Format(renderDateFormat)),
		divider,
		fmt.Sprintf("Previous balance     %12s", stmt.PreviousBalance.StringFixed(2)),
		fmt.Sprintf("Total debits         %12s", stmt.TotalDebits.StringFixed(2)),
		fmt.Sprintf("Total credits        %12s", stmt.TotalCredits.StringFixed(2)),
		fmt.Sprintf("New balance          %12s", stmt.NewBalance.StringFixed(2)),
		fmt.Sprintf("Minimum payment due  %12s", stmt.MinimumPaymentDue.StringFixed(2)),
		fmt.Sprintf("Payment due date     %12s", stmt.PaymentDueDate.Format(renderDateFormat)),
		fmt.Sprintf("Available credit     %12s", stmt.AvailableCredit.StringFixed(2)),
	}

	if len(stmt.Transactions) > 0 {
		lines = append(lines, "", "Date        Transaction          Description                     Amount")
		for _, tx := range stmt.Transactions {
			lines = append(lines, fmt.Sprintf("%-10s  %-20s %-30.30s %9s",
				tx.Date.Format(renderDateFormat), tx.ID, tx.Description, tx.Amount.StringFixed(2)))
		}
	}
	lines = append(lines, "")

	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}
