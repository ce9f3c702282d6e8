package trialbalance

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/cleared-dev/auditsim/internal/model"
)

var header = []string{"account_code", "account_name", "account_type", "beginning_balance", "debit", "credit", "ending_balance"}

// WriteCSV writes the trial balance rows followed by a totals line.
func WriteCSV(w io.Writer, tb model.TrialBalance) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, row := range tb.Rows {
		rec := []string{
			row.AccountCode,
			row.AccountName,
			string(row.AccountType),
			row.BeginningBalance.StringFixed(2),
			row.Debit.StringFixed(2),
			row.Credit.StringFixed(2),
			row.EndingBalance.StringFixed(2),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	totals := []string{"", "TOTAL", "", "", tb.TotalDebits.StringFixed(2), tb.TotalCredits.StringFixed(2), tb.TotalDebits.Sub(tb.TotalCredits).StringFixed(2)}
	if err := cw.Write(totals); err != nil {
		return fmt.Errorf("writing totals: %w", err)
	}
	cw.Flush()
	return cw.Error()
}
