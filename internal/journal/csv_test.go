package journal

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/auditsim/internal/model"
)

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func pair(entryID string, d time.Time, debitAcct, creditAcct, amount string) []model.JournalEntry {
	return []model.JournalEntry{
		{EntryID: entryID, Date: d, AccountCode: debitAcct, AccountName: "Debit " + debitAcct, Debit: dec(amount), Description: "test"},
		{EntryID: entryID, Date: d, AccountCode: creditAcct, AccountName: "Credit " + creditAcct, Credit: dec(amount), Description: "test"},
	}
}

func TestRoundTrip(t *testing.T) {
	entries := pair("2025-01-001", date(2025, 1, 15), "5200", "1000", "4.00")
	entries[0].VendorOrCustomer = "GitHub"

	var buf bytes.Buffer
	require.NoError(t, WriteEntries(&buf, entries))

	got, err := ReadEntries(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "2025-01-001", got[0].EntryID)
	assert.True(t, got[0].Date.Equal(date(2025, 1, 15)))
	assert.Equal(t, "5200", got[0].AccountCode)
	assert.True(t, got[0].Debit.Equal(dec("4.00")))
	assert.True(t, got[0].Credit.IsZero())
	assert.Equal(t, "GitHub", got[0].VendorOrCustomer)
	assert.True(t, got[1].Credit.Equal(dec("4.00")))
}

func TestMarshalEntry_BlankZeroSide(t *testing.T) {
	row := MarshalEntry(model.JournalEntry{
		EntryID:     "2025-01-001",
		Date:        date(2025, 1, 2),
		AccountCode: "1000",
		Credit:      dec("12.5"),
	})
	assert.Equal(t, "", row[colDebit])
	assert.Equal(t, "12.50", row[colCredit])
	assert.Equal(t, "2025-01-02", row[colDate])
}

func TestUnmarshalEntry_Errors(t *testing.T) {
	tests := []struct {
		name   string
		record []string
	}{
		{"short row", []string{"2025-01-001", "2025-01-01"}},
		{"bad date", []string{"2025-01-001", "01/02/2025", "1000", "Cash", "1.00", "", "", ""}},
		{"bad debit", []string{"2025-01-001", "2025-01-02", "1000", "Cash", "abc", "", "", ""}},
		{"bad credit", []string{"2025-01-001", "2025-01-02", "1000", "Cash", "", "1,00", "", ""}},
	}
	for _, tt := range tests {
		_, err := UnmarshalEntry(tt.record)
		assert.Error(t, err, tt.name)
	}
}

func TestReadEntries_Empty(t *testing.T) {
	got, err := ReadEntries(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)
}
