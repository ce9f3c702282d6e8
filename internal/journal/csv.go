package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/auditsim/internal/model"
)

// Header is the CSV header for ledger.csv.
const Header = "entry_id,date,account_code,account_name,debit,credit,description,vendor_or_customer"

const (
	numFields  = 8
	colEntryID = 0
	colDate    = 1
	colAcct    = 2
	colName    = 3
	colDebit   = 4
	colCredit  = 5
	colDesc    = 6
	colParty   = 7
)

// ReadEntries reads all rows from a ledger.csv reader.
func ReadEntries(r io.Reader) ([]model.JournalEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ledger CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var entries []model.JournalEntry
	for i, rec := range records[1:] {
		entry, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// WriteEntries writes rows to a ledger.csv writer (including header).
func WriteEntries(w io.Writer, entries []model.JournalEntry) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalEntry converts a JournalEntry to a CSV row.
func MarshalEntry(e model.JournalEntry) []string {
	row := make([]string, numFields)
	row[colEntryID] = e.EntryID
	row[colDate] = e.Date.Format(model.DateFormat)
	row[colAcct] = e.AccountCode
	row[colName] = e.AccountName

	if !e.Debit.IsZero() {
		row[colDebit] = e.Debit.StringFixed(2)
	}
	if !e.Credit.IsZero() {
		row[colCredit] = e.Credit.StringFixed(2)
	}

	row[colDesc] = e.Description
	row[colParty] = e.VendorOrCustomer
	return row
}

// UnmarshalEntry converts a CSV row to a JournalEntry.
func UnmarshalEntry(record []string) (model.JournalEntry, error) {
	if len(record) != numFields {
		return model.JournalEntry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := time.Parse(model.DateFormat, record[colDate])
	if err != nil {
		return model.JournalEntry{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	var debit, credit decimal.Decimal

	if record[colDebit] != "" {
		debit, err = decimal.NewFromString(record[colDebit])
		if err != nil {
			return model.JournalEntry{}, fmt.Errorf("parsing debit %q: %w", record[colDebit], err)
		}
	}

	if record[colCredit] != "" {
		credit, err = decimal.NewFromString(record[colCredit])
		if err != nil {
			return model.JournalEntry{}, fmt.Errorf("parsing credit %q: %w", record[colCredit], err)
		}
	}

	return model.JournalEntry{
		EntryID:          record[colEntryID],
		Date:             date,
		AccountCode:      record[colAcct],
		AccountName:      record[colName],
		Debit:            debit,
		Credit:           credit,
		Description:      record[colDesc],
		VendorOrCustomer: record[colParty],
	}, nil
}
