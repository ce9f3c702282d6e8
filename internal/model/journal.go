package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is a single row of the general ledger (one side of a transaction).
// Rows sharing an EntryID form one transaction.
type JournalEntry struct {
	EntryID          string          `json:"entry_id" validate:"required"`
	Date             time.Time       `json:"date" validate:"required"`
	AccountCode      string          `json:"account_code" validate:"required"`
	AccountName      string          `json:"account_name"`
	Debit            decimal.Decimal `json:"debit" validate:"gte=0"`
	Credit           decimal.Decimal `json:"credit" validate:"gte=0"`
	Description      string          `json:"description"`
	VendorOrCustomer string          `json:"vendor_or_customer,omitempty"`
}

// Amount returns the non-zero side of the row. Debit wins when both are set.
func (e JournalEntry) Amount() decimal.Decimal {
	if !e.Debit.IsZero() {
		return e.Debit
	}
	return e.Credit
}

// GeneralLedger is the chronological record of one company's entries for a period.
type GeneralLedger struct {
	CompanyID   string         `json:"company_id"`
	PeriodStart time.Time      `json:"period_start"`
	PeriodEnd   time.Time      `json:"period_end"`
	Entries     []JournalEntry `json:"entries"`
}

// Clone returns a copy of the ledger that shares no entry storage with gl.
func (gl GeneralLedger) Clone() GeneralLedger {
	out := gl
	out.Entries = make([]JournalEntry, len(gl.Entries))
	copy(out.Entries, gl.Entries)
	return out
}

// Period returns the ledger's reporting window.
func (gl GeneralLedger) Period() Period {
	return Period{Start: gl.PeriodStart, End: gl.PeriodEnd}
}

// Period is an inclusive calendar window.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// IsZero reports whether the period has no bounds set.
func (p Period) IsZero() bool {
	return p.Start.IsZero() && p.End.IsZero()
}

// Contains reports whether d falls on or between the period's start and end dates.
func (p Period) Contains(d time.Time) bool {
	return !d.Before(p.Start) && !d.After(p.End)
}

// String renders the period as "2025-01-01..2025-03-31".
func (p Period) String() string {
	if p.IsZero() {
		return ""
	}
	return p.Start.Format(DateFormat) + ".." + p.End.Format(DateFormat)
}

// DateFormat is the ISO calendar date layout used across files and reports.
const DateFormat = "2006-01-02"
