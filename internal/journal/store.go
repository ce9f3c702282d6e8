package journal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cleared-dev/auditsim/internal/model"
)

// LoadLedger reads a ledger CSV and rejects it when any row is malformed.
// When period is zero it is inferred from the entry dates.
func LoadLedger(path, companyID string, period model.Period) (model.GeneralLedger, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.GeneralLedger{}, fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	entries, err := ReadEntries(f)
	if err != nil {
		return model.GeneralLedger{}, fmt.Errorf("reading ledger %s: %w", path, err)
	}

	if verrs := FatalErrors(Validate(entries)); len(verrs) > 0 {
		msgs := make([]string, len(verrs))
		for i, ve := range verrs {
			msgs[i] = ve.Error()
		}
		return model.GeneralLedger{}, fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
	}

	if period.IsZero() {
		period = InferPeriod(entries)
	}

	return model.GeneralLedger{
		CompanyID:   companyID,
		PeriodStart: period.Start,
		PeriodEnd:   period.End,
		Entries:     entries,
	}, nil
}

// SaveLedger writes the ledger's entries to path, creating parent directories.
func SaveLedger(path string, gl model.GeneralLedger) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating ledger dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating ledger file: %w", err)
	}
	defer f.Close()

	if err := WriteEntries(f, gl.Entries); err != nil {
		return fmt.Errorf("writing ledger: %w", err)
	}
	return nil
}

// InferPeriod returns the span from the earliest to the latest entry date.
func InferPeriod(entries []model.JournalEntry) model.Period {
	var p model.Period
	for i, e := range entries {
		if i == 0 || e.Date.Before(p.Start) {
			p.Start = e.Date
		}
		if i == 0 || e.Date.After(p.End) {
			p.End = e.Date
		}
	}
	return p
}
