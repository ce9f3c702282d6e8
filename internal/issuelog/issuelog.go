// Package issuelog keeps the ground-truth record of every issue planted by an
// audit run, as an append-only CSV under <root>/logs.
package issuelog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cleared-dev/auditsim/internal/model"
)

// Record is one planted issue tagged with the run that planted it.
type Record struct {
	Timestamp time.Time
	AuditID   string
	Issue     model.InjectedIssue
}

// Header is the CSV header for injected-issues.csv.
const Header = "timestamp,audit_id,issue_type,category,severity,description,affected_entries"

const (
	numFields      = 7
	logDir         = "logs"
	logFile        = "logs/injected-issues.csv"
	entrySep       = ";"
	colTimestamp   = 0
	colAuditID     = 1
	colIssueType   = 2
	colCategory    = 3
	colSeverity    = 4
	colDescription = 5
	colAffected    = 6
)

// Path returns the log location under root.
func Path(root string) string {
	return filepath.Join(root, logFile)
}

// NewRecords stamps every issue with the run ID and time.
func NewRecords(auditID string, at time.Time, issues []model.InjectedIssue) []Record {
	records := make([]Record, len(issues))
	for i, iss := range issues {
		records[i] = Record{Timestamp: at, AuditID: auditID, Issue: iss}
	}
	return records
}

// MarshalRecord converts a Record to a CSV row.
func MarshalRecord(r Record) []string {
	row := make([]string, numFields)
	row[colTimestamp] = r.Timestamp.Format(time.RFC3339)
	row[colAuditID] = r.AuditID
	row[colIssueType] = r.Issue.IssueType
	row[colCategory] = string(r.Issue.Category)
	row[colSeverity] = string(r.Issue.Severity)
	row[colDescription] = r.Issue.Description
	row[colAffected] = strings.Join(r.Issue.AffectedEntries, entrySep)
	return row
}

// UnmarshalRecord converts a CSV row to a Record.
func UnmarshalRecord(row []string) (Record, error) {
	if len(row) != numFields {
		return Record{}, fmt.Errorf("expected %d fields, got %d", numFields, len(row))
	}

	ts, err := time.Parse(time.RFC3339, row[colTimestamp])
	if err != nil {
		return Record{}, fmt.Errorf("parsing timestamp %q: %w", row[colTimestamp], err)
	}

	var affected []string
	if row[colAffected] != "" {
		affected = strings.Split(row[colAffected], entrySep)
	}

	return Record{
		Timestamp: ts,
		AuditID:   row[colAuditID],
		Issue: model.InjectedIssue{
			IssueType:       row[colIssueType],
			Category:        model.IssueCategory(row[colCategory]),
			Severity:        model.Severity(row[colSeverity]),
			Description:     row[colDescription],
			AffectedEntries: affected,
		},
	}, nil
}

// Append writes records to <root>/logs/injected-issues.csv, creating the file and header if needed.
func Append(root string, records []Record) error {
	dir := filepath.Join(root, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := Path(root)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening issue log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, r := range records {
		if err := cw.Write(MarshalRecord(r)); err != nil {
			return fmt.Errorf("writing record %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read returns all records from <root>/logs/injected-issues.csv.
// Returns nil if the file does not exist.
func Read(root string) ([]Record, error) {
	f, err := os.Open(Path(root))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening issue log: %w", err)
	}
	defer f.Close()

	return readRecords(f)
}

// ByAudit returns the records of one run, in log order.
func ByAudit(records []Record, auditID string) []Record {
	var out []Record
	for _, r := range records {
		if r.AuditID == auditID {
			out = append(out, r)
		}
	}
	return out
}

// AuditIDs returns the distinct run IDs in log order.
func AuditIDs(records []Record) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, r := range records {
		if !seen[r.AuditID] {
			seen[r.AuditID] = true
			ids = append(ids, r.AuditID)
		}
	}
	return ids
}

func readRecords(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading issue log CSV: %w", err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}

	var records []Record
	for i, row := range rows[1:] {
		rec, err := UnmarshalRecord(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		records = append(records, rec)
	}
	return records, nil
}
