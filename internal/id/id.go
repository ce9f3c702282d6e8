package id

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatEntryID returns an entry ID like "2025-01-001".
func FormatEntryID(year, month, seq int) string {
	return fmt.Sprintf("%04d-%02d-%03d", year, month, seq)
}

// ParseEntryID parses "2025-01-001" into year, month, seq.
func ParseEntryID(id string) (year, month, seq int, err error) {
	parts := strings.SplitN(id, "-", 3)
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid entry ID format: %q", id)
	}

	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid year in entry ID %q: %w", id, err)
	}

	month, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid month in entry ID %q: %w", id, err)
	}

	seq, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid sequence in entry ID %q: %w", id, err)
	}

	return year, month, seq, nil
}

// FormatFindingID returns a finding ID like "BEN-001".
func FormatFindingID(prefix string, seq int) string {
	return fmt.Sprintf("%s-%03d", prefix, seq)
}

// Allocator hands out entry IDs that do not collide with a known set.
// IDs that do not follow the YYYY-MM-NNN format are reserved but otherwise ignored.
type Allocator struct {
	used   map[string]bool
	maxSeq map[string]int // "YYYY-MM" -> highest sequence seen
}

// NewAllocator seeds an Allocator with the IDs already present in a ledger.
func NewAllocator(existing []string) *Allocator {
	a := &Allocator{used: make(map[string]bool, len(existing)), maxSeq: make(map[string]int)}
	for _, e := range existing {
		a.reserve(e)
	}
	return a
}

// Next returns a fresh entry ID in the month of date.
func (a *Allocator) Next(date time.Time) string {
	key := fmt.Sprintf("%04d-%02d", date.Year(), int(date.Month()))
	seq := a.maxSeq[key] + 1
	for {
		candidate := FormatEntryID(date.Year(), int(date.Month()), seq)
		if !a.used[candidate] {
			a.reserve(candidate)
			return candidate
		}
		seq++
	}
}

func (a *Allocator) reserve(entryID string) {
	a.used[entryID] = true
	year, month, seq, err := ParseEntryID(entryID)
	if err != nil {
		return
	}
	key := fmt.Sprintf("%04d-%02d", year, month)
	if seq > a.maxSeq[key] {
		a.maxSeq[key] = seq
	}
}
