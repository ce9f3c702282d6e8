package id

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatEntryID(t *testing.T) {
	tests := []struct {
		year, month, seq int
		want             string
	}{
		{2025, 1, 1, "2025-01-001"},
		{2025, 12, 99, "2025-12-099"},
		{2025, 1, 123, "2025-01-123"},
	}
	for _, tt := range tests {
		got := FormatEntryID(tt.year, tt.month, tt.seq)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseEntryID(t *testing.T) {
	tests := []struct {
		input               string
		wantYear, wantMonth int
		wantSeq             int
	}{
		{"2025-01-001", 2025, 1, 1},
		{"2025-12-099", 2025, 12, 99},
		{"2025-03-1042", 2025, 3, 1042},
	}
	for _, tt := range tests {
		year, month, seq, err := ParseEntryID(tt.input)
		require.NoError(t, err, "input: %s", tt.input)
		assert.Equal(t, tt.wantYear, year)
		assert.Equal(t, tt.wantMonth, month)
		assert.Equal(t, tt.wantSeq, seq)
	}
}

func TestParseEntryID_Errors(t *testing.T) {
	badInputs := []string{
		"",
		"not-valid",
		"2025-01",
		"xxxx-01-001",
		"JE-1001",
	}
	for _, input := range badInputs {
		_, _, _, err := ParseEntryID(input)
		assert.Error(t, err, "expected error for input: %s", input)
	}
}

func TestFormatFindingID(t *testing.T) {
	assert.Equal(t, "BEN-001", FormatFindingID("BEN", 1))
	assert.Equal(t, "OUT-120", FormatFindingID("OUT", 120))
}

func TestAllocator_Next(t *testing.T) {
	a := NewAllocator([]string{"2025-01-001", "2025-01-002", "2025-02-007", "JE-1001"})
	jan := time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "2025-01-003", a.Next(jan))
	assert.Equal(t, "2025-01-004", a.Next(jan))
	assert.Equal(t, "2025-02-008", a.Next(feb))
	assert.Equal(t, "2025-03-001", a.Next(mar))
}

func TestAllocator_NeverCollides(t *testing.T) {
	existing := []string{"2025-01-001", "2025-01-003"}
	a := NewAllocator(existing)
	seen := map[string]bool{"2025-01-001": true, "2025-01-003": true}
	for range 50 {
		got := a.Next(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
		assert.False(t, seen[got], "duplicate id %s", got)
		seen[got] = true
	}
}
