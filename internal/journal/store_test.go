package journal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/auditsim/internal/model"
)

func TestSaveLoadLedger(t *testing.T) {
	var entries []model.JournalEntry
	entries = append(entries, pair("2025-01-001", date(2025, 1, 3), "5200", "1000", "10.00")...)
	entries = append(entries, pair("2025-03-001", date(2025, 3, 28), "1000", "4000", "2500.00")...)

	path := filepath.Join(t.TempDir(), "out", "ledger.csv")
	require.NoError(t, SaveLedger(path, model.GeneralLedger{Entries: entries}))

	gl, err := LoadLedger(path, "acme", model.Period{})
	require.NoError(t, err)
	assert.Equal(t, "acme", gl.CompanyID)
	assert.Len(t, gl.Entries, 4)
	assert.True(t, gl.PeriodStart.Equal(date(2025, 1, 3)), "period inferred from entries")
	assert.True(t, gl.PeriodEnd.Equal(date(2025, 3, 28)))
}

func TestLoadLedger_ExplicitPeriod(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.csv")
	require.NoError(t, SaveLedger(path, model.GeneralLedger{Entries: pair("2025-01-001", date(2025, 1, 3), "5200", "1000", "10.00")}))

	period := model.Period{Start: date(2025, 1, 1), End: date(2025, 12, 31)}
	gl, err := LoadLedger(path, "acme", period)
	require.NoError(t, err)
	assert.Equal(t, period, gl.Period())
}

func TestLoadLedger_RejectsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.csv")
	data := Header + "\n" + ",2025-01-03,1000,Cash,10.00,,missing id,\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	_, err := LoadLedger(path, "acme", model.Period{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoadLedger_NotFound(t *testing.T) {
	_, err := LoadLedger(filepath.Join(t.TempDir(), "nope.csv"), "acme", model.Period{})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestInferPeriod_Empty(t *testing.T) {
	assert.True(t, InferPeriod(nil).IsZero())
}
