package inject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/auditsim/internal/accounts"
	"github.com/cleared-dev/auditsim/internal/journal"
	"github.com/cleared-dev/auditsim/internal/model"
)

func requireValid(t *testing.T, entries []model.JournalEntry) {
	t.Helper()
	assert.Empty(t, journal.FatalErrors(journal.Validate(entries)))
}

func TestWrongAccount(t *testing.T) {
	gl := cleanLedger(30)
	before := gl.Clone()
	mc := newContext(gl, 1)

	m, ok := WrongAccount(mc, gl.Entries)
	require.True(t, ok)
	require.Len(t, m.Affected, 1)
	assert.Len(t, m.Entries, len(gl.Entries), "rewrites preserve entry count")
	assert.Equal(t, before, gl, "input untouched")

	changed := 0
	for i := range m.Entries {
		if m.Entries[i].AccountCode != gl.Entries[i].AccountCode {
			changed++
			assert.Equal(t, m.Affected[0], m.Entries[i].EntryID)
			orig, _ := mc.Chart.Get(gl.Entries[i].AccountCode)
			moved, ok := mc.Chart.Get(m.Entries[i].AccountCode)
			require.True(t, ok)
			assert.Equal(t, orig.Type, moved.Type, "plausible account of the same type")
			assert.Equal(t, moved.Name, m.Entries[i].AccountName)
		}
	}
	assert.Equal(t, 1, changed)
	requireValid(t, m.Entries)
}

func TestWrongAccount_NeedsTwoAccounts(t *testing.T) {
	gl := cleanLedger(5)
	mc := newContext(gl, 1)
	mc.Chart = accounts.NewService([]model.Account{{Code: "1000", Name: "Cash", Type: model.AccountTypeAsset}})

	_, ok := WrongAccount(mc, gl.Entries)
	assert.False(t, ok)
}

func TestCutoff(t *testing.T) {
	gl := cleanLedger(30)
	mc := newContext(gl, 2)

	m, ok := Cutoff(mc, gl.Entries)
	require.True(t, ok)
	require.Len(t, m.Affected, 1)
	assert.Len(t, m.Entries, len(gl.Entries))

	for _, e := range m.Entries {
		if e.EntryID == m.Affected[0] {
			assert.False(t, gl.Period().Contains(e.Date), "date %s moved out of period", e.Date)
		} else {
			assert.True(t, gl.Period().Contains(e.Date))
		}
	}
	requireValid(t, m.Entries)
}

func TestCutoff_EmptyLedger(t *testing.T) {
	_, ok := Cutoff(newContext(model.GeneralLedger{}, 1), nil)
	assert.False(t, ok)
}

func TestPersonalExpense(t *testing.T) {
	gl := cleanLedger(10)
	mc := newContext(gl, 3)

	m, ok := PersonalExpense(mc, gl.Entries)
	require.True(t, ok)
	assert.Len(t, m.Entries, len(gl.Entries)+2)
	require.Len(t, m.Affected, 1)
	assert.False(t, entryIDs(gl.Entries)[m.Affected[0]], "new entry id")

	added := m.Entries[len(gl.Entries):]
	assert.Equal(t, m.Affected[0], added[0].EntryID)
	assert.True(t, added[0].Debit.Equal(added[1].Credit))
	assert.NotEmpty(t, added[0].VendorOrCustomer)
	acct, _ := mc.Chart.Get(added[0].AccountCode)
	assert.Equal(t, model.AccountTypeExpense, acct.Type)
	assert.True(t, gl.Period().Contains(added[0].Date))
	assert.Empty(t, journal.Validate(m.Entries), "appended pair is balanced")
}

func TestDuplicatePayment(t *testing.T) {
	gl := cleanLedger(10)
	mc := newContext(gl, 4)

	m, ok := DuplicatePayment(mc, gl.Entries)
	require.True(t, ok)
	require.Len(t, m.Affected, 2)
	origID, dupID := m.Affected[0], m.Affected[1]
	assert.True(t, entryIDs(gl.Entries)[origID])
	assert.False(t, entryIDs(gl.Entries)[dupID])
	assert.Greater(t, len(m.Entries), len(gl.Entries))

	var orig, dup []model.JournalEntry
	for _, e := range m.Entries {
		switch e.EntryID {
		case origID:
			orig = append(orig, e)
		case dupID:
			dup = append(dup, e)
		}
	}
	require.Len(t, dup, len(orig))
	for i := range orig {
		assert.True(t, orig[i].Debit.Equal(dup[i].Debit))
		assert.True(t, orig[i].Credit.Equal(dup[i].Credit))
		assert.Equal(t, orig[i].VendorOrCustomer, dup[i].VendorOrCustomer)
		assert.False(t, dup[i].Date.Before(orig[i].Date))
		assert.False(t, dup[i].Date.After(gl.PeriodEnd))
	}
	requireValid(t, m.Entries)
}

func TestRoundNumber(t *testing.T) {
	gl := cleanLedger(10)
	mc := newContext(gl, 5)

	m, ok := RoundNumber(mc, gl.Entries)
	require.True(t, ok)
	assert.Len(t, m.Entries, len(gl.Entries)+2)

	amount := m.Entries[len(gl.Entries)].Debit
	found := false
	for _, r := range RoundAmounts {
		if amount.Equal(decimal.NewFromInt(r)) {
			found = true
		}
	}
	assert.True(t, found, "amount %s drawn from the round set", amount)
	requireValid(t, m.Entries)
}

func TestStructuring(t *testing.T) {
	gl := cleanLedger(10)
	for s := range uint64(20) {
		mc := newContext(gl, s)

		m, ok := Structuring(mc, gl.Entries)
		require.True(t, ok)
		require.GreaterOrEqual(t, len(m.Affected), 3)
		assert.Len(t, m.Entries, len(gl.Entries)+2*len(m.Affected))

		total := decimal.Zero
		vendors := make(map[string]bool)
		for _, e := range m.Entries[len(gl.Entries):] {
			if e.Debit.IsZero() {
				continue
			}
			assert.True(t, e.Debit.LessThan(ReportingThreshold), "seed %d: %s below threshold", s, e.Debit)
			assert.True(t, e.Debit.GreaterThanOrEqual(decimal.NewFromInt(9000)))
			assert.True(t, gl.Period().Contains(e.Date), "seed %d: %s inside period", s, e.Date)
			total = total.Add(e.Debit)
			vendors[e.VendorOrCustomer] = true
		}
		assert.True(t, total.GreaterThan(ReportingThreshold))
		assert.Len(t, vendors, 1, "one vendor across the split payments")
		requireValid(t, m.Entries)
	}
}

func TestAppendStrategies_NeedPeriodAndChart(t *testing.T) {
	mc := newContext(model.GeneralLedger{}, 1)
	for name, s := range map[string]Strategy{"personal": PersonalExpense, "round": RoundNumber, "structuring": Structuring} {
		_, ok := s(mc, nil)
		assert.False(t, ok, "%s without a period", name)
	}

	gl := cleanLedger(3)
	mc = newContext(gl, 1)
	mc.Chart = accounts.NewService(nil)
	_, ok := PersonalExpense(mc, gl.Entries)
	assert.False(t, ok, "no expense account to charge")
}
