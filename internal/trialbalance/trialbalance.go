// Package trialbalance derives per-account period totals from a general ledger.
package trialbalance

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/auditsim/internal/model"
)

// DefaultTolerance is the largest debit/credit difference still treated as
// balanced. It absorbs currency rounding, not business materiality.
var DefaultTolerance = decimal.New(1, -2)

// Generator derives trial balances with a configurable balance tolerance.
type Generator struct {
	Tolerance decimal.Decimal
}

// NewGenerator returns a Generator. A non-positive tolerance falls back to
// DefaultTolerance.
func NewGenerator(tolerance decimal.Decimal) *Generator {
	if !tolerance.IsPositive() {
		tolerance = DefaultTolerance
	}
	return &Generator{Tolerance: tolerance}
}

// Derive builds a trial balance using DefaultTolerance.
func Derive(companyID string, ledger model.GeneralLedger, chart model.ChartOfAccounts, period model.Period) model.TrialBalance {
	return NewGenerator(DefaultTolerance).Derive(companyID, ledger, chart, period)
}

type totals struct {
	debit  decimal.Decimal
	credit decimal.Decimal
}

// Derive aggregates every ledger row into per-account totals. Every chart
// account gets exactly one row, in code order, whether or not it has activity.
// Ledger codes missing from the chart follow as "Unknown Account (code)" rows.
func (g *Generator) Derive(companyID string, ledger model.GeneralLedger, chart model.ChartOfAccounts, period model.Period) model.TrialBalance {
	byCode := make(map[string]model.Account, len(chart.Accounts))
	for _, a := range chart.Accounts {
		if _, dup := byCode[a.Code]; !dup {
			byCode[a.Code] = a
		}
	}

	sums := make(map[string]totals)
	for _, e := range ledger.Entries {
		t := sums[e.AccountCode]
		t.debit = t.debit.Add(e.Debit)
		t.credit = t.credit.Add(e.Credit)
		sums[e.AccountCode] = t
	}

	codes := make([]string, 0, len(byCode))
	for code := range byCode {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	tb := model.TrialBalance{CompanyID: companyID, Period: period, Rows: []model.TrialBalanceRow{}}
	for _, code := range codes {
		acct := byCode[code]
		tb.Rows = append(tb.Rows, newRow(code, acct.Name, acct.Type, sums[code]))
	}

	var orphans []string
	for code := range sums {
		if _, ok := byCode[code]; !ok {
			orphans = append(orphans, code)
		}
	}
	sort.Strings(orphans)
	for _, code := range orphans {
		tb.Rows = append(tb.Rows, newRow(code, fmt.Sprintf("Unknown Account (%s)", code), "", sums[code]))
	}

	tb.TotalDebits = decimal.Zero
	tb.TotalCredits = decimal.Zero
	for _, row := range tb.Rows {
		tb.TotalDebits = tb.TotalDebits.Add(row.Debit)
		tb.TotalCredits = tb.TotalCredits.Add(row.Credit)
	}
	tb.IsBalanced = tb.TotalDebits.Sub(tb.TotalCredits).Abs().LessThan(g.tolerance())
	return tb
}

func (g *Generator) tolerance() decimal.Decimal {
	if g == nil || !g.Tolerance.IsPositive() {
		return DefaultTolerance
	}
	return g.Tolerance
}

func newRow(code, name string, t model.AccountType, sum totals) model.TrialBalanceRow {
	debit := sum.debit.Round(2)
	credit := sum.credit.Round(2)
	return model.TrialBalanceRow{
		AccountCode:      code,
		AccountName:      name,
		AccountType:      t,
		BeginningBalance: decimal.Zero,
		Debit:            debit,
		Credit:           credit,
		EndingBalance:    sum.debit.Sub(sum.credit).Round(2),
	}
}
