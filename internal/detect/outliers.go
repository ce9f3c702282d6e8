package detect

import (
	"fmt"
	"math"

	"github.com/cleared-dev/auditsim/internal/model"
)

type outlierAnalyzer struct {
	cfg OutlierConfig
}

type outlier struct {
	entry  model.JournalEntry
	amount float64
	z      float64
	stats  summary
	scope  string
}

func (a outlierAnalyzer) name() string { return "outliers" }

func (a outlierAnalyzer) analyze(entries []model.JournalEntry) []model.AuditFinding {
	var global []float64
	byAccount := make(map[string][]float64)
	for _, e := range entries {
		amt := e.Amount()
		if !amt.IsPositive() {
			continue
		}
		v := amt.InexactFloat64()
		global = append(global, v)
		byAccount[e.AccountCode] = append(byAccount[e.AccountCode], v)
	}

	accountStats := make(map[string]summary)
	for code, values := range byAccount {
		if len(values) >= a.cfg.MinAccountSample && canExceed(len(values), a.cfg.ZThreshold) {
			accountStats[code] = summarize(values)
		}
	}
	var globalStats summary
	if len(global) >= a.cfg.MinSample {
		globalStats = summarize(global)
	}

	best := make(map[string]int)
	var found []outlier
	for _, e := range entries {
		amt := e.Amount()
		if !amt.IsPositive() {
			continue
		}
		stats, scope := globalStats, "ledger"
		if s, ok := accountStats[e.AccountCode]; ok {
			stats, scope = s, "account "+e.AccountCode
		}
		if stats.n == 0 || stats.stddev == 0 {
			continue
		}
		v := amt.InexactFloat64()
		z := (v - stats.mean) / stats.stddev
		if z <= a.cfg.ZThreshold {
			continue
		}
		if iqr := stats.iqr(); iqr > 0 && v <= stats.q3+a.cfg.IQRFactor*iqr {
			continue
		}
		o := outlier{entry: e, amount: v, z: z, stats: stats, scope: scope}
		if i, ok := best[e.EntryID]; ok {
			if z > found[i].z {
				found[i] = o
			}
			continue
		}
		best[e.EntryID] = len(found)
		found = append(found, o)
	}

	findings := make([]model.AuditFinding, 0, len(found))
	t := a.cfg.ZThreshold
	for _, o := range found {
		severity := model.SeverityMedium
		if o.z >= 2*t {
			severity = model.SeverityHigh
		}
		findings = append(findings, model.AuditFinding{
			Category: string(model.CategoryFraud),
			Severity: severity,
			Issue:    "Unusually large transaction amount",
			Details: fmt.Sprintf("%s on %s (%s) is %.1f standard deviations above the %s mean of %.2f (n=%d)",
				o.entry.Amount().StringFixed(2), o.entry.AccountCode, o.entry.AccountName,
				o.z, o.scope, o.stats.mean, o.stats.n),
			AffectedTransactions: []string{o.entry.EntryID},
			Recommendation:       "Obtain supporting documentation and confirm the business purpose and approval of the transaction.",
			Confidence:           clamp01(0.5 + (o.z-t)/(2*t)),
		})
	}
	return findings
}

// canExceed reports whether any single value among n can score a z above t.
// With the sample standard deviation the largest reachable z is (n-1)/sqrt(n),
// so smaller populations fall back to the ledger-wide statistics.
func canExceed(n int, t float64) bool {
	return n > 1 && float64(n-1)/math.Sqrt(float64(n)) > t
}
