package detect

import (
	"fmt"
	"sort"
	"time"

	"github.com/cleared-dev/auditsim/internal/model"
)

type timingAnalyzer struct {
	cfg TimingConfig
}

func (a timingAnalyzer) name() string { return "timing" }

func (a timingAnalyzer) analyze(entries []model.JournalEntry) []model.AuditFinding {
	counts := make(map[string]int)
	ids := make(map[string][]string)
	seen := make(map[string]bool)
	for _, e := range entries {
		if e.Date.IsZero() {
			continue
		}
		day := e.Date.Format(model.DateFormat)
		counts[day]++
		key := day + "|" + e.EntryID
		if !seen[key] {
			seen[key] = true
			ids[day] = append(ids[day], e.EntryID)
		}
	}
	if len(counts) < a.cfg.MinActiveDays {
		return nil
	}

	days := make([]string, 0, len(counts))
	total := 0
	for day, n := range counts {
		days = append(days, day)
		total += n
	}
	sort.Strings(days)
	baseline := float64(total) / float64(len(days))

	m := a.cfg.SpikeMultiplier
	var findings []model.AuditFinding
	for _, day := range days {
		n := counts[day]
		ratio := float64(n) / baseline
		if ratio < m || n < a.cfg.MinSpikeCount {
			continue
		}
		severity := model.SeverityMedium
		if ratio >= 2*m {
			severity = model.SeverityHigh
		}
		findings = append(findings, model.AuditFinding{
			Category: string(model.CategoryTiming),
			Severity: severity,
			Issue:    "Unusual spike in posting activity",
			Details: fmt.Sprintf("%d rows posted on %s (%s), %.1fx the baseline of %.2f rows per active day",
				n, day, weekday(day), ratio, baseline),
			AffectedTransactions: ids[day],
			Recommendation:       "Review entries posted on this date for period-end manipulation, batch reclassifications or duplicated postings.",
			Confidence:           clamp01(0.5 + (ratio-m)/(2*m)),
		})
	}
	return findings
}

func weekday(day string) string {
	t, err := time.Parse(model.DateFormat, day)
	if err != nil {
		return ""
	}
	return t.Weekday().String()
}
