package detect

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/cleared-dev/auditsim/internal/model"
)

// benfordExpected[d] is the Benford probability of leading digit d.
var benfordExpected = func() [10]float64 {
	var p [10]float64
	for d := 1; d <= 9; d++ {
		p[d] = math.Log10(1 + 1/float64(d))
	}
	return p
}()

// leadingDigit returns the first significant digit of a positive amount, or 0.
func leadingDigit(e model.JournalEntry) int {
	amt := e.Amount()
	if !amt.IsPositive() {
		return 0
	}
	for _, r := range amt.String() {
		if r >= '1' && r <= '9' {
			return int(r - '0')
		}
	}
	return 0
}

type digitDeviation struct {
	digit    int
	observed float64
	expected float64
}

func (d digitDeviation) gap() float64 {
	return math.Abs(d.observed - d.expected)
}

type benfordAnalyzer struct {
	cfg BenfordConfig
}

func (a benfordAnalyzer) name() string { return "benford" }

func (a benfordAnalyzer) analyze(entries []model.JournalEntry) []model.AuditFinding {
	var counts [10]int
	digits := make([]int, len(entries))
	n := 0
	for i, e := range entries {
		d := leadingDigit(e)
		digits[i] = d
		if d > 0 {
			counts[d]++
			n++
		}
	}
	if n < a.cfg.MinSample {
		return nil
	}

	var chi2, mad float64
	devs := make([]digitDeviation, 0, 9)
	for d := 1; d <= 9; d++ {
		exp := benfordExpected[d] * float64(n)
		diff := float64(counts[d]) - exp
		chi2 += diff * diff / exp
		dev := digitDeviation{digit: d, observed: float64(counts[d]) / float64(n), expected: benfordExpected[d]}
		mad += dev.gap()
		devs = append(devs, dev)
	}
	mad /= 9

	c := a.cfg.ChiSquareCritical
	if chi2 <= c && mad <= a.cfg.MADThreshold {
		return nil
	}

	named := make([]digitDeviation, 0, len(devs))
	for _, d := range devs {
		if d.gap() > a.cfg.DigitTolerance {
			named = append(named, d)
		}
	}
	if len(named) == 0 {
		worst := devs[0]
		for _, d := range devs[1:] {
			if d.gap() > worst.gap() {
				worst = d
			}
		}
		named = append(named, worst)
	}
	sort.SliceStable(named, func(i, j int) bool { return named[i].gap() > named[j].gap() })

	over := make(map[int]bool)
	var parts, overNames []string
	for _, d := range named {
		parts = append(parts, fmt.Sprintf("digit %d: %.1f%% observed vs %.1f%% expected",
			d.digit, d.observed*100, d.expected*100))
		if d.observed > d.expected {
			over[d.digit] = true
			overNames = append(overNames, fmt.Sprint(d.digit))
		}
	}

	if len(over) == 0 {
		// Only under-represented digits were named; point at the most inflated one.
		top := devs[0]
		for _, d := range devs[1:] {
			if d.observed-d.expected > top.observed-top.expected {
				top = d
			}
		}
		over[top.digit] = true
	}

	severity := model.SeverityMedium
	if mad > 2*a.cfg.MADThreshold {
		severity = model.SeverityHigh
	}

	recommendation := "Review the population of amounts for fabricated or manipulated entries and vouch a sample to source documents."
	if len(overNames) > 0 {
		recommendation = fmt.Sprintf("Vouch a sample of amounts with leading digit %s to source documents and approvals.",
			strings.Join(overNames, ", "))
	}

	return []model.AuditFinding{{
		Category: string(model.CategoryFraud),
		Severity: severity,
		Issue:    "Leading-digit distribution deviates from Benford's Law",
		Details: fmt.Sprintf("%d amounts tested: chi-square %.2f (critical %.2f), MAD %.4f (threshold %.4f); %s",
			n, chi2, c, mad, a.cfg.MADThreshold, strings.Join(parts, "; ")),
		AffectedTransactions: a.affected(entries, digits, over),
		Recommendation:       recommendation,
		Confidence:           clamp01(0.5 + 0.5*(chi2-c)/(chi2+c)),
	}}
}

func (a benfordAnalyzer) affected(entries []model.JournalEntry, digits []int, over map[int]bool) []string {
	seen := make(map[string]bool)
	var ids []string
	for i, e := range entries {
		if len(ids) >= a.cfg.MaxAffected {
			break
		}
		if !over[digits[i]] || seen[e.EntryID] {
			continue
		}
		seen[e.EntryID] = true
		ids = append(ids, e.EntryID)
	}
	return ids
}
