// Package detect scans a general ledger for statistical anomalies: leading-digit
// deviations from Benford's Law, unusually large amounts and posting-volume spikes.
package detect

import (
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/cleared-dev/auditsim/internal/id"
	"github.com/cleared-dev/auditsim/internal/model"
)

type analyzer interface {
	name() string
	analyze(entries []model.JournalEntry) []model.AuditFinding
}

// Finding ID prefixes, one per analyzer.
const (
	PrefixBenford = "BEN"
	PrefixOutlier = "OUT"
	PrefixTiming  = "TIM"
)

// Detector runs every analyzer over a ledger. The zero value is not usable; use New.
type Detector struct {
	analyzers []analyzer
	prefixes  []string
	log       zerolog.Logger
}

// New creates a Detector. Zero thresholds in cfg fall back to DefaultConfig.
func New(cfg Config, logger zerolog.Logger) *Detector {
	cfg = cfg.withDefaults()
	return &Detector{
		analyzers: []analyzer{
			benfordAnalyzer{cfg: cfg.Benford},
			outlierAnalyzer{cfg: cfg.Outliers},
			timingAnalyzer{cfg: cfg.Timing},
		},
		prefixes: []string{PrefixBenford, PrefixOutlier, PrefixTiming},
		log:      logger,
	}
}

// Detect returns Benford findings, then outlier findings, then timing findings.
// It never fails; a ledger too small for an analyzer yields no findings from it.
func (d *Detector) Detect(ledger model.GeneralLedger) []model.AuditFinding {
	results := make([][]model.AuditFinding, len(d.analyzers))
	var g errgroup.Group
	for i, a := range d.analyzers {
		g.Go(func() error {
			start := time.Now()
			results[i] = a.analyze(ledger.Entries)
			d.log.Debug().
				Str("analyzer", a.name()).
				Int("findings", len(results[i])).
				Dur("elapsed", time.Since(start)).
				Msg("analyzer finished")
			return nil
		})
	}
	_ = g.Wait()

	var findings []model.AuditFinding
	for i, group := range results {
		for j, f := range group {
			f.FindingID = id.FormatFindingID(d.prefixes[i], j+1)
			f.Confidence = clamp01(round(f.Confidence, 4))
			findings = append(findings, f)
		}
	}
	d.log.Info().
		Str("company", ledger.CompanyID).
		Int("entries", len(ledger.Entries)).
		Int("findings", len(findings)).
		Msg("detection complete")
	return findings
}

// Detect runs a Detector with the default thresholds and no logging.
func Detect(ledger model.GeneralLedger) []model.AuditFinding {
	return New(DefaultConfig(), zerolog.Nop()).Detect(ledger)
}
