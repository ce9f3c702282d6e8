// Package audit runs the full adversarial loop: plant issues in a clean
// ledger, derive its trial balance, detect anomalies and score the detector.
package audit

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cleared-dev/auditsim/internal/detect"
	"github.com/cleared-dev/auditsim/internal/inject"
	"github.com/cleared-dev/auditsim/internal/journal"
	"github.com/cleared-dev/auditsim/internal/metrics"
	"github.com/cleared-dev/auditsim/internal/model"
	"github.com/cleared-dev/auditsim/internal/trialbalance"
)

// Params are the per-run inputs.
type Params struct {
	IssueCount int
	Basis      model.AccountingBasis
	// Period overrides the ledger's own period when set.
	Period model.Period
}

// Result is everything one run produced.
type Result struct {
	AuditID      string                `json:"audit_id"`
	StartedAt    time.Time             `json:"started_at"`
	Elapsed      time.Duration         `json:"elapsed"`
	Ledger       model.GeneralLedger   `json:"-"`
	Issues       []model.InjectedIssue `json:"issues"`
	TrialBalance model.TrialBalance    `json:"-"`
	Findings     []model.AuditFinding  `json:"findings"`
	Evaluation   Evaluation            `json:"evaluation"`
}

// Options wires a Runner. Nil components are replaced with defaults.
type Options struct {
	Injector   *inject.Injector
	Generator  *trialbalance.Generator
	Detector   *detect.Detector
	Metrics    *metrics.Metrics
	Logger     zerolog.Logger
	Now        func() time.Time
	NewAuditID func() string
}

// Runner executes audit runs. It is safe for concurrent use.
type Runner struct {
	injector  *inject.Injector
	generator *trialbalance.Generator
	detector  *detect.Detector
	metrics   *metrics.Metrics
	log       zerolog.Logger
	now       func() time.Time
	newID     func() string
}

// NewRunner creates a Runner.
func NewRunner(opts Options) *Runner {
	r := &Runner{
		injector:  opts.Injector,
		generator: opts.Generator,
		detector:  opts.Detector,
		metrics:   opts.Metrics,
		log:       opts.Logger,
		now:       opts.Now,
		newID:     opts.NewAuditID,
	}
	if r.injector == nil {
		r.injector = inject.New(inject.Options{Logger: opts.Logger})
	}
	if r.generator == nil {
		r.generator = trialbalance.NewGenerator(trialbalance.DefaultTolerance)
	}
	if r.detector == nil {
		r.detector = detect.New(detect.DefaultConfig(), opts.Logger)
	}
	if r.now == nil {
		r.now = time.Now
	}
	if r.newID == nil {
		r.newID = uuid.NewString
	}
	return r
}

// Run plants p.IssueCount issues into a copy of ledger and audits the result.
// The input ledger is not modified.
func (r *Runner) Run(ledger model.GeneralLedger, chart model.ChartOfAccounts, p Params) Result {
	res := Result{AuditID: r.newID(), StartedAt: r.now()}
	log := r.log.With().Str("audit_id", res.AuditID).Str("company", ledger.CompanyID).Logger()
	total := r.metrics.Track(metrics.StageAudit)

	period := p.Period
	if period.IsZero() {
		period = ledger.Period()
	}
	if period.IsZero() {
		period = journal.InferPeriod(ledger.Entries)
	}
	ledger.PeriodStart, ledger.PeriodEnd = period.Start, period.End

	t := r.metrics.Track(metrics.StageInject)
	res.Ledger, res.Issues = r.injector.Inject(ledger, chart, p.IssueCount, p.Basis)
	_ = t.End(nil)
	r.metrics.ObserveInjected(res.Issues)
	log.Info().
		Int("requested", p.IssueCount).
		Int("injected", len(res.Issues)).
		Int("entries", len(res.Ledger.Entries)).
		Msg("issues injected")

	t = r.metrics.Track(metrics.StageTrialBalance)
	res.TrialBalance = r.generator.Derive(ledger.CompanyID, res.Ledger, chart, period)
	_ = t.End(nil)
	r.metrics.SetBalanced(res.TrialBalance.IsBalanced)
	log.Info().
		Str("period", period.String()).
		Str("total_debits", res.TrialBalance.TotalDebits.StringFixed(2)).
		Str("total_credits", res.TrialBalance.TotalCredits.StringFixed(2)).
		Bool("balanced", res.TrialBalance.IsBalanced).
		Msg("trial balance derived")

	t = r.metrics.Track(metrics.StageDetect)
	res.Findings = r.detector.Detect(res.Ledger)
	_ = t.End(nil)
	r.metrics.ObserveFindings(res.Findings)

	res.Evaluation = Evaluate(res.Issues, res.Findings)
	r.metrics.SetRecall(res.Evaluation.Recall)
	_ = total.End(nil)

	res.Elapsed = r.now().Sub(res.StartedAt)
	log.Info().
		Int("findings", len(res.Findings)).
		Int("detected", len(res.Evaluation.Detected)).
		Int("missed", len(res.Evaluation.Missed)).
		Float64("recall", res.Evaluation.Recall).
		Dur("elapsed", res.Elapsed).
		Msg("audit complete")
	return res
}
