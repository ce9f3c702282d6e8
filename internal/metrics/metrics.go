// Package metrics exposes Prometheus collectors for audit runs.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/cleared-dev/auditsim/internal/model"
)

// Stage names used as the "stage" label.
const (
	StageInject       = "inject"
	StageTrialBalance = "trial_balance"
	StageDetect       = "detect"
	StageAudit        = "audit"
)

// Metrics holds the audit pipeline collectors.
type Metrics struct {
	runs     *prometheus.CounterVec
	duration *prometheus.HistogramVec
	injected *prometheus.CounterVec
	findings *prometheus.CounterVec
	recall   prometheus.Gauge
	balanced prometheus.Gauge
}

var (
	defaultOnce    sync.Once
	defaultMetrics *Metrics
)

// New registers the audit metrics against registerer. When registerer is nil
// the default Prometheus registerer is used.
func New(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		defaultOnce.Do(func() {
			defaultMetrics = build(prometheus.DefaultRegisterer)
		})
		return defaultMetrics
	}
	return build(registerer)
}

// Tracker times one pipeline stage.
type Tracker struct {
	metrics *Metrics
	stage   string
	start   time.Time
}

// Track starts timing a stage. A nil Metrics yields a no-op tracker.
func (m *Metrics) Track(stage string) *Tracker {
	return &Tracker{metrics: m, stage: stage, start: time.Now()}
}

// End records the stage duration and outcome and returns err untouched.
func (t *Tracker) End(err error) error {
	if t == nil || t.metrics == nil || t.stage == "" {
		return err
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	t.metrics.runs.WithLabelValues(t.stage, status).Inc()
	t.metrics.duration.WithLabelValues(t.stage).Observe(time.Since(t.start).Seconds())
	return err
}

// ObserveInjected counts planted issues by category and severity.
func (m *Metrics) ObserveInjected(issues []model.InjectedIssue) {
	if m == nil {
		return
	}
	for _, iss := range issues {
		m.injected.WithLabelValues(string(iss.Category), string(iss.Severity)).Inc()
	}
}

// ObserveFindings counts detector findings by category and severity.
func (m *Metrics) ObserveFindings(findings []model.AuditFinding) {
	if m == nil {
		return
	}
	for _, f := range findings {
		m.findings.WithLabelValues(f.Category, string(f.Severity)).Inc()
	}
}

// SetRecall records the share of planted issues the last run detected.
func (m *Metrics) SetRecall(recall float64) {
	if m == nil {
		return
	}
	m.recall.Set(recall)
}

// SetBalanced records whether the last derived trial balance balanced.
func (m *Metrics) SetBalanced(ok bool) {
	if m == nil {
		return
	}
	v := 0.0
	if ok {
		v = 1
	}
	m.balanced.Set(v)
}

func build(registerer prometheus.Registerer) *Metrics {
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "auditsim_stage_runs_total",
		Help: "Pipeline stage executions partitioned by stage and status.",
	}, []string{"stage", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "auditsim_stage_duration_seconds",
		Help:    "Duration in seconds of pipeline stages.",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"})
	injected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "auditsim_injected_issues_total",
		Help: "Issues planted into ledgers grouped by category and severity.",
	}, []string{"category", "severity"})
	findings := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "auditsim_findings_total",
		Help: "Anomalies reported by the detector grouped by category and severity.",
	}, []string{"category", "severity"})
	recall := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "auditsim_detection_recall",
		Help: "Share of planted issues matched by at least one finding in the last run.",
	})
	balanced := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "auditsim_trial_balance_balanced",
		Help: "1 when the last derived trial balance balanced, 0 otherwise.",
	})
	registerer.MustRegister(runs, duration, injected, findings, recall, balanced)
	return &Metrics{
		runs:     runs,
		duration: duration,
		injected: injected,
		findings: findings,
		recall:   recall,
		balanced: balanced,
	}
}
