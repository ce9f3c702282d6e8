package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/auditsim/internal/model"
)

func TestTracker_End(t *testing.T) {
	m := New(prometheus.NewRegistry())

	require.NoError(t, m.Track(StageDetect).End(nil))
	boom := errors.New("boom")
	assert.ErrorIs(t, m.Track(StageDetect).End(boom), boom)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues(StageDetect, "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues(StageDetect, "failure")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		assert.NoError(t, m.Track(StageInject).End(nil))
		m.ObserveInjected([]model.InjectedIssue{{Category: model.CategoryFraud}})
		m.ObserveFindings([]model.AuditFinding{{Category: "timing"}})
		m.SetRecall(0.5)
		m.SetBalanced(true)
	})
}

func TestObserve(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveInjected([]model.InjectedIssue{
		{Category: model.CategoryFraud, Severity: model.SeverityHigh},
		{Category: model.CategoryFraud, Severity: model.SeverityHigh},
		{Category: model.CategoryTiming, Severity: model.SeverityMedium},
	})
	m.ObserveFindings([]model.AuditFinding{{Category: "timing", Severity: model.SeverityMedium}})
	m.SetRecall(0.75)
	m.SetBalanced(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.injected.WithLabelValues("fraud", "high")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.injected.WithLabelValues("timing", "medium")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.findings.WithLabelValues("timing", "medium")))
	assert.Equal(t, 0.75, testutil.ToFloat64(m.recall))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.balanced))
}

func TestNew_DefaultRegistererIsShared(t *testing.T) {
	assert.Same(t, New(nil), New(nil))
}
