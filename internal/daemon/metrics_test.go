package daemon

import (
	"syncwatch/internal/model"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsObserveSync(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	m.ObserveSync(model.SyncOutcome{Status: model.StatusSourceMissing})
	m.ObserveSync(model.SyncOutcome{Status: model.StatusFailed})
	m.ObserveSync(model.SyncOutcome{
		Status:    model.StatusSucceeded,
		StartedAt: start,
		Duration:  10 * time.Second,
		Dedupe:    &model.DedupeOutcome{Success: false},
	})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.syncs.WithLabelValues("SOURCE_MISSING")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.syncs.WithLabelValues("FAILED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.syncs.WithLabelValues("SUCCEEDED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dedupes.WithLabelValues("failure")))
	assert.Equal(t, float64(start.Add(10*time.Second).Unix()), testutil.ToFloat64(m.lastSuccess))
}

func TestMetricsObserveEvent(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.ObserveEvent(dispositionIgnored)
	m.ObserveEvent(dispositionIgnored)
	m.ObserveEvent(dispositionSuppressed)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.events.WithLabelValues(dispositionIgnored)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.events.WithLabelValues(dispositionSuppressed)))
}
