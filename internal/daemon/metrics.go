package daemon

import (
	"syncwatch/internal/model"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "syncwatch"

type Metrics struct {
	events      *prometheus.CounterVec
	syncs       *prometheus.CounterVec
	dedupes     *prometheus.CounterVec
	duration    prometheus.Histogram
	lastSuccess prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		events: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "events_total",
			Help:      "Filesystem events received, by what the pipeline did with them.",
		}, []string{"disposition"}),
		syncs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "syncs_total",
			Help:      "Sync invocations, by final status.",
		}, []string{"status"}),
		dedupes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "dedupes_total",
			Help:      "Dedupe invocations after a successful sync, by result.",
		}, []string{"result"}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "sync_duration_seconds",
			Help:      "Wall time of sync plus dedupe.",
			Buckets:   prometheus.ExponentialBuckets(0.5, 2, 12),
		}),
		lastSuccess: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful sync.",
		}),
	}
}

func (m *Metrics) ObserveEvent(disposition string) {
	m.events.WithLabelValues(disposition).Inc()
}

func (m *Metrics) ObserveSync(outcome model.SyncOutcome) {
	m.syncs.WithLabelValues(string(outcome.Status)).Inc()
	m.duration.Observe(outcome.Duration.Seconds())

	if !outcome.Success() {
		return
	}

	m.lastSuccess.Set(float64(outcome.StartedAt.Add(outcome.Duration).Unix()))
	if outcome.Dedupe != nil {
		result := "success"
		if !outcome.Dedupe.Success {
			result = "failure"
		}
		m.dedupes.WithLabelValues(result).Inc()
	}
}
