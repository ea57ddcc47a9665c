package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "quote_sync"

// SyncMetrics holds Prometheus collectors for the sync loop.
// They are exposed through the /-/metrics endpoint alongside the Go runtime collectors.
// A nil *SyncMetrics is valid and records nothing.
type SyncMetrics struct {
	runs      *prometheus.CounterVec
	conflicts prometheus.Counter
	duration  prometheus.Histogram
	quotes    prometheus.Gauge
}

// NewSyncMetrics registers the sync collectors with reg.
// Pass prometheus.DefaultRegisterer in production and a fresh registry in tests.
func NewSyncMetrics(reg prometheus.Registerer) *SyncMetrics {
	factory := promauto.With(reg)

	return &SyncMetrics{
		runs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "runs_total",
			Help:      "Sync attempts by outcome.",
		}, []string{"result"}),
		conflicts: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "conflicts_total",
			Help:      "Quotes overwritten by the remote version during sync.",
		}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "duration_seconds",
			Help:      "Duration of completed sync attempts.",
			Buckets:   prometheus.DefBuckets,
		}),
		quotes: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "collection_size",
			Help:      "Number of quotes in the collection after the last sync.",
		}),
	}
}

// ObserveSync records one sync attempt.
func (m *SyncMetrics) ObserveSync(result string, conflicts, size int, elapsed time.Duration) {
	if m == nil {
		return
	}

	m.runs.WithLabelValues(result).Inc()
	m.conflicts.Add(float64(conflicts))
	m.duration.Observe(elapsed.Seconds())

	if size >= 0 {
		m.quotes.Set(float64(size))
	}
}

// ObserveSkipped records a sync request dropped because another was in flight.
func (m *SyncMetrics) ObserveSkipped() {
	if m == nil {
		return
	}

	m.runs.WithLabelValues("skipped").Inc()
}
