package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PoolCommitMetrics records per-store outcomes of shipping pool commits.
type PoolCommitMetrics struct {
	committed prometheus.Counter
	skipped   *prometheus.CounterVec
	duration  prometheus.Histogram
}

// NewPoolCommitMetrics registers the pool commit metrics on the provided registerer.
func NewPoolCommitMetrics(reg prometheus.Registerer) *PoolCommitMetrics {
	if reg == nil {
		return &PoolCommitMetrics{}
	}
	committed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pool_commit_groups_committed",
		Help: "Store groups committed into sales notes.",
	})
	skipped := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pool_commit_groups_skipped",
		Help: "Store groups skipped during a pool commit.",
	}, []string{"reason"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "pool_commit_duration_seconds",
		Help:    "Duration of a full pool commit pass.",
		Buckets: prometheus.DefBuckets,
	})
	reg.MustRegister(committed, skipped, duration)
	return &PoolCommitMetrics{
		committed: committed,
		skipped:   skipped,
		duration:  duration,
	}
}

// IncCommitted increments the committed group counter.
func (m *PoolCommitMetrics) IncCommitted() {
	if m == nil || m.committed == nil {
		return
	}
	m.committed.Inc()
}

// IncSkipped increments the skipped counter for the given reason.
func (m *PoolCommitMetrics) IncSkipped(reason string) {
	if m == nil || m.skipped == nil {
		return
	}
	m.skipped.WithLabelValues(normalizeLabel(reason)).Inc()
}

// ObserveDuration records the duration of one commit pass.
func (m *PoolCommitMetrics) ObserveDuration(duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.Observe(duration.Seconds())
}
