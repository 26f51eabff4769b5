package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "yoga"

// StudioMetrics records outcomes of admin content writes and the
// consultation workflow.
type StudioMetrics struct {
	duration    *prometheus.HistogramVec
	created     *prometheus.CounterVec
	deleted     *prometheus.CounterVec
	failures    *prometheus.CounterVec
	orphans     *prometheus.CounterVec
	submissions prometheus.Counter
	transitions *prometheus.CounterVec
}

// NewStudioMetrics registers the metrics on the provided registerer. A nil
// registerer yields a recorder that drops everything.
func NewStudioMetrics(reg prometheus.Registerer) *StudioMetrics {
	if reg == nil {
		return &StudioMetrics{}
	}
	m := &StudioMetrics{
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Duration of content and consultation operations in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		created: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "content_created_total",
			Help:      "Content items created, by kind.",
		}, []string{"kind"}),
		deleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "content_deleted_total",
			Help:      "Content items deleted, by kind.",
		}, []string{"kind"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_failures_total",
			Help:      "Failed operations, by operation and error code.",
		}, []string{"operation", "code"}),
		orphans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orphan_file_cleanup_total",
			Help:      "Stored files removed after a failed insert, by result.",
		}, []string{"result"}),
		submissions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "consultation_submissions_total",
			Help:      "Consultation requests accepted into the queue.",
		}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "consultation_transitions_total",
			Help:      "Consultation status changes, by target status.",
		}, []string{"status"}),
	}
	reg.MustRegister(m.duration, m.created, m.deleted, m.failures, m.orphans, m.submissions, m.transitions)
	return m
}

// ObserveDuration records the duration for the named operation.
func (m *StudioMetrics) ObserveDuration(operation string, d time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(operation)).Observe(d.Seconds())
}

func (m *StudioMetrics) IncCreated(kind string) {
	if m == nil || m.created == nil {
		return
	}
	m.created.WithLabelValues(normalizeLabel(kind)).Inc()
}

func (m *StudioMetrics) IncDeleted(kind string) {
	if m == nil || m.deleted == nil {
		return
	}
	m.deleted.WithLabelValues(normalizeLabel(kind)).Inc()
}

// IncFailure counts a failed operation under its error code.
func (m *StudioMetrics) IncFailure(operation, code string) {
	if m == nil || m.failures == nil {
		return
	}
	m.failures.WithLabelValues(normalizeLabel(operation), normalizeLabel(code)).Inc()
}

// IncOrphanCleanup counts a compensating file removal; ok reports whether the
// file was actually removed.
func (m *StudioMetrics) IncOrphanCleanup(ok bool) {
	if m == nil || m.orphans == nil {
		return
	}
	result := "removed"
	if !ok {
		result = "failed"
	}
	m.orphans.WithLabelValues(result).Inc()
}

func (m *StudioMetrics) IncSubmission() {
	if m == nil || m.submissions == nil {
		return
	}
	m.submissions.Inc()
}

func (m *StudioMetrics) IncTransition(status string) {
	if m == nil || m.transitions == nil {
		return
	}
	m.transitions.WithLabelValues(normalizeLabel(status)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
