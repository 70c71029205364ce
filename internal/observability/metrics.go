// Package observability exposes the Prometheus collectors of the propagation core.
package observability

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "campus_jobs"

// Metrics implements the metric hooks of the realtime, audit, counter,
// aggregate and notification packages. A nil *Metrics records nothing.
type Metrics struct {
	sessions         *prometheus.GaugeVec
	sessionsEvicted  *prometheus.CounterVec
	eventsPublished  *prometheus.CounterVec
	deliveries       prometheus.Counter
	drops            *prometheus.CounterVec
	refreshDuration  *prometheus.HistogramVec
	refreshFailures  *prometheus.CounterVec
	auditWritten     *prometheus.CounterVec
	auditSkipped     *prometheus.CounterVec
	counterRecounts  *prometheus.CounterVec
	notificationsNew *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg falls back to prometheus.DefaultRegisterer; tests pass a fresh
// prometheus.NewRegistry() to avoid duplicate registration.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		sessions: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "realtime",
			Name:      "sessions",
			Help:      "Registered realtime sessions by role.",
		}, []string{"role"}),
		sessionsEvicted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "realtime",
			Name:      "sessions_evicted_total",
			Help:      "Sessions deregistered because they could not drain their queue.",
		}, []string{"reason"}),
		eventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "realtime",
			Name:      "events_published_total",
			Help:      "Events published to the bus by topic kind.",
		}, []string{"topic_kind"}),
		deliveries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "realtime",
			Name:      "deliveries_total",
			Help:      "Envelopes enqueued on session queues.",
		}),
		drops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "realtime",
			Name:      "drops_total",
			Help:      "Envelopes discarded by the overflow policy.",
		}, []string{"policy"}),
		refreshDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "aggregates",
			Name:      "refresh_duration_seconds",
			Help:      "Duration of aggregate projection refreshes.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"scope", "status"}),
		refreshFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "aggregates",
			Name:      "refresh_failures_total",
			Help:      "Failed aggregate projection refreshes.",
		}, []string{"scope"}),
		auditWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "audit",
			Name:      "records_written_total",
			Help:      "Audit records appended.",
		}, []string{"table", "operation"}),
		auditSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "audit",
			Name:      "records_skipped_total",
			Help:      "Audit records dropped under the best_effort policy.",
		}, []string{"table"}),
		counterRecounts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "counters",
			Name:      "recounts_total",
			Help:      "Parent counter recounts by child table.",
		}, []string{"table"}),
		notificationsNew: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notifications",
			Name:      "created_total",
			Help:      "Notifications persisted by type.",
		}, []string{"type"}),
	}

	collectors := []prometheus.Collector{
		m.sessions, m.sessionsEvicted, m.eventsPublished, m.deliveries, m.drops,
		m.refreshDuration, m.refreshFailures, m.auditWritten, m.auditSkipped,
		m.counterRecounts, m.notificationsNew,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register metric: %w", err)
		}
	}

	return m, nil
}

// ---------------------------------------------------------------------------
// Realtime
// ---------------------------------------------------------------------------

func (m *Metrics) SessionRegistered(role string) {
	if m == nil {
		return
	}
	m.sessions.WithLabelValues(role).Inc()
}

func (m *Metrics) SessionDeregistered(role string) {
	if m == nil {
		return
	}
	m.sessions.WithLabelValues(role).Dec()
}

func (m *Metrics) SessionEvicted(reason string) {
	if m == nil {
		return
	}
	m.sessionsEvicted.WithLabelValues(reason).Inc()
}

// EventPublished records one publish and the number of sessions it reached.
func (m *Metrics) EventPublished(topicKind string, delivered int) {
	if m == nil {
		return
	}
	m.eventsPublished.WithLabelValues(topicKind).Inc()
	m.deliveries.Add(float64(delivered))
}

func (m *Metrics) EnvelopeDropped(policy string) {
	if m == nil {
		return
	}
	m.drops.WithLabelValues(policy).Inc()
}

// ---------------------------------------------------------------------------
// Write path
// ---------------------------------------------------------------------------

func (m *Metrics) AuditWritten(table, operation string) {
	if m == nil {
		return
	}
	m.auditWritten.WithLabelValues(table, operation).Inc()
}

func (m *Metrics) AuditSkipped(table string) {
	if m == nil {
		return
	}
	m.auditSkipped.WithLabelValues(table).Inc()
}

func (m *Metrics) CounterRecounted(table string) {
	if m == nil {
		return
	}
	m.counterRecounts.WithLabelValues(table).Inc()
}

func (m *Metrics) NotificationCreated(notificationType string) {
	if m == nil {
		return
	}
	m.notificationsNew.WithLabelValues(notificationType).Inc()
}

// ---------------------------------------------------------------------------
// Aggregates
// ---------------------------------------------------------------------------

// RefreshObserved records the duration of one refresh and counts it as a
// failure when err is non-nil.
func (m *Metrics) RefreshObserved(scope string, d time.Duration, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
		m.refreshFailures.WithLabelValues(scope).Inc()
	}
	m.refreshDuration.WithLabelValues(scope, status).Observe(d.Seconds())
}
