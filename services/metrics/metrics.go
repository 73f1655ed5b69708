// Package metrics exposes Prometheus instruments for lead capture and the
// booking modal.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// LeadMetrics exposes counters/histograms for lead capture flows.
type LeadMetrics struct {
	submissions        *prometheus.CounterVec
	validationFailures *prometheus.CounterVec
	modalOpens         *prometheus.CounterVec
	pagesActive        prometheus.Gauge
	submitLatency      *prometheus.HistogramVec
	sideEffectFailures *prometheus.CounterVec
}

func NewLeadMetrics(reg prometheus.Registerer) *LeadMetrics {
	m := &LeadMetrics{
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dental",
			Subsystem: "leads",
			Name:      "submissions_total",
			Help:      "Lead form submissions that reached the backend, by outcome",
		}, []string{"variant", "outcome"}),
		validationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dental",
			Subsystem: "leads",
			Name:      "validation_failures_total",
			Help:      "Lead form submits rejected before reaching the backend",
		}, []string{"variant", "kind"}),
		modalOpens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dental",
			Subsystem: "booking_modal",
			Name:      "opens_total",
			Help:      "Booking modal openings by trigger",
		}, []string{"trigger"}),
		pagesActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "dental",
			Name:      "pages_active",
			Help:      "Landing pages currently registered",
		}),
		submitLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "dental",
			Subsystem: "lead",
			Name:      "submit_seconds",
			Help:      "Time from accepted submit to backend completion",
			Buckets:   prometheus.DefBuckets,
		}, []string{"variant"}),
		sideEffectFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dental",
			Subsystem: "leads",
			Name:      "side_effect_failures_total",
			Help:      "Best-effort lead side effects (email, CRM) that failed",
		}, []string{"target"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissions, m.validationFailures, m.modalOpens, m.pagesActive, m.submitLatency, m.sideEffectFailures)
	return m
}

func (m *LeadMetrics) ObserveSubmission(variant, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(variant, outcome).Inc()
	m.submitLatency.WithLabelValues(variant).Observe(elapsed.Seconds())
}

func (m *LeadMetrics) ObserveValidationFailure(variant, kind string) {
	if m == nil {
		return
	}
	m.validationFailures.WithLabelValues(variant, kind).Inc()
}

func (m *LeadMetrics) ObserveModalOpen(trigger string) {
	if m == nil {
		return
	}
	m.modalOpens.WithLabelValues(trigger).Inc()
}

func (m *LeadMetrics) PageOpened() {
	if m == nil {
		return
	}
	m.pagesActive.Inc()
}

func (m *LeadMetrics) PageClosed() {
	if m == nil {
		return
	}
	m.pagesActive.Dec()
}

func (m *LeadMetrics) ObserveSideEffectFailure(target string) {
	if m == nil {
		return
	}
	m.sideEffectFailures.WithLabelValues(target).Inc()
}
