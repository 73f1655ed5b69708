package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gatherValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	var total float64
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			total += sampleValue(mf.GetType(), m)
		}
	}
	return total
}

// sampleValue reads counters and gauges by value and histograms by count
func sampleValue(kind dto.MetricType, m *dto.Metric) float64 {
	switch kind {
	case dto.MetricType_COUNTER:
		return m.GetCounter().GetValue()
	case dto.MetricType_GAUGE:
		return m.GetGauge().GetValue()
	case dto.MetricType_HISTOGRAM:
		return float64(m.GetHistogram().GetSampleCount())
	}
	return 0
}

func TestLeadMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewLeadMetrics(reg)

	m.ObserveSubmission("inline", "success", 1500*time.Millisecond)
	m.ObserveSubmission("modal", "failed", time.Second)
	m.ObserveValidationFailure("inline", "invalid_phone_format")
	m.ObserveModalOpen("auto_open")
	m.ObserveModalOpen("hero")
	m.PageOpened()
	m.PageOpened()
	m.PageClosed()
	m.ObserveSideEffectFailure("crm")

	assert.Equal(t, 2.0, gatherValue(t, reg, "dental_leads_submissions_total"))
	assert.Equal(t, 1.0, gatherValue(t, reg, "dental_leads_validation_failures_total"))
	assert.Equal(t, 2.0, gatherValue(t, reg, "dental_booking_modal_opens_total"))
	assert.Equal(t, 1.0, gatherValue(t, reg, "dental_pages_active"))
	assert.Equal(t, 2.0, gatherValue(t, reg, "dental_lead_submit_seconds"))
	assert.Equal(t, 1.0, gatherValue(t, reg, "dental_leads_side_effect_failures_total"))
}

func TestLeadMetricsNilSafe(t *testing.T) {
	var m *LeadMetrics
	m.ObserveSubmission("inline", "success", time.Second)
	m.ObserveValidationFailure("inline", "missing_required_field")
	m.ObserveModalOpen("header")
	m.PageOpened()
	m.PageClosed()
	m.ObserveSideEffectFailure("email")
}
