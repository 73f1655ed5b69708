package services

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginMonitor_AlertsAtThreshold(t *testing.T) {
	clk := clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	var alerts []LoginAlert
	m := NewLoginMonitor(clk, func(a LoginAlert) { alerts = append(alerts, a) })

	for i := 0; i < 4; i++ {
		assert.False(t, m.TrackFailure("10.0.0.1"))
		clk.Advance(time.Minute)
	}
	assert.True(t, m.TrackFailure("10.0.0.1"))
	require.Len(t, alerts, 1)
	assert.Equal(t, "10.0.0.1", alerts[0].IP)
	assert.Equal(t, 5, alerts[0].Failures)

	// cooldown suppresses repeats
	assert.False(t, m.TrackFailure("10.0.0.1"))
	assert.Len(t, m.RecentAlerts(), 1)

	// other IPs are counted separately
	assert.False(t, m.TrackFailure("10.0.0.2"))
}

func TestLoginMonitor_WindowExpires(t *testing.T) {
	clk := clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	m := NewLoginMonitor(clk, nil)

	for i := 0; i < 4; i++ {
		m.TrackFailure("10.0.0.1")
	}
	clk.Advance(11 * time.Minute)
	assert.False(t, m.TrackFailure("10.0.0.1"))

	clk.Advance(11 * time.Minute)
	m.Prune()
	m.mu.Lock()
	assert.Empty(t, m.failures)
	m.mu.Unlock()
}

func TestLoginMonitor_Nil(t *testing.T) {
	var m *LoginMonitor
	assert.False(t, m.TrackFailure("10.0.0.1"))
}

func TestLoginAlertEmail(t *testing.T) {
	email := LoginAlertEmail("clinic@example.com", LoginAlert{
		Timestamp: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		IP:        "10.0.0.1",
		Failures:  5,
	})
	assert.Equal(t, []string{"clinic@example.com"}, email.To)
	assert.Contains(t, email.TextBody, "10.0.0.1")
	assert.Contains(t, email.TextBody, "Failures in the last 10 minutes: 5")
}
