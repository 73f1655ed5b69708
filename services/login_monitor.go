package services

import (
	"log"
	"strconv"
	"sync"
	"time"

	"dental_care_app_go/services/clock"
)

const (
	loginFailureWindow    = 10 * time.Minute
	loginFailureThreshold = 5
	loginAlertCooldown    = time.Hour
	maxLoginAlerts        = 100
)

// LoginAlert records an IP that crossed the failed login threshold
type LoginAlert struct {
	Timestamp time.Time
	IP        string
	Failures  int
}

// LoginMonitor counts failed lead inbox logins per IP and raises at most one
// alert per IP per hour once an IP fails 5 times within 10 minutes.
type LoginMonitor struct {
	mu       sync.Mutex
	clock    clock.Clock
	failures map[string][]time.Time
	alerted  map[string]time.Time
	alerts   []LoginAlert
	onAlert  func(LoginAlert)
}

// NewLoginMonitor creates a monitor. onAlert may be nil; it runs outside the lock.
func NewLoginMonitor(clk clock.Clock, onAlert func(LoginAlert)) *LoginMonitor {
	if clk == nil {
		clk = clock.Real()
	}
	return &LoginMonitor{
		clock:    clk,
		failures: make(map[string][]time.Time),
		alerted:  make(map[string]time.Time),
		onAlert:  onAlert,
	}
}

// TrackFailure records a failed login and reports whether it raised an alert
func (m *LoginMonitor) TrackFailure(ip string) bool {
	if m == nil {
		return false
	}

	m.mu.Lock()
	now := m.clock.Now()
	windowStart := now.Add(-loginFailureWindow)
	recent := m.failures[ip][:0]
	for _, t := range m.failures[ip] {
		if t.After(windowStart) {
			recent = append(recent, t)
		}
	}
	recent = append(recent, now)
	m.failures[ip] = recent

	if len(recent) < loginFailureThreshold {
		m.mu.Unlock()
		return false
	}
	if last, ok := m.alerted[ip]; ok && now.Sub(last) < loginAlertCooldown {
		m.mu.Unlock()
		return false
	}

	alert := LoginAlert{Timestamp: now, IP: ip, Failures: len(recent)}
	m.alerted[ip] = now
	m.alerts = append([]LoginAlert{alert}, m.alerts...)
	if len(m.alerts) > maxLoginAlerts {
		m.alerts = m.alerts[:maxLoginAlerts]
	}
	onAlert := m.onAlert
	m.mu.Unlock()

	log.Printf("[SECURITY ALERT] %d failed lead inbox logins from IP: %s", alert.Failures, ip)
	if onAlert != nil {
		onAlert(alert)
	}
	return true
}

// RecentAlerts returns a copy of the alert history, newest first
func (m *LoginMonitor) RecentAlerts() []LoginAlert {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]LoginAlert, len(m.alerts))
	copy(out, m.alerts)
	return out
}

// Prune drops failure and alert bookkeeping that can no longer matter
func (m *LoginMonitor) Prune() {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.clock.Now()
	for ip, attempts := range m.failures {
		if len(attempts) == 0 || now.Sub(attempts[len(attempts)-1]) > loginFailureWindow {
			delete(m.failures, ip)
		}
	}
	for ip, last := range m.alerted {
		if now.Sub(last) > loginAlertCooldown {
			delete(m.alerted, ip)
		}
	}
}

// LoginAlertEmail notifies the clinic inbox owner about a login alert
func LoginAlertEmail(to string, alert LoginAlert) *Email {
	body := "The lead inbox rejected repeated logins.\n\n" +
		"IP Address: " + alert.IP + "\n" +
		"Failures in the last 10 minutes: " + strconv.Itoa(alert.Failures) + "\n" +
		"Time: " + alert.Timestamp.Format(time.RFC1123) + "\n"
	return &Email{
		To:       []string{to},
		Subject:  "Security alert: failed lead inbox logins",
		TextBody: body,
	}
}
