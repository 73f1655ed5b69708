package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("LEAD_BACKEND", "")
	t.Setenv("SUBMIT_DELAY", "")
	t.Setenv("RESET_DELAY", "")
	t.Setenv("AUTO_OPEN_DELAY", "")
	t.Setenv("ADMIN_PASSWORD_HASH", "")

	cfg := Load()

	assert.Equal(t, LeadBackendSimulated, cfg.LeadBackend)
	assert.Equal(t, 1500*time.Millisecond, cfg.SubmitDelay)
	assert.Equal(t, 2000*time.Millisecond, cfg.ResetDelay)
	assert.Equal(t, 6000*time.Millisecond, cfg.AutoOpenDelay)
	assert.NotEmpty(t, cfg.SessionSecret, "development generates a temporary secret")
	assert.False(t, cfg.IsProduction())
	assert.False(t, cfg.AdminEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("LEAD_BACKEND", "Database")
	t.Setenv("SUBMIT_DELAY", "250ms")
	t.Setenv("AUTO_OPEN_DELAY", "-1s")
	t.Setenv("SESSION_STORE", "carrier-pigeon")
	t.Setenv("RECORD_MANUAL_OPEN", "yes")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$abc")

	cfg := Load()

	assert.Equal(t, LeadBackendDatabase, cfg.LeadBackend)
	assert.Equal(t, 250*time.Millisecond, cfg.SubmitDelay)
	assert.Equal(t, 6000*time.Millisecond, cfg.AutoOpenDelay, "non-positive durations fall back")
	assert.Equal(t, SessionStoreMemory, cfg.SessionStore)
	assert.True(t, cfg.RecordManualOpen)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.True(t, cfg.AdminEnabled())
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value    string
		fallback bool
		want     bool
	}{
		{"", true, true},
		{"on", false, true},
		{"0", true, false},
		{"maybe", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("TEST_BOOL", tt.value)
			assert.Equal(t, tt.want, getEnvBool("TEST_BOOL", tt.fallback))
		})
	}
}

func TestValidateSessionSecret_Development(t *testing.T) {
	assert.NoError(t, ValidateSessionSecret("change-me", "development"))
	assert.NoError(t, ValidateSessionSecret("short", "development"))
}

func TestGenerateSecureSecret(t *testing.T) {
	a := GenerateSecureSecret()
	b := GenerateSecureSecret()
	assert.Len(t, a, 44)
	assert.NotEqual(t, a, b)
}
