package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLeadBeforeCreate(t *testing.T) {
	lead := &Lead{Name: "Priya", Phone: "9876543210", Source: LeadSourceInline}
	assert.NoError(t, lead.BeforeCreate(nil))
	assert.NotEmpty(t, lead.ID)
	assert.Equal(t, LeadStatusNew, lead.Status)

	existing := &Lead{ID: "fixed", Status: LeadStatusBooked}
	assert.NoError(t, existing.BeforeCreate(nil))
	assert.Equal(t, "fixed", existing.ID)
	assert.Equal(t, LeadStatusBooked, existing.Status)
}

func TestIsValidLeadStatus(t *testing.T) {
	for _, s := range []string{"new", "contacted", "booked", "closed"} {
		assert.True(t, IsValidLeadStatus(s), s)
	}
	assert.False(t, IsValidLeadStatus("pending"))
	assert.False(t, IsValidLeadStatus(""))
}

func TestSessionFlagIsExpired(t *testing.T) {
	now := time.Now()
	assert.True(t, (&SessionFlag{ExpiresAt: now.Add(-time.Minute)}).IsExpired(now))
	assert.True(t, (&SessionFlag{ExpiresAt: now}).IsExpired(now))
	assert.False(t, (&SessionFlag{ExpiresAt: now.Add(time.Hour)}).IsExpired(now))
}
