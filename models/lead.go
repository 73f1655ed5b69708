package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Form variants a lead can come from
const (
	LeadSourceInline = "inline"
	LeadSourceModal  = "modal"
)

// Lead follow-up status
const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusBooked    = "booked"
	LeadStatusClosed    = "closed"
)

type Lead struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Contact details. Phone and Email are encrypted when a data key is configured.
	Name    string `gorm:"not null" json:"name"`
	Phone   string `gorm:"not null" json:"phone"`
	Email   string `json:"email,omitempty"`
	Message string `gorm:"type:text" json:"message,omitempty"`

	Source string `gorm:"not null;index" json:"source"`
	Status string `gorm:"not null;default:new;index" json:"status"`

	// Audit fields
	SessionID string `gorm:"type:varchar(64);index" json:"-"`
	IPAddress string `json:"ip_address,omitempty"`
	UserAgent string `gorm:"type:text" json:"user_agent,omitempty"`

	ContactedAt  *time.Time `json:"contacted_at,omitempty"`
	DigestSentAt *time.Time `gorm:"index" json:"-"`
}

// BeforeCreate hook to generate UUID
func (l *Lead) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	if l.Status == "" {
		l.Status = LeadStatusNew
	}
	// Day filters compare created_at as text, so every row shares one offset
	if !l.CreatedAt.IsZero() {
		l.CreatedAt = l.CreatedAt.UTC()
	}
	return nil
}

// TableName specifies the table name for Lead model
func (Lead) TableName() string {
	return "leads"
}

// IsValidLeadStatus checks if the status is one of the follow-up states
func IsValidLeadStatus(status string) bool {
	switch status {
	case LeadStatusNew, LeadStatusContacted, LeadStatusBooked, LeadStatusClosed:
		return true
	}
	return false
}
