package models

import (
	"time"
)

// SessionFlag is one key/value pair scoped to a visitor's browser session.
type SessionFlag struct {
	SessionID string    `gorm:"primaryKey;type:varchar(64)" json:"session_id"`
	Key       string    `gorm:"primaryKey;type:varchar(64)" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for SessionFlag model
func (SessionFlag) TableName() string {
	return "session_flags"
}

// IsExpired checks if the flag has outlived its session at now
func (f *SessionFlag) IsExpired(now time.Time) bool {
	return !now.Before(f.ExpiresAt)
}
