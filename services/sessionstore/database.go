package sessionstore

import (
	"context"
	"dental_care_app_go/models"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DatabaseStore keeps flags in the session_flags table
type DatabaseStore struct {
	db  *gorm.DB
	ttl time.Duration
	now func() time.Time
}

func NewDatabaseStore(database *gorm.DB, ttl time.Duration) *DatabaseStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &DatabaseStore{db: database, ttl: ttl, now: time.Now}
}

// Get reads a flag and slides the expiry of the session's live flags forward
func (s *DatabaseStore) Get(ctx context.Context, sessionID, key string) (string, bool, error) {
	now := s.now().UTC()

	var flag models.SessionFlag
	err := s.db.WithContext(ctx).
		Where("session_id = ? AND key = ?", sessionID, key).
		First(&flag).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to load session flag: %w", err)
	}
	if flag.IsExpired(now) {
		return "", false, nil
	}

	err = s.db.WithContext(ctx).Model(&models.SessionFlag{}).
		Where("session_id = ? AND expires_at > ?", sessionID, now).
		Update("expires_at", now.Add(s.ttl)).Error
	if err != nil {
		return "", false, fmt.Errorf("failed to refresh session flag: %w", err)
	}
	return flag.Value, true, nil
}

func (s *DatabaseStore) Set(ctx context.Context, sessionID, key, value string) error {
	if sessionID == "" {
		return ErrNoSession
	}

	flag := models.SessionFlag{
		SessionID: sessionID,
		Key:       key,
		Value:     value,
		ExpiresAt: s.now().UTC().Add(s.ttl),
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at", "updated_at"}),
	}).Create(&flag).Error
	if err != nil {
		return fmt.Errorf("failed to save session flag: %w", err)
	}
	return nil
}

// CleanupExpired removes flags whose session has lapsed
func (s *DatabaseStore) CleanupExpired(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).Where("expires_at < ?", s.now().UTC()).Delete(&models.SessionFlag{})
	return result.RowsAffected, result.Error
}
