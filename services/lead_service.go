package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"dental_care_app_go/models"

	"gorm.io/gorm"
)

var (
	ErrLeadNotFound      = errors.New("lead not found")
	ErrInvalidLeadStatus = errors.New("invalid lead status")
)

// LeadFilters narrows ListLeads. Zero values mean no filter.
type LeadFilters struct {
	Status string
	Source string
	Since  time.Time
	Until  time.Time
	Limit  int
}

// LeadView is a stored lead with contact fields decrypted
type LeadView struct {
	ID          string     `json:"id"`
	CreatedAt   time.Time  `json:"created_at"`
	Name        string     `json:"name"`
	Phone       string     `json:"phone"`
	Email       string     `json:"email,omitempty"`
	Message     string     `json:"message,omitempty"`
	Source      string     `json:"source"`
	Status      string     `json:"status"`
	ContactedAt *time.Time `json:"contacted_at,omitempty"`
}

// LeadService reads and updates the lead inbox
type LeadService struct {
	DB     *gorm.DB
	Cipher *FieldCipher
	Now    func() time.Time
}

func NewLeadService(db *gorm.DB, cipher *FieldCipher) *LeadService {
	return &LeadService{DB: db, Cipher: cipher, Now: func() time.Time { return time.Now().UTC() }}
}

func (s *LeadService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// ListLeads returns leads newest first
func (s *LeadService) ListLeads(ctx context.Context, filters LeadFilters) ([]LeadView, error) {
	query := s.DB.WithContext(ctx).Model(&models.Lead{})

	if filters.Status != "" {
		if !models.IsValidLeadStatus(filters.Status) {
			return nil, ErrInvalidLeadStatus
		}
		query = query.Where("status = ?", filters.Status)
	}
	if filters.Source != "" {
		query = query.Where("source = ?", filters.Source)
	}
	if !filters.Since.IsZero() {
		// created_at is stored in UTC and compared as text
		query = query.Where("created_at >= ?", filters.Since.UTC())
	}
	if !filters.Until.IsZero() {
		query = query.Where("created_at < ?", filters.Until.UTC())
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}

	var leads []models.Lead
	if err := query.Order("created_at DESC").Find(&leads).Error; err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}

	return s.decryptAll(leads), nil
}

// UpdateLeadStatus moves a lead through follow-up. The first move away from
// "new" stamps ContactedAt.
func (s *LeadService) UpdateLeadStatus(ctx context.Context, id, status string) (*LeadView, error) {
	if !models.IsValidLeadStatus(status) {
		return nil, ErrInvalidLeadStatus
	}

	var lead models.Lead
	if err := s.DB.WithContext(ctx).First(&lead, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("failed to fetch lead: %w", err)
	}

	updates := map[string]interface{}{"status": status}
	if status != models.LeadStatusNew && lead.ContactedAt == nil {
		now := s.now()
		updates["contacted_at"] = now
		lead.ContactedAt = &now
	}

	if err := s.DB.WithContext(ctx).Model(&lead).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update lead status: %w", err)
	}
	lead.Status = status

	view := s.decrypt(lead)
	return &view, nil
}

// PendingDigestLeads returns leads not yet included in a digest, oldest first
func (s *LeadService) PendingDigestLeads(ctx context.Context) ([]LeadView, error) {
	var leads []models.Lead
	err := s.DB.WithContext(ctx).
		Where("digest_sent_at IS NULL").
		Order("created_at ASC").
		Find(&leads).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pending digest leads: %w", err)
	}
	return s.decryptAll(leads), nil
}

// MarkDigestSent stamps the given leads so the next digest skips them
func (s *LeadService) MarkDigestSent(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	err := s.DB.WithContext(ctx).
		Model(&models.Lead{}).
		Where("id IN ?", ids).
		Update("digest_sent_at", s.now()).Error
	if err != nil {
		return fmt.Errorf("failed to mark digest sent: %w", err)
	}
	return nil
}

// DigestRows formats leads for the digest email
func DigestRows(leads []LeadView) []LeadDigestRow {
	rows := make([]LeadDigestRow, 0, len(leads))
	for _, l := range leads {
		rows = append(rows, LeadDigestRow{
			ReceivedAt: l.CreatedAt.Format("02 Jan 15:04"),
			Name:       l.Name,
			Phone:      l.Phone,
			Source:     l.Source,
			Status:     l.Status,
		})
	}
	return rows
}

func (s *LeadService) decryptAll(leads []models.Lead) []LeadView {
	views := make([]LeadView, 0, len(leads))
	for _, l := range leads {
		views = append(views, s.decrypt(l))
	}
	return views
}

// Undecryptable fields are masked rather than failing the whole listing.
func (s *LeadService) decrypt(l models.Lead) LeadView {
	phone, err := s.Cipher.Decrypt(l.Phone)
	if err != nil {
		log.Printf("[WARNING] Failed to decrypt phone for lead %s: %v", l.ID, err)
		phone = "[encrypted]"
	}
	email, err := s.Cipher.Decrypt(l.Email)
	if err != nil {
		log.Printf("[WARNING] Failed to decrypt email for lead %s: %v", l.ID, err)
		email = "[encrypted]"
	}

	return LeadView{
		ID:          l.ID,
		CreatedAt:   l.CreatedAt,
		Name:        l.Name,
		Phone:       phone,
		Email:       email,
		Message:     l.Message,
		Source:      l.Source,
		Status:      l.Status,
		ContactedAt: l.ContactedAt,
	}
}
