package services

import (
	"context"
	"dental_care_app_go/config"
	"dental_care_app_go/models"
	"dental_care_app_go/services/clock"
	"dental_care_app_go/services/metrics"
	"fmt"
	"html"
	"log"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

// DefaultSubmitDelay is the artificial latency of the simulated backend
const DefaultSubmitDelay = 1500 * time.Millisecond

// DefaultLeadWriteTimeout bounds the lead insert of the stored backend
const DefaultLeadWriteTimeout = 10 * time.Second

// LeadPayload is a lead as typed into one of the forms
type LeadPayload struct {
	Variant string
	Name    string
	Phone   string
	Email   string
	Message string

	// Request metadata, not part of the form
	SessionID string
	IPAddress string
	UserAgent string
}

// LeadSubmitter delivers a validated lead to a backend
type LeadSubmitter interface {
	Submit(ctx context.Context, lead LeadPayload) error
}

// SimulatedSubmitter waits Delay on Clock and then returns Outcome.
type SimulatedSubmitter struct {
	Clock   clock.Clock
	Delay   time.Duration
	Outcome error
}

func NewSimulatedSubmitter(clk clock.Clock, delay time.Duration) *SimulatedSubmitter {
	if delay <= 0 {
		delay = DefaultSubmitDelay
	}
	return &SimulatedSubmitter{Clock: clk, Delay: delay}
}

func (s *SimulatedSubmitter) Submit(ctx context.Context, lead LeadPayload) error {
	clk := s.Clock
	if clk == nil {
		clk = clock.Real()
	}
	delay := s.Delay
	if delay <= 0 {
		delay = DefaultSubmitDelay
	}

	done := make(chan struct{})
	timer := clk.AfterFunc(delay, func() { close(done) })

	select {
	case <-done:
		return s.Outcome
	case <-ctx.Done():
		timer.Stop()
		return ctx.Err()
	}
}

// StoredSubmitter persists leads and notifies the clinic.
// Email and CRM forwarding are best-effort and never fail the submission.
type StoredSubmitter struct {
	DB      *gorm.DB
	Config  *config.Config
	Cipher  *FieldCipher
	CRM     *CRMClient
	Metrics *metrics.LeadMetrics
	Now     func() time.Time
	// WriteTimeout bounds the lead insert so a hung database fails the form
	WriteTimeout time.Duration

	policy *bluemonday.Policy
}

func NewStoredSubmitter(database *gorm.DB, cfg *config.Config, cipher *FieldCipher, crm *CRMClient, m *metrics.LeadMetrics) *StoredSubmitter {
	return &StoredSubmitter{
		DB:      database,
		Config:  cfg,
		Cipher:  cipher,
		CRM:     crm,
		Metrics: m,
		Now:     time.Now,
		policy:  bluemonday.StrictPolicy(),
	}
}

func (s *StoredSubmitter) sanitize(v string) string {
	if s.policy == nil {
		s.policy = bluemonday.StrictPolicy()
	}
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(v)))
}

func (s *StoredSubmitter) Submit(ctx context.Context, lead LeadPayload) error {
	clean := LeadPayload{
		Variant:   lead.Variant,
		Name:      s.sanitize(lead.Name),
		Phone:     NormalizePhone(lead.Phone),
		Email:     s.sanitize(lead.Email),
		Message:   s.sanitize(lead.Message),
		SessionID: lead.SessionID,
		IPAddress: lead.IPAddress,
		UserAgent: lead.UserAgent,
	}

	phone, err := s.Cipher.Encrypt(clean.Phone)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
	}
	email, err := s.Cipher.Encrypt(clean.Email)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
	}

	row := models.Lead{
		Name:      clean.Name,
		Phone:     phone,
		Email:     email,
		Message:   clean.Message,
		Source:    clean.Variant,
		Status:    models.LeadStatusNew,
		CreatedAt: s.now().UTC(),
		SessionID: clean.SessionID,
		IPAddress: clean.IPAddress,
		UserAgent: clean.UserAgent,
	}

	writeCtx, cancel := context.WithTimeout(ctx, s.writeTimeout())
	defer cancel()
	if err := s.DB.WithContext(writeCtx).Create(&row).Error; err != nil {
		return fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
	}

	log.Printf("[INFO] Lead %s stored (source=%s)", row.ID, row.Source)
	s.notify(row, clean)
	return nil
}

func (s *StoredSubmitter) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *StoredSubmitter) writeTimeout() time.Duration {
	if s.WriteTimeout > 0 {
		return s.WriteTimeout
	}
	return DefaultLeadWriteTimeout
}

func (s *StoredSubmitter) notify(row models.Lead, clean LeadPayload) {
	now := s.now

	if s.Config != nil && s.Config.ClinicNotifyEmail != "" {
		email, err := BuildLeadNotificationEmail(s.Config.ClinicNotifyEmail, clean, now())
		if err != nil {
			log.Printf("[ERROR] Failed to build lead notification for %s: %v", row.ID, err)
			s.Metrics.ObserveSideEffectFailure("email")
		} else {
			go func(cfg *config.Config, email *Email) {
				if err := SendEmail(cfg, email); err != nil {
					log.Printf("[ERROR] Failed to send lead notification for %s: %v", row.ID, err)
					s.Metrics.ObserveSideEffectFailure("email")
				}
			}(s.Config, email)
		}
	}

	if s.CRM != nil && s.CRM.URL != "" {
		crmLead := CRMLead{
			ID:        row.ID,
			Source:    clean.Variant,
			Name:      clean.Name,
			Phone:     clean.Phone,
			Email:     clean.Email,
			Message:   clean.Message,
			CreatedAt: row.CreatedAt,
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := s.CRM.SendLead(ctx, crmLead); err != nil {
				log.Printf("[WARNING] CRM forward failed for lead %s: %v", crmLead.ID, err)
				s.Metrics.ObserveSideEffectFailure("crm")
			}
		}()
	}
}
