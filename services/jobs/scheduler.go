package jobs

import (
	"context"
	"fmt"
	"log"
	"time"
	_ "time/tzdata"

	"dental_care_app_go/config"
	"dental_care_app_go/services"

	"github.com/robfig/cron/v3"
)

// SessionFlagCleaner is implemented by session stores that need periodic pruning
type SessionFlagCleaner interface {
	CleanupExpired(ctx context.Context) (int64, error)
}

// Deps are the services the scheduled jobs operate on. Nil members disable their job.
type Deps struct {
	Config   *config.Config
	Leads    *services.LeadService
	Storage  services.StorageProvider
	Sessions SessionFlagCleaner
}

// Location resolves the clinic timezone, falling back to UTC
func Location(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("[WARNING] Unknown timezone %q, scheduling in UTC", name)
		return time.UTC
	}
	return loc
}

// NewScheduler registers the lead jobs on a cron in the clinic timezone.
// The caller starts and stops it.
func NewScheduler(deps Deps) (*cron.Cron, error) {
	cfg := deps.Config
	if cfg == nil {
		return nil, fmt.Errorf("jobs: config is required")
	}
	loc := Location(cfg.Timezone)
	c := cron.New(cron.WithLocation(loc))

	if deps.Leads != nil && deps.Storage != nil && cfg.LeadExportCron != "" {
		_, err := c.AddFunc(cfg.LeadExportCron, func() {
			log.Println("[CRON] Running daily lead export...")
			if _, err := ExportDailyLeads(context.Background(), deps.Leads, deps.Storage, time.Now().In(loc), cfg.LeadExportRetention); err != nil {
				log.Printf("[CRON] Lead export failed: %v", err)
			}
		})
		if err != nil {
			return nil, fmt.Errorf("invalid LEAD_EXPORT_CRON %q: %w", cfg.LeadExportCron, err)
		}
	}

	if deps.Leads != nil && cfg.LeadDigestCron != "" {
		_, err := c.AddFunc(cfg.LeadDigestCron, func() {
			log.Println("[CRON] Running lead digest...")
			if _, err := SendLeadDigest(context.Background(), deps.Leads, cfg); err != nil {
				log.Printf("[CRON] Lead digest failed: %v", err)
			}
		})
		if err != nil {
			return nil, fmt.Errorf("invalid LEAD_DIGEST_CRON %q: %w", cfg.LeadDigestCron, err)
		}
	}

	if deps.Sessions != nil {
		_, err := c.AddFunc("@hourly", func() {
			if _, err := CleanupSessionFlags(context.Background(), deps.Sessions); err != nil {
				log.Printf("[CRON] Session flag cleanup failed: %v", err)
			}
		})
		if err != nil {
			return nil, err
		}
	}

	return c, nil
}
