package jobs

import (
	"context"
	"fmt"
	"log"

	"dental_care_app_go/config"
	"dental_care_app_go/services"
)

// SendLeadDigest emails the clinic every lead not yet included in a digest.
// Returns the number of leads sent.
func SendLeadDigest(ctx context.Context, leads *services.LeadService, cfg *config.Config) (int, error) {
	if cfg.ClinicNotifyEmail == "" {
		log.Println("[JOB] CLINIC_NOTIFY_EMAIL not set, skipping lead digest")
		return 0, nil
	}

	pending, err := leads.PendingDigestLeads(ctx)
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		log.Println("[JOB] No new leads for digest")
		return 0, nil
	}

	email, err := services.BuildLeadDigestEmail(cfg.ClinicNotifyEmail, services.DigestRows(pending))
	if err != nil {
		return 0, fmt.Errorf("failed to build lead digest: %w", err)
	}

	if err := services.SendEmail(cfg, email); err != nil {
		return 0, fmt.Errorf("failed to send lead digest: %w", err)
	}

	ids := make([]string, 0, len(pending))
	for _, l := range pending {
		ids = append(ids, l.ID)
	}
	if err := leads.MarkDigestSent(ctx, ids); err != nil {
		return 0, err
	}

	log.Printf("[JOB] Lead digest sent with %d leads", len(pending))
	return len(pending), nil
}
