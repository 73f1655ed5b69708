package jobs

import (
	"context"
	"log"
	"time"

	"dental_care_app_go/services"
)

// ExportDailyLeads stores the workbook of leads received on the day of now,
// then drops the export that fell out of the retention window.
func ExportDailyLeads(ctx context.Context, leads *services.LeadService, storage services.StorageProvider, now time.Time, retention time.Duration) (*services.StorageResult, error) {
	result, err := services.ExportLeads(ctx, leads, storage, now)
	if err != nil {
		return nil, err
	}

	if retention > 0 {
		expired, _ := services.DayBounds(now.Add(-retention))
		key := services.GenerateLeadExportKey(expired)
		if err := storage.Delete(ctx, key); err != nil {
			log.Printf("[JOB] Failed to delete expired lead export %s: %v", key, err)
		}
	}
	return result, nil
}

// CleanupSessionFlags prunes expired visitor session flags
func CleanupSessionFlags(ctx context.Context, store SessionFlagCleaner) (int64, error) {
	removed, err := store.CleanupExpired(ctx)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		log.Printf("[JOB] Removed %d expired session flags", removed)
	}
	return removed, nil
}
