package main

import (
	"context"
	"flag"
	"log"
	"time"

	"dental_care_app_go/config"
	"dental_care_app_go/db"
	"dental_care_app_go/models"
	"dental_care_app_go/services"
	"dental_care_app_go/services/jobs"
)

// Exports one day of leads to the configured storage, outside the scheduler.
func main() {
	day := flag.String("date", "", "day to export (YYYY-MM-DD), defaults to today")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	loc := jobs.Location(cfg.Timezone)

	now := time.Now().In(loc)
	if *day != "" {
		t, err := services.ParseDay(*day, loc)
		if err != nil {
			log.Fatalf("Invalid -date: %v", err)
		}
		now = t.Add(12 * time.Hour)
	}

	// Initialize database
	if err := db.Initialize(db.Options{
		Path:        cfg.DBPath,
		Environment: cfg.Environment,
		TursoURL:    cfg.TursoDatabaseURL,
		TursoToken:  cfg.TursoAuthToken,
	}); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(&models.Lead{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	var cipher *services.FieldCipher
	if cfg.DataEncryptionKey != "" {
		c, err := services.NewFieldCipher(cfg.DataEncryptionKey)
		if err != nil {
			log.Fatalf("Invalid DATA_ENCRYPTION_KEY: %v", err)
		}
		cipher = c
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result, err := jobs.ExportDailyLeads(ctx, services.NewLeadService(db.DB, cipher), services.NewStorage(cfg), now, 0)
	if err != nil {
		log.Fatalf("Lead export failed: %v", err)
	}
	log.Printf("Exported leads to %s (%d bytes)", result.Key, result.FileSize)
}
