package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dental_care_app_go/config"
	"dental_care_app_go/db"
	"dental_care_app_go/handlers"
	"dental_care_app_go/middleware"
	"dental_care_app_go/models"
	"dental_care_app_go/services"
	"dental_care_app_go/services/clock"
	"dental_care_app_go/services/jobs"
	"dental_care_app_go/services/metrics"
	"dental_care_app_go/services/pagesession"
	"dental_care_app_go/services/sessionstore"
	"dental_care_app_go/static"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load configuration
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	// Run migrations
	if err := db.AutoMigrate(&models.Lead{}, &models.SessionFlag{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	clinic, err := services.LoadClinicProfile(cfg.ClinicProfilePath)
	if err != nil {
		log.Fatalf("Failed to load clinic profile: %v", err)
	}

	var cipher *services.FieldCipher
	if cfg.DataEncryptionKey != "" {
		cipher, err = services.NewFieldCipher(cfg.DataEncryptionKey)
		if err != nil {
			log.Fatalf("Invalid DATA_ENCRYPTION_KEY: %v", err)
		}
	} else if cfg.IsProduction() && cfg.LeadBackend == config.LeadBackendDatabase {
		log.Println("[WARNING] DATA_ENCRYPTION_KEY is not set; lead contact details are stored in plain text")
	}

	store, err := sessionstore.New(ctx, cfg, db.DB)
	if err != nil {
		log.Fatalf("Failed to initialize session store: %v", err)
	}
	if memStore, ok := store.(*sessionstore.MemoryStore); ok {
		memStore.StartCleanup(ctx, 10*time.Minute)
	}
	if redisStore, ok := store.(*sessionstore.RedisStore); ok {
		defer redisStore.Close()
	}

	leadMetrics := metrics.NewLeadMetrics(prometheus.DefaultRegisterer)

	var submitter services.LeadSubmitter
	switch cfg.LeadBackend {
	case config.LeadBackendDatabase:
		var crm *services.CRMClient
		if cfg.CRMWebhookURL != "" {
			crm = services.NewCRMClient(cfg.CRMWebhookURL, cfg.CRMWebhookSecret)
		}
		submitter = services.NewStoredSubmitter(db.DB, cfg, cipher, crm, leadMetrics)
		log.Println("[INFO] Lead backend: database")
	default:
		submitter = services.NewSimulatedSubmitter(clock.Real(), cfg.SubmitDelay)
		log.Printf("[INFO] Lead backend: simulated (%s delay)", cfg.SubmitDelay)
	}

	registry := pagesession.NewRegistry(pagesession.Config{
		Clock:            clock.Real(),
		Submitter:        submitter,
		Store:            store,
		ResetDelay:       cfg.ResetDelay,
		AutoOpenDelay:    cfg.AutoOpenDelay,
		IdleTTL:          cfg.PageIdleTTL,
		RecordManualOpen: cfg.RecordManualOpen,
		Metrics:          leadMetrics,
	})
	registry.StartSweeper(ctx, time.Minute)

	leads := services.NewLeadService(db.DB, cipher)
	storage := services.NewStorage(cfg)

	// Scheduled lead export, digest and session flag cleanup
	deps := jobs.Deps{Config: cfg, Leads: leads, Storage: storage}
	if dbStore, ok := store.(*sessionstore.DatabaseStore); ok {
		deps.Sessions = dbStore
	}
	scheduler, err := jobs.NewScheduler(deps)
	if err != nil {
		log.Fatalf("Failed to configure scheduled jobs: %v", err)
	}
	scheduler.Start()

	middleware.InitAssetVersions(static.FS)

	app := &handlers.App{
		Config:  cfg,
		Clinic:  clinic,
		Pages:   registry,
		Leads:   leads,
		Storage: storage,
		Metrics: leadMetrics,
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(echomiddleware.RequestLogger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
	}))
	e.Use(middleware.CSPNonce())
	e.Use(middleware.VisitorSession(cfg.SessionSecret, cfg.IsProduction()))
	e.Use(middleware.CSRF(cfg.IsProduction()))

	// Make the app and config available to handlers
	e.Use(handlers.WithApp(app))

	// Static files
	assets := e.Group("/static", middleware.StaticCacheControl())
	assets.StaticFS("/", static.FS)

	// Public routes
	e.GET("/", handlers.LandingHandler)
	e.GET("/health", handlers.HealthHandler)
	e.GET("/robots.txt", handlers.GetRobotsHandler)
	e.GET("/sitemap.xml", handlers.GetSitemapHandler)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/sections/testimonials", handlers.TestimonialsHandler)

	// Page interaction routes (HTMX and the page event stream)
	page := e.Group("/pages/:page")
	{
		page.GET("/events", handlers.PageEventsHandler)
		page.POST("/modal/open", handlers.OpenModalHandler)
		page.POST("/modal/close", handlers.CloseModalHandler)
		page.POST("/forms/:variant", handlers.SubmitLeadFormHandler,
			middleware.LeadFormRateLimiter.Middleware(),
			middleware.LeadRequestMeta(),
		)
	}

	// Lead inbox
	if cfg.AdminEnabled() {
		admin := e.Group("/admin")
		admin.Use(middleware.AdminRateLimiter.Middleware())
		monitor := services.NewLoginMonitor(clock.Real(), func(alert services.LoginAlert) {
			if cfg.ClinicNotifyEmail != "" {
				services.SendEmailAsync(cfg, services.LoginAlertEmail(cfg.ClinicNotifyEmail, alert))
			}
		})
		go func() {
			ticker := time.NewTicker(time.Hour)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					monitor.Prune()
				}
			}
		}()
		admin.Use(middleware.AdminAuth(cfg.AdminUser, cfg.AdminPasswordHash, monitor))
		{
			admin.GET("/leads", handlers.GetLeadsHandler)
			admin.GET("/leads/export.xlsx", handlers.ExportLeadsHandler)
			admin.GET("/leads/exports/:day", handlers.DownloadLeadExportHandler)
			admin.PUT("/leads/:id/status", handlers.UpdateLeadStatusHandler)
		}
		log.Println("[INFO] Lead inbox enabled at /admin/leads")
	}

	// Start server
	go func() {
		log.Printf("Server starting on port %s", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("[INFO] Shutting down...")

	// Closing pages ends their event streams before the server drains
	registry.Shutdown()
	<-scheduler.Stop().Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] Server shutdown: %v", err)
	}
}
