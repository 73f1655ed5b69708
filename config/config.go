package config

import (
	"crypto/rand"
	"encoding/base64"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// MinSessionSecretLength is the minimum required length for session secret in production
	MinSessionSecretLength = 32
)

// Session store backends
const (
	SessionStoreMemory   = "memory"
	SessionStoreDatabase = "database"
	SessionStoreRedis    = "redis"
)

// Lead submission backends
const (
	LeadBackendSimulated = "simulated"
	LeadBackendDatabase  = "database"
)

type Config struct {
	ServerPort  string
	DBPath      string
	Environment string
	UploadDir   string
	// Email (Resend)
	ResendAPIKey      string
	EmailFrom         string
	EmailFromName     string
	EmailTestMode     bool // When true, emails are logged to console instead of sent
	ClinicNotifyEmail string
	// Other
	AllowedOrigins   []string
	AppURL           string
	SessionSecret    string
	TursoDatabaseURL string
	TursoAuthToken   string
	// Visitor sessions
	SessionStore string
	RedisURL     string
	SessionTTL   time.Duration
	// Lead capture timings
	LeadBackend      string
	SubmitDelay      time.Duration
	ResetDelay       time.Duration
	AutoOpenDelay    time.Duration
	PageIdleTTL      time.Duration
	RecordManualOpen bool
	// CRM forwarding
	CRMWebhookURL    string
	CRMWebhookSecret string
	// Cloudflare Turnstile
	TurnstileSiteKey   string
	TurnstileSecretKey string
	// Lead inbox
	AdminUser         string
	AdminPasswordHash string
	// Base64 AES-256 key for lead contact fields at rest
	DataEncryptionKey string
	// Cloudflare R2 Storage
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicURL       string
	// Jobs
	LeadExportCron      string
	LeadExportRetention time.Duration
	LeadDigestCron      string
	Timezone            string
	// Content
	ClinicProfilePath string
}

func Load() *Config {
	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	environment := getEnv("ENVIRONMENT", "development")
	sessionSecret := getEnv("SESSION_SECRET", "")

	// Validate session secret - this will fatal in production if invalid
	ValidateSessionSecret(sessionSecret, environment)

	// In development, generate a secure secret if none provided
	if sessionSecret == "" && environment != "production" {
		sessionSecret = GenerateSecureSecret()
		log.Println("[INFO] Generated temporary session secret for development. Set SESSION_SECRET env var for persistence.")
	}

	return &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		DBPath:             getEnv("DB_PATH", "db/app.db"),
		Environment:        environment,
		UploadDir:          getEnv("UPLOAD_DIR", "static/uploads"),
		ResendAPIKey:       getEnv("RESEND_API_KEY", ""),
		EmailFrom:          getEnv("EMAIL_FROM", "noreply@delhidentalcare.com"),
		EmailFromName:      getEnv("EMAIL_FROM_NAME", "Delhi Dental Care"),
		EmailTestMode:      getEnvBool("EMAIL_TEST_MODE", true), // Default true for safety
		ClinicNotifyEmail:  getEnv("CLINIC_NOTIFY_EMAIL", "appointments@delhidentalcare.com"),
		AllowedOrigins:     strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		AppURL:             getEnv("APP_URL", "http://localhost:8080"),
		SessionSecret:      sessionSecret,
		TursoDatabaseURL:   getEnv("TURSO_DATABASE_URL", ""),
		TursoAuthToken:     getEnv("TURSO_AUTH_TOKEN", ""),
		SessionStore:       getEnvChoice("SESSION_STORE", SessionStoreMemory, SessionStoreMemory, SessionStoreDatabase, SessionStoreRedis),
		RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379/0"),
		SessionTTL:         getEnvDuration("SESSION_TTL", 12*time.Hour),
		LeadBackend:        getEnvChoice("LEAD_BACKEND", LeadBackendSimulated, LeadBackendSimulated, LeadBackendDatabase),
		SubmitDelay:        getEnvDuration("SUBMIT_DELAY", 1500*time.Millisecond),
		ResetDelay:         getEnvDuration("RESET_DELAY", 2000*time.Millisecond),
		AutoOpenDelay:      getEnvDuration("AUTO_OPEN_DELAY", 6000*time.Millisecond),
		PageIdleTTL:        getEnvDuration("PAGE_IDLE_TTL", 30*time.Minute),
		RecordManualOpen:   getEnvBool("RECORD_MANUAL_OPEN", false),
		CRMWebhookURL:      getEnv("CRM_WEBHOOK_URL", ""),
		CRMWebhookSecret:   getEnv("CRM_WEBHOOK_SECRET", ""),
		TurnstileSiteKey:   getEnv("TURNSTILE_SITE_KEY", ""),
		TurnstileSecretKey: getEnv("TURNSTILE_SECRET_KEY", ""),
		AdminUser:          getEnv("ADMIN_USER", "admin"),
		AdminPasswordHash:  getEnv("ADMIN_PASSWORD_HASH", ""),
		DataEncryptionKey:  getEnv("DATA_ENCRYPTION_KEY", ""),
		R2AccountID:        getEnv("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:      getEnv("R2_ACCESS_KEY_ID", ""),
		R2SecretAccessKey:  getEnv("R2_SECRET_ACCESS_KEY", ""),
		R2BucketName:       getEnv("R2_BUCKET_NAME", ""),
		R2PublicURL:        getEnv("R2_PUBLIC_URL", ""),
		LeadExportCron:     getEnv("LEAD_EXPORT_CRON", "30 23 * * *"),
		LeadDigestCron:     getEnv("LEAD_DIGEST_CRON", "0 9 * * *"),
		Timezone:           getEnv("TIMEZONE", "Asia/Kolkata"),
		ClinicProfilePath:  getEnv("CLINIC_PROFILE_PATH", ""),

		LeadExportRetention: getEnvDuration("LEAD_EXPORT_RETENTION", 90*24*time.Hour),
	}
}

// IsProduction reports whether the app runs with production settings
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AdminEnabled reports whether the lead inbox routes should be mounted
func (c *Config) AdminEnabled() bool {
	return c.AdminPasswordHash != ""
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Printf("Using default value for %s: %s", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	// Accept common boolean representations
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultValue
	}
}

// getEnvDuration parses Go duration strings ("1500ms", "6s"). Invalid or
// non-positive values fall back to the default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		log.Printf("[WARNING] Invalid duration for %s (%q), using default %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}

func getEnvChoice(key, defaultValue string, allowed ...string) string {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return defaultValue
	}
	for _, a := range allowed {
		if value == a {
			return value
		}
	}
	log.Printf("[WARNING] Unsupported value for %s (%q), using default %s", key, value, defaultValue)
	return defaultValue
}

// ValidateSessionSecret validates the session secret meets security requirements
// In production, it must be at least 32 bytes and not a known insecure default
func ValidateSessionSecret(secret string, environment string) error {
	// Known insecure defaults that must be rejected
	insecureDefaults := []string{
		"dev-secret-change-in-production",
		"change-me",
		"secret",
		"development",
		"test",
		"",
	}

	for _, insecure := range insecureDefaults {
		if strings.EqualFold(secret, insecure) {
			if environment == "production" {
				log.Fatal("[CRITICAL] SESSION_SECRET is set to an insecure default value. Generate a secure random secret with: openssl rand -base64 32")
			}
			log.Printf("[WARNING] SESSION_SECRET is set to an insecure default value. This is acceptable only in development.")
			return nil
		}
	}

	if environment == "production" {
		if len(secret) < MinSessionSecretLength {
			log.Fatalf("[CRITICAL] SESSION_SECRET must be at least %d characters in production (current: %d). Generate with: openssl rand -base64 32", MinSessionSecretLength, len(secret))
		}
	}

	return nil
}

// GenerateSecureSecret generates a cryptographically secure random secret
// This is used only for development when no secret is provided
func GenerateSecureSecret() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		log.Printf("[WARNING] Failed to generate secure secret: %v", err)
		return ""
	}
	return base64.StdEncoding.EncodeToString(bytes)
}
