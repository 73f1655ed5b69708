package db

import (
	"fmt"
	"log"
	"net/url"
	"time"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Options selects the database backend. A non-empty TursoURL takes
// precedence over the local SQLite file.
type Options struct {
	Path        string
	Environment string
	TursoURL    string
	TursoToken  string
}

// Initialize sets up the database connection with WAL mode for concurrency
func Initialize(opts Options) error {
	var err error

	// Determine log level based on environment
	logLevel := logger.Info
	if opts.Environment == "production" {
		logLevel = logger.Warn
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		// Timestamps are compared as text by SQLite, so keep one offset
		NowFunc: func() time.Time { return time.Now().UTC() },
	}

	if opts.TursoURL != "" {
		DB, err = gorm.Open(sqlite.New(sqlite.Config{
			DriverName: "libsql",
			DSN:        tursoDSN(opts.TursoURL, opts.TursoToken),
		}), gormConfig)
		if err != nil {
			return fmt.Errorf("failed to connect to turso database: %w", err)
		}
		log.Println("Database connection established (turso)")
		return nil
	}

	// Enable WAL mode for better concurrency support
	dsn := opts.Path + "?_journal_mode=WAL"

	DB, err = gorm.Open(sqlite.Open(dsn), gormConfig)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connection established (WAL mode enabled)")
	return nil
}

func tursoDSN(rawURL, token string) string {
	if token == "" {
		return rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	q.Set("authToken", token)
	u.RawQuery = q.Encode()
	return u.String()
}

// AutoMigrate runs database migrations for the provided models
func AutoMigrate(models ...interface{}) error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	err := DB.AutoMigrate(models...)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed")
	return nil
}

// Close closes the database connection
func Close() error {
	if DB == nil {
		return nil
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	return sqlDB.Close()
}
