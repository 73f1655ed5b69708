// Package sessionstore keeps small key/value flags scoped to one visitor
// browser session (one tab).
package sessionstore

import (
	"context"
	"dental_care_app_go/config"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// DefaultTTL bounds how long a session's flags survive without use
const DefaultTTL = 12 * time.Hour

// ErrNoSession is returned when an operation has no session ID to scope to
var ErrNoSession = errors.New("session id is empty")

// Store persists string values per (session, key)
type Store interface {
	Get(ctx context.Context, sessionID, key string) (string, bool, error)
	Set(ctx context.Context, sessionID, key, value string) error
}

// Scope binds a Store to one session
type Scope struct {
	store     Store
	sessionID string
}

func NewScope(store Store, sessionID string) *Scope {
	return &Scope{store: store, sessionID: sessionID}
}

func (s *Scope) SessionID() string {
	return s.sessionID
}

func (s *Scope) Get(ctx context.Context, key string) (string, bool, error) {
	if s.sessionID == "" {
		return "", false, ErrNoSession
	}
	return s.store.Get(ctx, s.sessionID, key)
}

func (s *Scope) Set(ctx context.Context, key, value string) error {
	if s.sessionID == "" {
		return ErrNoSession
	}
	return s.store.Set(ctx, s.sessionID, key, value)
}

// New selects the backend configured by SESSION_STORE
func New(ctx context.Context, cfg *config.Config, database *gorm.DB) (Store, error) {
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	switch cfg.SessionStore {
	case config.SessionStoreRedis:
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to reach redis: %w", err)
		}
		log.Println("[INFO] Session store: redis")
		return NewRedisStore(client, ttl), nil
	case config.SessionStoreDatabase:
		if database == nil {
			return nil, errors.New("database session store requires a database")
		}
		log.Println("[INFO] Session store: database")
		return NewDatabaseStore(database, ttl), nil
	default:
		log.Println("[INFO] Session store: memory")
		return NewMemoryStore(ttl), nil
	}
}
