package sessionstore

import (
	"context"
	"sync"
	"time"
)

type memorySession struct {
	values    map[string]string
	expiresAt time.Time
}

// MemoryStore keeps flags in process memory
type MemoryStore struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[string]*memorySession
	now      func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		ttl:      ttl,
		sessions: make(map[string]*memorySession),
		now:      time.Now,
	}
}

// Get reads a flag and slides the session's expiry forward
func (m *MemoryStore) Get(ctx context.Context, sessionID, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	s, ok := m.sessions[sessionID]
	if !ok || now.After(s.expiresAt) {
		return "", false, nil
	}
	s.expiresAt = now.Add(m.ttl)
	v, ok := s.values[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(ctx context.Context, sessionID, key, value string) error {
	if sessionID == "" {
		return ErrNoSession
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok || m.now().After(s.expiresAt) {
		s = &memorySession{values: make(map[string]string)}
		m.sessions[sessionID] = s
	}
	s.values[key] = value
	s.expiresAt = m.now().Add(m.ttl)
	return nil
}

// Cleanup drops expired sessions
func (m *MemoryStore) Cleanup() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	now := m.now()
	for id, s := range m.sessions {
		if now.After(s.expiresAt) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// StartCleanup runs Cleanup every interval until ctx is done
func (m *MemoryStore) StartCleanup(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.Cleanup()
			}
		}
	}()
}
