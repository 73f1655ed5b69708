// Package pagesession owns the server-side state of every open landing
// page: its two lead forms, its booking modal controller, and the event
// stream that carries timer-driven changes back to the browser tab.
package pagesession

import (
	"context"
	"dental_care_app_go/services"
	"dental_care_app_go/services/bookingmodal"
	"dental_care_app_go/services/clock"
	"dental_care_app_go/services/leadform"
	"dental_care_app_go/services/metrics"
	"dental_care_app_go/services/sessionstore"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultIdleTTL is how long an unattached page is kept
	DefaultIdleTTL = 30 * time.Minute
	// DefaultEventBuffer is the per-page event queue size
	DefaultEventBuffer = 32
)

var (
	ErrPageNotFound    = errors.New("page not found")
	ErrAlreadyAttached = errors.New("page already has an event stream")
	ErrModalClosed     = errors.New("booking modal is not open")
	ErrUnknownVariant  = errors.New("unknown form variant")
)

type Config struct {
	Clock            clock.Clock
	Submitter        services.LeadSubmitter
	Store            sessionstore.Store
	ResetDelay       time.Duration
	AutoOpenDelay    time.Duration
	IdleTTL          time.Duration
	RecordManualOpen bool
	EventBuffer      int
	Metrics          *metrics.LeadMetrics
}

type Registry struct {
	mu    sync.Mutex
	cfg   Config
	pages map[string]*Page
}

func NewRegistry(cfg Config) *Registry {
	if cfg.Clock == nil {
		cfg.Clock = clock.Real()
	}
	if cfg.Submitter == nil {
		cfg.Submitter = services.NewSimulatedSubmitter(cfg.Clock, services.DefaultSubmitDelay)
	}
	if cfg.Store == nil {
		cfg.Store = sessionstore.NewMemoryStore(sessionstore.DefaultTTL)
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = DefaultIdleTTL
	}
	if cfg.EventBuffer <= 0 {
		cfg.EventBuffer = DefaultEventBuffer
	}
	return &Registry{cfg: cfg, pages: make(map[string]*Page)}
}

// Create registers a new page with its inline form mounted. The modal
// controller is not started until the page attaches.
func (r *Registry) Create() *Page {
	now := r.cfg.Clock.Now()
	p := &Page{
		ID:       uuid.New().String(),
		registry: r,
		events:   make(chan Event, r.cfg.EventBuffer),
		created:  now,
		lastSeen: now,
	}

	p.inline = leadform.New(leadform.Options{
		Variant:      leadform.Inline,
		Submitter:    r.cfg.Submitter,
		Clock:        r.cfg.Clock,
		ResetDelay:   r.cfg.ResetDelay,
		Metrics:      r.cfg.Metrics,
		OnTransition: p.formChanged,
		OnNotify:     p.notified,
	})
	p.modal = bookingmodal.New(bookingmodal.Options{
		Clock:            r.cfg.Clock,
		AutoOpenDelay:    r.cfg.AutoOpenDelay,
		RecordManualOpen: r.cfg.RecordManualOpen,
		OnChange:         p.modalChanged,
	})

	r.mu.Lock()
	r.pages[p.ID] = p
	r.mu.Unlock()

	r.cfg.Metrics.PageOpened()
	return p
}

func (r *Registry) Get(pageID string) (*Page, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pages[pageID]
	if !ok {
		return nil, ErrPageNotFound
	}
	return p, nil
}

// Attach binds the page to a visitor session, starts the auto-open timer
// and returns the page's event stream. The page is disposed when ctx ends.
func (r *Registry) Attach(ctx context.Context, pageID, sessionID string) (<-chan Event, error) {
	p, err := r.Get(pageID)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	if p.disposed {
		p.mu.Unlock()
		return nil, ErrPageNotFound
	}
	if p.attached {
		p.mu.Unlock()
		return nil, ErrAlreadyAttached
	}
	p.attached = true
	p.sessionID = sessionID
	p.lastSeen = r.cfg.Clock.Now()
	p.mu.Unlock()

	p.modal.Start(ctx, sessionstore.NewScope(r.cfg.Store, sessionID))

	go func() {
		<-ctx.Done()
		r.Dispose(pageID)
	}()

	return p.events, nil
}

// Dispose tears the page down. Safe to call more than once.
func (r *Registry) Dispose(pageID string) {
	r.mu.Lock()
	p, ok := r.pages[pageID]
	if ok {
		delete(r.pages, pageID)
	}
	r.mu.Unlock()

	if !ok {
		return
	}
	p.dispose()
	r.cfg.Metrics.PageClosed()
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pages)
}

// Sweep disposes pages that never attached, or detached, and have not been
// touched within the idle TTL.
func (r *Registry) Sweep() int {
	cutoff := r.cfg.Clock.Now().Add(-r.cfg.IdleTTL)

	r.mu.Lock()
	var stale []string
	for id, p := range r.pages {
		if p.idleSince(cutoff) {
			stale = append(stale, id)
		}
	}
	r.mu.Unlock()

	for _, id := range stale {
		r.Dispose(id)
	}
	if len(stale) > 0 {
		log.Printf("[INFO] Swept %d idle page(s)", len(stale))
	}
	return len(stale)
}

// StartSweeper runs Sweep every interval until ctx is done
func (r *Registry) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.Sweep()
			}
		}
	}()
}

// Shutdown disposes every page
func (r *Registry) Shutdown() {
	r.mu.Lock()
	ids := make([]string, 0, len(r.pages))
	for id := range r.pages {
		ids = append(ids, id)
	}
	r.mu.Unlock()

	for _, id := range ids {
		r.Dispose(id)
	}
}
