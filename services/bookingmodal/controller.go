// Package bookingmodal tracks whether the booking modal is open for one
// page and auto-opens it once per visitor session.
package bookingmodal

import (
	"context"
	"dental_care_app_go/services/clock"
	"log"
	"sync"
	"time"
)

// InteractedKey is the session flag recording that the modal was shown
const InteractedKey = "booking_modal_interacted"

// DefaultAutoOpenDelay is how long after page mount the modal opens itself
const DefaultAutoOpenDelay = 6000 * time.Millisecond

// Reason explains why the modal changed state
type Reason string

const (
	ReasonUser            Reason = "user"
	ReasonAutoOpen        Reason = "auto_open"
	ReasonBookingComplete Reason = "booking_complete"
)

// Change is delivered to the observer on every open/close transition
type Change struct {
	Open   bool
	Reason Reason
}

// SessionScope is the session-bound key/value capability the controller needs
type SessionScope interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

type Options struct {
	Clock         clock.Clock
	AutoOpenDelay time.Duration
	// RecordManualOpen also persists the interaction flag when the visitor
	// opens the modal themselves. Off by default: only the auto-open path
	// records it.
	RecordManualOpen bool
	// OnChange is called without the controller lock held.
	OnChange func(Change)
}

type Controller struct {
	mu            sync.Mutex
	opts          Options
	scope         SessionScope
	isOpen        bool
	hasAutoOpened bool
	started       bool
	disposed      bool
	timer         clock.Timer
	ctx           context.Context
}

func New(opts Options) *Controller {
	if opts.Clock == nil {
		opts.Clock = clock.Real()
	}
	if opts.AutoOpenDelay <= 0 {
		opts.AutoOpenDelay = DefaultAutoOpenDelay
	}
	return &Controller{opts: opts, ctx: context.Background()}
}

func (c *Controller) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isOpen
}

func (c *Controller) HasAutoOpened() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasAutoOpened
}

// Open shows the modal. It reports whether the state changed.
func (c *Controller) Open() bool {
	c.mu.Lock()
	if c.disposed || c.isOpen {
		c.mu.Unlock()
		return false
	}
	c.isOpen = true
	scope, ctx := c.scope, c.ctx
	c.mu.Unlock()

	if c.opts.RecordManualOpen && scope != nil {
		if err := scope.Set(ctx, InteractedKey, "true"); err != nil {
			log.Printf("[WARNING] Failed to record booking modal interaction: %v", err)
		}
	}

	c.notify(Change{Open: true, Reason: ReasonUser})
	return true
}

// Close hides the modal. It reports whether the state changed.
func (c *Controller) Close() bool {
	return c.close(ReasonUser)
}

// CloseAfterSubmission hides the modal once a booking has been confirmed
func (c *Controller) CloseAfterSubmission() bool {
	return c.close(ReasonBookingComplete)
}

func (c *Controller) close(reason Reason) bool {
	c.mu.Lock()
	if c.disposed || !c.isOpen {
		c.mu.Unlock()
		return false
	}
	c.isOpen = false
	c.mu.Unlock()

	c.notify(Change{Open: false, Reason: reason})
	return true
}

// Start binds the visitor session and arms the one-shot auto-open timer.
// Calls after the first are ignored.
func (c *Controller) Start(ctx context.Context, scope SessionScope) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed || c.started {
		return
	}
	c.started = true
	c.scope = scope
	c.ctx = context.WithoutCancel(ctx)
	c.timer = c.opts.Clock.AfterFunc(c.opts.AutoOpenDelay, c.autoOpen)
}

func (c *Controller) autoOpen() {
	c.mu.Lock()
	if c.disposed || c.hasAutoOpened {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	scope, ctx := c.scope, c.ctx
	c.mu.Unlock()

	if scope == nil {
		return
	}

	_, interacted, err := scope.Get(ctx, InteractedKey)
	if err != nil {
		log.Printf("[WARNING] Skipping booking modal auto-open, session flag unreadable: %v", err)
		return
	}
	if interacted {
		return
	}

	c.mu.Lock()
	if c.disposed || c.hasAutoOpened {
		c.mu.Unlock()
		return
	}
	c.hasAutoOpened = true
	wasOpen := c.isOpen
	c.isOpen = true
	c.mu.Unlock()

	if err := scope.Set(ctx, InteractedKey, "true"); err != nil {
		log.Printf("[WARNING] Failed to persist booking modal flag: %v", err)
	}

	if !wasOpen {
		c.notify(Change{Open: true, Reason: ReasonAutoOpen})
	}
}

// Dispose cancels the auto-open timer. Later calls on the controller do nothing.
func (c *Controller) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return
	}
	c.disposed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) notify(ch Change) {
	if c.opts.OnChange != nil {
		c.opts.OnChange(ch)
	}
}
