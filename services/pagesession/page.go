package pagesession

import (
	"context"
	"dental_care_app_go/services/bookingmodal"
	"dental_care_app_go/services/leadform"
	"log"
	"sync"
	"time"
)

type EventKind string

const (
	EventModal      EventKind = "modal"
	EventFormInline EventKind = "form-inline"
	EventFormModal  EventKind = "form-modal"
	EventToast      EventKind = "toast"
)

// ModalView is what the booking modal shows
type ModalView struct {
	Open   bool
	Reason bookingmodal.Reason
	Form   leadform.Snapshot
}

// Event is a timer-driven change pushed to the browser
type Event struct {
	Kind  EventKind
	Modal *ModalView
	Form  *leadform.Snapshot
	Toast *leadform.Notification
}

type Page struct {
	ID string

	registry *Registry
	inline   *leadform.Form
	modal    *bookingmodal.Controller

	mu        sync.Mutex
	modalForm *leadform.Form
	events    chan Event
	sessionID string
	attached  bool
	disposed  bool
	created   time.Time
	lastSeen  time.Time
}

// Touch marks the page as recently used
func (p *Page) Touch() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastSeen = p.registry.cfg.Clock.Now()
}

func (p *Page) SessionID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sessionID
}

func (p *Page) Attached() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.attached
}

func (p *Page) idleSince(cutoff time.Time) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.attached && p.lastSeen.Before(cutoff)
}

// ModalOpen reports whether the booking modal is showing
func (p *Page) ModalOpen() bool {
	return p.modal.IsOpen()
}

func (p *Page) HasAutoOpened() bool {
	return p.modal.HasAutoOpened()
}

func (p *Page) InlineForm() leadform.Snapshot {
	return p.inline.Snapshot()
}

// Modal returns the current modal view. The form snapshot is empty when
// the modal is closed.
func (p *Page) Modal() ModalView {
	view := ModalView{Open: p.modal.IsOpen()}
	p.mu.Lock()
	form := p.modalForm
	p.mu.Unlock()
	if form != nil {
		view.Form = form.Snapshot()
	} else {
		view.Form = leadform.Snapshot{Variant: leadform.Modal}
	}
	return view
}

// OpenModal opens the booking modal on visitor request. trigger names the
// button that was used.
func (p *Page) OpenModal(trigger string) ModalView {
	p.Touch()
	if p.modal.Open() {
		p.registry.cfg.Metrics.ObserveModalOpen(trigger)
	}
	return p.Modal()
}

// CloseModal closes the booking modal on visitor request
func (p *Page) CloseModal() {
	p.Touch()
	p.modal.Close()
}

// Submit routes a form post to the inline form or the modal's form
func (p *Page) Submit(ctx context.Context, variant leadform.Variant, fields leadform.Fields) (leadform.Result, error) {
	p.Touch()

	switch variant {
	case leadform.Inline:
		return p.inline.Submit(ctx, fields)
	case leadform.Modal:
		p.mu.Lock()
		form := p.modalForm
		p.mu.Unlock()
		if form == nil || !p.modal.IsOpen() {
			return leadform.Result{Snapshot: leadform.Snapshot{Variant: leadform.Modal, Fields: fields}}, ErrModalClosed
		}
		return form.Submit(ctx, fields)
	default:
		return leadform.Result{}, ErrUnknownVariant
	}
}

func (p *Page) newModalForm() *leadform.Form {
	cfg := p.registry.cfg
	var form *leadform.Form
	form = leadform.New(leadform.Options{
		Variant:      leadform.Modal,
		Submitter:    cfg.Submitter,
		Clock:        cfg.Clock,
		ResetDelay:   cfg.ResetDelay,
		Metrics:      cfg.Metrics,
		OnTransition: p.formChanged,
		OnNotify:     p.notified,
		OnReset: func() {
			p.mu.Lock()
			current := p.modalForm == form
			p.mu.Unlock()
			if current {
				p.modal.CloseAfterSubmission()
			}
		},
	})
	return form
}

// modalChanged mounts a fresh modal form on open and unmounts it on close.
func (p *Page) modalChanged(ch bookingmodal.Change) {
	var snap leadform.Snapshot

	p.mu.Lock()
	if p.disposed {
		p.mu.Unlock()
		return
	}
	if ch.Open {
		if p.modalForm != nil {
			p.modalForm.Unmount()
		}
		p.modalForm = p.newModalForm()
		snap = p.modalForm.Snapshot()
	} else {
		if p.modalForm != nil {
			p.modalForm.Unmount()
			p.modalForm = nil
		}
		snap = leadform.Snapshot{Variant: leadform.Modal}
	}
	p.mu.Unlock()

	if ch.Reason == bookingmodal.ReasonAutoOpen {
		p.registry.cfg.Metrics.ObserveModalOpen(string(bookingmodal.ReasonAutoOpen))
	}
	if ch.Reason == bookingmodal.ReasonUser {
		return
	}
	p.push(Event{Kind: EventModal, Modal: &ModalView{Open: ch.Open, Reason: ch.Reason, Form: snap}})
}

func (p *Page) formChanged(s leadform.Snapshot) {
	kind := EventFormInline
	if s.Variant == leadform.Modal {
		kind = EventFormModal
	}
	p.push(Event{Kind: kind, Form: &s})
}

func (p *Page) notified(n leadform.Notification) {
	p.push(Event{Kind: EventToast, Toast: &n})
}

func (p *Page) push(ev Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.disposed {
		return
	}
	select {
	case p.events <- ev:
	default:
		log.Printf("[WARNING] Page %s event queue full, dropping %s event", p.ID, ev.Kind)
	}
}

func (p *Page) dispose() {
	p.mu.Lock()
	if p.disposed {
		p.mu.Unlock()
		return
	}
	p.disposed = true
	modalForm := p.modalForm
	p.modalForm = nil
	close(p.events)
	p.mu.Unlock()

	p.modal.Dispose()
	p.inline.Unmount()
	if modalForm != nil {
		modalForm.Unmount()
	}
}
