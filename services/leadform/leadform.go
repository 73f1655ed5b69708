// Package leadform drives one lead capture form through
// Idle -> Submitting -> Success -> Idle, with Failed for backend errors.
package leadform

import (
	"context"
	"dental_care_app_go/services"
	"dental_care_app_go/services/clock"
	"dental_care_app_go/services/metrics"
	"errors"
	"sync"
	"time"
)

// DefaultResetDelay is how long the success state stays on screen
const DefaultResetDelay = 2000 * time.Millisecond

var (
	// ErrBusy is returned when a submit arrives while a previous one is in flight or on display
	ErrBusy = errors.New("lead form is busy")
	// ErrUnmounted is returned when the form has been torn down
	ErrUnmounted = errors.New("lead form is unmounted")
)

type State int

const (
	Idle State = iota
	Submitting
	Success
	Failed
)

func (s State) String() string {
	switch s {
	case Submitting:
		return "submitting"
	case Success:
		return "success"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// Variant identifies which form on the page this is
type Variant string

const (
	Inline Variant = "inline"
	Modal  Variant = "modal"
)

// Fields are the user-entered values
type Fields struct {
	Name    string
	Phone   string
	Email   string
	Message string
}

// Tone controls how a notification is styled
type Tone string

const (
	ToneInfo        Tone = "info"
	ToneSuccess     Tone = "success"
	ToneDestructive Tone = "destructive"
)

// Notification is a transient toast
type Notification struct {
	Tone        Tone
	Title       string
	Description string
}

// Snapshot is a consistent view of the form
type Snapshot struct {
	Variant Variant
	State   State
	Fields  Fields
}

// Result is the synchronous outcome of Submit
type Result struct {
	Snapshot
	Notification *Notification
}

// RequestMeta carries request details stored alongside the lead
type RequestMeta struct {
	SessionID string
	IPAddress string
	UserAgent string
}

type metaKey struct{}

// WithRequestMeta attaches request metadata to ctx for Submit
func WithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, metaKey{}, meta)
}

// RequestMetaFrom returns the metadata attached with WithRequestMeta
func RequestMetaFrom(ctx context.Context) RequestMeta {
	meta, _ := ctx.Value(metaKey{}).(RequestMeta)
	return meta
}

type Options struct {
	Variant    Variant
	Submitter  services.LeadSubmitter
	Clock      clock.Clock
	ResetDelay time.Duration
	Metrics    *metrics.LeadMetrics

	// Asynchronous transitions only. Called without the form lock held.
	OnTransition func(Snapshot)
	OnNotify     func(Notification)
	// OnReset runs after the success display window has elapsed and the
	// fields were cleared.
	OnReset func()
}

type Form struct {
	mu         sync.Mutex
	opts       Options
	state      State
	fields     Fields
	gen        uint64
	mounted    bool
	resetTimer clock.Timer
}

// New creates a mounted form in the Idle state.
func New(opts Options) *Form {
	if opts.Variant == "" {
		opts.Variant = Inline
	}
	if opts.Clock == nil {
		opts.Clock = clock.Real()
	}
	if opts.ResetDelay <= 0 {
		opts.ResetDelay = DefaultResetDelay
	}
	if opts.Submitter == nil {
		opts.Submitter = services.NewSimulatedSubmitter(opts.Clock, services.DefaultSubmitDelay)
	}
	return &Form{opts: opts, mounted: true}
}

func (f *Form) Variant() Variant {
	return f.opts.Variant
}

func (f *Form) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

func (f *Form) Mounted() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mounted
}

func (f *Form) snapshotLocked() Snapshot {
	return Snapshot{Variant: f.opts.Variant, State: f.state, Fields: f.fields}
}

// Submit stores the entered fields and, when they validate, starts the
// backend call in the background. Validation errors are returned with a
// destructive notification and leave the state unchanged.
func (f *Form) Submit(ctx context.Context, in Fields) (Result, error) {
	f.mu.Lock()
	if !f.mounted {
		r := Result{Snapshot: f.snapshotLocked()}
		f.mu.Unlock()
		return r, ErrUnmounted
	}
	if f.state == Submitting || f.state == Success {
		r := Result{Snapshot: f.snapshotLocked()}
		f.mu.Unlock()
		return r, ErrBusy
	}

	f.fields = in
	if err := services.ValidateLead(in.Name, in.Phone); err != nil {
		n := errorNotification(err)
		r := Result{Snapshot: f.snapshotLocked(), Notification: &n}
		f.mu.Unlock()
		f.opts.Metrics.ObserveValidationFailure(string(f.opts.Variant), services.LeadErrorKind(err))
		return r, err
	}

	f.state = Submitting
	f.gen++
	gen := f.gen
	n := submittingNotification()
	r := Result{Snapshot: f.snapshotLocked(), Notification: &n}
	f.mu.Unlock()

	meta := RequestMetaFrom(ctx)
	payload := services.LeadPayload{
		Variant:   string(f.opts.Variant),
		Name:      in.Name,
		Phone:     in.Phone,
		Email:     in.Email,
		Message:   in.Message,
		SessionID: meta.SessionID,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	}

	// The submission outlives the request that started it.
	go f.run(context.WithoutCancel(ctx), gen, payload, f.opts.Clock.Now())
	return r, nil
}

func (f *Form) run(ctx context.Context, gen uint64, payload services.LeadPayload, started time.Time) {
	err := f.opts.Submitter.Submit(ctx, payload)

	outcome := "success"
	if err != nil {
		outcome = "failed"
	}
	f.opts.Metrics.ObserveSubmission(string(f.opts.Variant), outcome, f.opts.Clock.Now().Sub(started))

	f.complete(gen, err)
}

func (f *Form) complete(gen uint64, err error) {
	f.mu.Lock()
	if !f.mounted || gen != f.gen || f.state != Submitting {
		f.mu.Unlock()
		return
	}

	var n Notification
	if err != nil {
		f.state = Failed
		n = errorNotification(err)
	} else {
		f.state = Success
		n = successNotification(f.opts.Variant)
		f.resetTimer = f.opts.Clock.AfterFunc(f.opts.ResetDelay, func() { f.reset(gen) })
	}
	snap := f.snapshotLocked()
	f.mu.Unlock()

	f.emit(snap, &n)
}

func (f *Form) reset(gen uint64) {
	f.mu.Lock()
	if !f.mounted || gen != f.gen || f.state != Success {
		f.mu.Unlock()
		return
	}
	f.state = Idle
	f.fields = Fields{}
	f.resetTimer = nil
	snap := f.snapshotLocked()
	f.mu.Unlock()

	f.emit(snap, nil)
	if f.opts.OnReset != nil {
		f.opts.OnReset()
	}
}

func (f *Form) emit(snap Snapshot, n *Notification) {
	if f.opts.OnTransition != nil {
		f.opts.OnTransition(snap)
	}
	if n != nil && f.opts.OnNotify != nil {
		f.opts.OnNotify(*n)
	}
}

// Unmount stops pending timers. Completions that arrive afterwards are
// ignored. Safe to call more than once.
func (f *Form) Unmount() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.mounted {
		return
	}
	f.mounted = false
	if f.resetTimer != nil {
		f.resetTimer.Stop()
		f.resetTimer = nil
	}
}

func errorNotification(err error) Notification {
	msg := services.LeadErrorMessage(err)
	return Notification{Tone: ToneDestructive, Title: msg.Title, Description: msg.Description}
}

func submittingNotification() Notification {
	return Notification{
		Tone:        ToneInfo,
		Title:       "Sending your request",
		Description: "This will only take a moment.",
	}
}

func successNotification(v Variant) Notification {
	if v == Modal {
		return Notification{
			Tone:        ToneSuccess,
			Title:       "Booking Request Sent!",
			Description: "Our team will contact you within 30 minutes.",
		}
	}
	return Notification{
		Tone:        ToneSuccess,
		Title:       "Thank you!",
		Description: "Our team will contact you shortly.",
	}
}
