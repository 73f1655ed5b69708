// Package clock is the time source for timer-driven state transitions.
// Production code uses Real; tests drive a clockwork fake clock.
package clock

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Timer is a cancellation handle for a scheduled callback.
type Timer = clockwork.Timer

// Clock schedules callbacks and reports the current time. Both
// clockwork.NewRealClock and *clockwork.FakeClock satisfy it.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
	After(d time.Duration) <-chan time.Time
}

// Real returns a Clock backed by the time package.
func Real() Clock {
	return clockwork.NewRealClock()
}
