// Package clocktest wraps clockwork's fake clock so tests can wait for
// AfterFunc callbacks, which clockwork runs on their own goroutines.
package clocktest

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"dental_care_app_go/services/clock"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

// WaitTimeout bounds every wait in this package
const WaitTimeout = time.Second

// Clock is a clockwork.FakeClock that counts returned AfterFunc callbacks
type Clock struct {
	*clockwork.FakeClock
	fired atomic.Int64
}

func New(start time.Time) *Clock {
	return &Clock{FakeClock: clockwork.NewFakeClockAt(start)}
}

func (c *Clock) AfterFunc(d time.Duration, f func()) clock.Timer {
	return c.FakeClock.AfterFunc(d, func() {
		defer c.fired.Add(1)
		f()
	})
}

// Fired reports how many AfterFunc callbacks have returned
func (c *Clock) Fired() int {
	return int(c.fired.Load())
}

// BlockUntil waits until at least n timers are scheduled
func (c *Clock) BlockUntil(t testing.TB, n int) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), WaitTimeout)
	defer cancel()
	require.NoError(t, c.BlockUntilContext(ctx, n), "waiting for %d timers", n)
}

// AdvanceAndWait moves the clock by d and waits until n more callbacks have returned
func (c *Clock) AdvanceAndWait(t testing.TB, d time.Duration, n int) {
	t.Helper()
	want := c.Fired() + n
	c.Advance(d)
	require.Eventually(t, func() bool { return c.Fired() >= want }, WaitTimeout, time.Millisecond,
		"waiting for %d timer callbacks", n)
}

// AdvanceQuiet moves the clock by d and fails if any callback fires shortly after
func (c *Clock) AdvanceQuiet(t testing.TB, d time.Duration) {
	t.Helper()
	before := c.Fired()
	c.Advance(d)
	require.Never(t, func() bool { return c.Fired() != before }, 20*time.Millisecond, time.Millisecond,
		"no timer callback expected")
}
