package clock

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

var _ Clock = (*clockwork.FakeClock)(nil)

func TestFakeClockAfterFunc(t *testing.T) {
	t.Run("FiresOnceDue", func(t *testing.T) {
		var c Clock = clockwork.NewFakeClockAt(epoch)
		fake := c.(*clockwork.FakeClock)
		fired := make(chan time.Time, 1)
		c.AfterFunc(2*time.Second, func() { fired <- c.Now() })

		fake.Advance(time.Second)
		select {
		case <-fired:
			t.Fatal("fired before the deadline")
		case <-time.After(10 * time.Millisecond):
		}

		fake.Advance(time.Second)
		select {
		case at := <-fired:
			assert.Equal(t, epoch.Add(2*time.Second), at)
		case <-time.After(time.Second):
			t.Fatal("callback did not fire")
		}
	})

	t.Run("StoppedTimerNeverFires", func(t *testing.T) {
		fake := clockwork.NewFakeClockAt(epoch)
		var c Clock = fake
		fired := make(chan struct{}, 1)
		timer := c.AfterFunc(time.Second, func() { fired <- struct{}{} })

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		require.NoError(t, fake.BlockUntilContext(ctx, 1))

		assert.True(t, timer.Stop())
		assert.False(t, timer.Stop())
		fake.Advance(time.Minute)

		select {
		case <-fired:
			t.Fatal("stopped timer fired")
		case <-time.After(10 * time.Millisecond):
		}
	})
}

func TestRealClock(t *testing.T) {
	c := Real()
	done := make(chan struct{})
	c.AfterFunc(time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("real timer did not fire")
	}
	assert.WithinDuration(t, time.Now(), c.Now(), time.Second)
}
