package clocktest

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAdvanceAndWait(t *testing.T) {
	c := New(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC))
	var ran atomic.Int32
	c.AfterFunc(time.Second, func() { ran.Add(1) })
	c.AfterFunc(3*time.Second, func() { ran.Add(1) })

	c.BlockUntil(t, 2)
	c.AdvanceQuiet(t, 999*time.Millisecond)
	c.AdvanceAndWait(t, time.Millisecond, 1)
	assert.Equal(t, int32(1), ran.Load())

	c.AdvanceAndWait(t, 2*time.Second, 1)
	assert.Equal(t, int32(2), ran.Load())
	assert.Equal(t, 2, c.Fired())
}

func TestStoppedTimerIsQuiet(t *testing.T) {
	c := New(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC))
	timer := c.AfterFunc(time.Second, func() {})
	assert.True(t, timer.Stop())
	c.AdvanceQuiet(t, time.Minute)
	assert.Zero(t, c.Fired())
}
