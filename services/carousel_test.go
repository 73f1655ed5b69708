package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapIndex(t *testing.T) {
	tests := []struct {
		i, n, want int
	}{
		{0, 5, 0},
		{5, 5, 0},
		{6, 5, 1},
		{-1, 5, 4},
		{-6, 5, 4},
		{3, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, WrapIndex(tt.i, tt.n), "WrapIndex(%d, %d)", tt.i, tt.n)
	}
}

func TestCarousel(t *testing.T) {
	t.Run("AutoPlayWraps", func(t *testing.T) {
		c := NewCarousel(5).At(4)
		assert.True(t, c.AutoPlay)
		c = c.Tick()
		assert.Equal(t, 0, c.Index)
		assert.True(t, c.AutoPlay)
	})

	t.Run("PrevFromFirstWrapsToLast", func(t *testing.T) {
		c := NewCarousel(5).Prev()
		assert.Equal(t, 4, c.Index)
		assert.False(t, c.AutoPlay)
	})

	t.Run("ManualNavigationStopsAutoPlay", func(t *testing.T) {
		c := NewCarousel(5).Next()
		assert.Equal(t, 1, c.Index)
		assert.False(t, c.AutoPlay)

		assert.Equal(t, 1, c.Tick().Index)
	})

	t.Run("SingleSlideNeverAutoPlays", func(t *testing.T) {
		c := NewCarousel(1)
		assert.False(t, c.AutoPlay)
		assert.Equal(t, 0, c.Next().Index)
	})
}
