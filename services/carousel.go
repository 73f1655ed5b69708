package services

import "time"

// CarouselInterval is the testimonial auto-advance period
const CarouselInterval = 5 * time.Second

// Carousel is the position of a rotating list. Values are immutable; every
// move returns a new Carousel.
type Carousel struct {
	Length   int
	Index    int
	AutoPlay bool
}

func NewCarousel(length int) Carousel {
	return Carousel{Length: length, AutoPlay: length > 1}
}

// WrapIndex maps any integer onto [0, n)
func WrapIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// At jumps to index without changing auto-play
func (c Carousel) At(index int) Carousel {
	c.Index = WrapIndex(index, c.Length)
	return c
}

// Next is a manual move forward. Manual navigation stops auto-play.
func (c Carousel) Next() Carousel {
	c.Index = WrapIndex(c.Index+1, c.Length)
	c.AutoPlay = false
	return c
}

// Prev is a manual move backward. Manual navigation stops auto-play.
func (c Carousel) Prev() Carousel {
	c.Index = WrapIndex(c.Index-1, c.Length)
	c.AutoPlay = false
	return c
}

// Tick advances one slide when auto-play is on
func (c Carousel) Tick() Carousel {
	if !c.AutoPlay {
		return c
	}
	c.Index = WrapIndex(c.Index+1, c.Length)
	return c
}
