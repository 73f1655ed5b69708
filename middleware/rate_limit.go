package middleware

import (
	"html"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// RateLimitConfig defines the configuration for rate limiting
type RateLimitConfig struct {
	// Requests is the maximum number of requests allowed within the window
	Requests int
	// Window is the time window for rate limiting
	Window time.Duration
	// KeyFunc is a function that returns a unique key for rate limiting (defaults to IP)
	KeyFunc func(c echo.Context) string
	// Message is the error message returned when rate limit is exceeded
	Message string
	// Now defaults to time.Now
	Now func() time.Time
}

// rateLimitEntry tracks request count and window expiration
type rateLimitEntry struct {
	count     int
	expiresAt time.Time
}

// RateLimiter is a fixed-window per-key rate limiter
type RateLimiter struct {
	config RateLimitConfig
	store  map[string]*rateLimitEntry
	mu     sync.Mutex
}

// NewRateLimiter creates a new rate limiter with the given configuration
func NewRateLimiter(config RateLimitConfig) *RateLimiter {
	if config.KeyFunc == nil {
		config.KeyFunc = func(c echo.Context) string {
			return c.RealIP()
		}
	}
	if config.Message == "" {
		config.Message = "Too many requests. Please try again later."
	}
	if config.Now == nil {
		config.Now = time.Now
	}

	rl := &RateLimiter{
		config: config,
		store:  make(map[string]*rateLimitEntry),
	}

	go rl.cleanup()

	return rl
}

// Allow records a request for key and reports whether it is within the limit
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.config.Now()
	entry, exists := rl.store[key]
	if !exists || now.After(entry.expiresAt) {
		rl.store[key] = &rateLimitEntry{count: 1, expiresAt: now.Add(rl.config.Window)}
		return true
	}
	if entry.count >= rl.config.Requests {
		return false
	}
	entry.count++
	return true
}

// Middleware returns the rate limiting middleware. HTMX callers get an
// out-of-band toast and no main swap.
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if rl.Allow(rl.config.KeyFunc(c)) {
				return next(c)
			}

			c.Response().Header().Set("Retry-After", retryAfterSeconds(rl.config.Window))
			if c.Request().Header.Get("HX-Request") == "true" {
				c.Response().Header().Set("HX-Reswap", "none")
				return c.HTML(http.StatusTooManyRequests, `<div id="toasts" hx-swap-oob="beforeend"><div class="toast toast--destructive" role="status"><p class="toast__title">Slow down</p><p class="toast__description">`+html.EscapeString(rl.config.Message)+`</p></div></div>`)
			}
			return echo.NewHTTPError(http.StatusTooManyRequests, rl.config.Message)
		}
	}
}

// Len reports how many keys are tracked
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.store)
}

// prune removes expired entries
func (rl *RateLimiter) prune() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	now := rl.config.Now()
	for key, entry := range rl.store {
		if now.After(entry.expiresAt) {
			delete(rl.store, key)
		}
	}
}

// cleanup prunes every minute
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(1 * time.Minute)
	for range ticker.C {
		rl.prune()
	}
}

func retryAfterSeconds(window time.Duration) string {
	secs := int(window / time.Second)
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}

// LeadFormRateLimiter limits lead form submissions to 10 per minute per IP
var LeadFormRateLimiter = NewRateLimiter(RateLimitConfig{
	Requests: 10,
	Window:   1 * time.Minute,
	Message:  "Too many form submissions. Please wait a minute or call us directly.",
})

// AdminRateLimiter limits lead inbox requests to 60 per minute per IP
var AdminRateLimiter = NewRateLimiter(RateLimitConfig{
	Requests: 60,
	Window:   1 * time.Minute,
	Message:  "Rate limit exceeded. Please slow down your requests.",
})
