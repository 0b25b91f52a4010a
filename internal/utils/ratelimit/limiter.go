// Package ratelimit implements per-client token bucket rate limiting
// for the API endpoints.
package ratelimit

import (
	"sync"
	"time"
)

// Rate controls how many requests per second a client is allowed.
type Rate struct {
	// RequestsPerSecond is the token refill rate.
	RequestsPerSecond float64

	// Burst is the maximum size of the token bucket.
	Burst int
}

// Limiter is a token bucket for a single client identity. Tokens refill
// at a fixed rate and each request consumes one.
type Limiter struct {
	mu       sync.Mutex
	tokens   float64
	lastTime time.Time
	rate     float64
	capacity float64
}

// NewLimiter creates a limiter that starts with a full bucket.
func NewLimiter(rate float64, burst int) *Limiter {
	return &Limiter{
		tokens:   float64(burst),
		lastTime: time.Now(),
		rate:     rate,
		capacity: float64(burst),
	}
}

// Allow reports whether a request may proceed, consuming a token if so.
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(l.lastTime).Seconds()
	l.lastTime = now

	l.tokens += elapsed * l.rate
	if l.tokens > l.capacity {
		l.tokens = l.capacity
	}

	if l.tokens < 1 {
		return false
	}

	l.tokens--
	return true
}

// ResetTokens refills the bucket. Used by tests and admin tooling.
func (l *Limiter) ResetTokens() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tokens = l.capacity
	l.lastTime = time.Now()
}
