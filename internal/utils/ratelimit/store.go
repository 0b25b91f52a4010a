package ratelimit

import (
	"sync"
	"time"
)

// entry pairs a limiter with its last access time so the cleanup
// routine can evict clients that have gone quiet.
type entry struct {
	limiter    *Limiter
	lastAccess time.Time
}

// Store manages limiters for many clients, keyed by client identity
// and endpoint category. Each category carries its own Rate.
type Store struct {
	mu       sync.Mutex
	limiters map[string]*entry
	rates    map[string]Rate

	cleanupInterval time.Duration
	idleTTL         time.Duration
}

// NewStore creates a store with the given default rate. A background
// goroutine evicts limiters that have been idle longer than twice the
// cleanup interval.
func NewStore(defaultRate Rate, cleanupInterval time.Duration) *Store {
	store := &Store{
		limiters:        make(map[string]*entry),
		rates:           map[string]Rate{"default": defaultRate},
		cleanupInterval: cleanupInterval,
		idleTTL:         2 * cleanupInterval,
	}

	go store.cleanupRoutine()

	return store
}

// SetRate registers the rate limit for a category, for example "auth".
func (s *Store) SetRate(category string, rate Rate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rates[category] = rate
}

// Allow reports whether the client may make a request in the given
// category, creating a limiter on first sight.
func (s *Store) Allow(clientID, category string) bool {
	return s.getLimiter(clientID, category).Allow()
}

func (s *Store) getLimiter(clientID, category string) *Limiter {
	key := category + ":" + clientID

	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.limiters[key]; ok {
		e.lastAccess = time.Now()
		return e.limiter
	}

	rate, ok := s.rates[category]
	if !ok {
		rate = s.rates["default"]
	}

	e := &entry{
		limiter:    NewLimiter(rate.RequestsPerSecond, rate.Burst),
		lastAccess: time.Now(),
	}
	s.limiters[key] = e

	return e.limiter
}

func (s *Store) cleanupRoutine() {
	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		s.cleanup(time.Now())
	}
}

// cleanup evicts limiters whose bucket has long since refilled. A
// returning client simply gets a fresh full bucket.
func (s *Store) cleanup(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, e := range s.limiters {
		if now.Sub(e.lastAccess) > s.idleTTL {
			delete(s.limiters, key)
		}
	}
}
