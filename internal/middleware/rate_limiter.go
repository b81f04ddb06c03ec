package middleware

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter controls how frequently a caller may perform an action.
type RateLimiter interface {
	Allow(key string) bool
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// keyedLimiter applies an independent token bucket per key, typically a
// client IP. Idle entries are swept out once per ttl to bound memory.
type keyedLimiter struct {
	mu        sync.Mutex
	clients   map[string]*client
	limit     rate.Limit
	burst     int
	ttl       time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// NewIPRateLimiter constructs a per-key limiter allowing up to requests events
// per window plus a burst allowance. Keys unseen for ttl are forgotten.
func NewIPRateLimiter(requests int, window time.Duration, burst int, ttl time.Duration) RateLimiter {
	if requests <= 0 {
		requests = 1
	}
	if window <= 0 {
		window = time.Second
	}
	if burst <= 0 {
		burst = 1
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &keyedLimiter{
		clients:   make(map[string]*client),
		limit:     rate.Every(window / time.Duration(requests)),
		burst:     burst,
		ttl:       ttl,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (l *keyedLimiter) Allow(key string) bool {
	if key == "" {
		key = "unknown"
	}

	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= l.ttl {
		for k, c := range l.clients {
			if now.Sub(c.lastSeen) > l.ttl {
				delete(l.clients, k)
			}
		}
		l.lastSweep = now
	}

	c, ok := l.clients[key]
	if !ok {
		c = &client{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = c
	}
	c.lastSeen = now

	return c.limiter.Allow()
}
