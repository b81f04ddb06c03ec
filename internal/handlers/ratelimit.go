package handlers

import (
	"net"
	"net/http"
	"strings"
)

// RateLimiter is the minimal interface required to guard sensitive endpoints.
type RateLimiter interface {
	Allow(key string) bool
}

// allowRequest checks the caller against the limiter, keyed by scope and
// client IP. A nil limiter admits everything.
func allowRequest(limiter RateLimiter, r *http.Request, scope string) bool {
	if limiter == nil {
		return true
	}

	key := clientIP(r)
	if scope != "" {
		key = scope + ":" + key
	}
	return limiter.Allow(key)
}

// clientIP prefers the first X-Forwarded-For hop, falling back to the host
// half of RemoteAddr.
func clientIP(r *http.Request) string {
	if forwarded := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}

	remote := strings.TrimSpace(r.RemoteAddr)
	if host, _, err := net.SplitHostPort(remote); err == nil && host != "" {
		return host
	}
	return remote
}
