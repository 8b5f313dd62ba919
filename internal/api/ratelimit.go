// Rate limiter for the public API. Fixed-window counters per caller; the
// chronicle endpoint gets a tighter budget since it can reach the model.
package api

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// RateLimiter counts requests per caller within a fixed window.
type RateLimiter struct {
	mu        sync.Mutex
	seen      map[string]*visit
	max       int
	window    time.Duration
	lastPrune time.Time
}

type visit struct {
	count int
	since time.Time
}

// NewRateLimiter allows max requests per window for each caller key.
func NewRateLimiter(max int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		seen:   make(map[string]*visit),
		max:    max,
		window: window,
	}
}

// Allow records a request for key and reports whether it fits the window.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	rl.pruneLocked(now)

	v, ok := rl.seen[key]
	if !ok || now.Sub(v.since) >= rl.window {
		rl.seen[key] = &visit{count: 1, since: now}
		return true
	}
	if v.count < rl.max {
		v.count++
		return true
	}
	return false
}

// RetryAfter returns how many seconds until key's window resets, zero for
// callers with nothing to wait for.
func (rl *RateLimiter) RetryAfter(key string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.seen[key]
	if !ok {
		return 0
	}
	left := rl.window - time.Since(v.since)
	if left <= 0 {
		return 0
	}
	return int(left.Seconds()) + 1
}

// pruneLocked drops stale entries, at most once per window so a busy
// limiter never pays a full sweep per request.
func (rl *RateLimiter) pruneLocked(now time.Time) {
	if now.Sub(rl.lastPrune) < rl.window {
		return
	}
	rl.lastPrune = now
	for key, v := range rl.seen {
		if now.Sub(v.since) >= 2*rl.window {
			delete(rl.seen, key)
		}
	}
}

// RateLimitMiddleware wraps next, answering 429 with a Retry-After hint
// once a caller exhausts its window.
func RateLimitMiddleware(rl *RateLimiter, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := callerKey(r)
		if !rl.Allow(key) {
			w.Header().Set("Retry-After", strconv.Itoa(rl.RetryAfter(key)))
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next(w, r)
	}
}

// callerKey prefers the first forwarded client over the socket address,
// so limits follow the real caller through a proxy.
func callerKey(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
