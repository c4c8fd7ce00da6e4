// Package ratelimit provides per-client-IP request rate limiting.
package ratelimit

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/zipway/zipway/pkg/middleware"
	"github.com/zipway/zipway/pkg/render"
	"github.com/zipway/zipway/pkg/response"
)

// cleanupInterval controls how often idle client buckets are dropped.
const cleanupInterval = 5 * time.Minute

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter keeps a token bucket per client IP.
type Limiter struct {
	mu      sync.Mutex
	clients map[string]*client
	limit   rate.Limit
	burst   int
}

// New creates a Limiter allowing perMinute requests per client IP with the
// given burst, and starts a background cleanup of idle clients.
func New(perMinute, burst int) *Limiter {
	l := &Limiter{
		clients: make(map[string]*client),
		limit:   rate.Limit(float64(perMinute) / 60),
		burst:   burst,
	}

	go l.cleanupLoop()

	return l
}

// Allow reports whether a request from ip may proceed.
func (l *Limiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.clients[ip]
	if !ok {
		c = &client{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = c
	}
	c.lastSeen = time.Now()

	return c.limiter.Allow()
}

func (l *Limiter) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-cleanupInterval)

		l.mu.Lock()
		for ip, c := range l.clients {
			if c.lastSeen.Before(cutoff) {
				delete(l.clients, ip)
			}
		}
		l.mu.Unlock()
	}
}

// Middleware rejects over-limit requests with 429 and a Retry-After hint.
// It relies on an upstream middleware (chi's RealIP) to have resolved the
// real client address into r.RemoteAddr.
func (l *Limiter) Middleware() middleware.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow(clientIP(r)) {
				retryAfter := int64(1)
				if l.limit > 0 {
					retryAfter = int64(time.Duration(float64(time.Second)/float64(l.limit)).Seconds() + 1)
				}
				w.Header().Set("Retry-After", strconv.FormatInt(retryAfter, 10))

				render.JSON(w, http.StatusTooManyRequests, response.RateLimitExceededResponse)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
