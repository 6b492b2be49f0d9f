package handler

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter limits requests per client address and answers 429 once a
// client runs out of tokens.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	log      *otelzap.SugaredLogger
	now      func() time.Time
}

// NewRateLimiter allows every client perMinute requests with bursts of burst.
func NewRateLimiter(perMinute float64, burst int, log *otelzap.SugaredLogger) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(perMinute / 60),
		burst:    burst,
		log:      log,
		now:      time.Now,
	}
}

func (rl *RateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// Middleware rejects requests from clients over their limit.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		key := clientAddr(r)
		if !rl.allow(key) {
			ctx := r.Context()
			rl.log.Ctx(ctx).Infow("RateLimiter", "status", "rejected", "client", key)
			rw.Header().Set("Retry-After", "60")
			respondErr(ctx, rw, http.StatusTooManyRequests, "relay.rate_limited")
			return
		}
		next.ServeHTTP(rw, r)
	})
}

// CleanUp forgets clients not seen for longer than idle.
func (rl *RateLimiter) CleanUp(idle time.Duration) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	removed := 0
	now := rl.now()
	for key, v := range rl.visitors {
		if now.Sub(v.lastSeen) > idle {
			delete(rl.visitors, key)
			removed++
		}
	}
	return removed
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// Janitor runs CleanUp every interval until ctx is done.
func (rl *RateLimiter) Janitor(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := rl.CleanUp(idle); n > 0 {
				rl.log.Debugw("RateLimiter", "status", "forgot idle clients", "count", n)
			}
		}
	}
}
