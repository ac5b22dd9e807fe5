package http

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/MKhiriev/go-notes-keeper/internal/app"
	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/internal/utils"
	"github.com/MKhiriev/go-notes-keeper/models"
	"golang.org/x/time/rate"
)

// limiterIdleTTL is how long an unused per-IP bucket is kept.
const limiterIdleTTL = 10 * time.Minute

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter limits requests per client IP using a token bucket per IP.
type IPRateLimiter struct {
	mu        sync.Mutex
	ips       map[string]*ipLimiter
	limit     rate.Limit
	burst     int
	lastSweep time.Time

	now func() time.Time
}

// NewIPRateLimiter creates a per-IP rate limiter. limit is events per second;
// burst is the bucket size.
func NewIPRateLimiter(limit rate.Limit, burst int) *IPRateLimiter {
	return &IPRateLimiter{
		ips:   make(map[string]*ipLimiter),
		limit: limit,
		burst: burst,
		now:   time.Now,
	}
}

// NewAuthRateLimiter returns a limiter allowing perMinute requests per minute
// with the given burst. Non-positive values disable limiting.
func NewAuthRateLimiter(perMinute, burst int) *IPRateLimiter {
	if perMinute <= 0 || burst <= 0 {
		return NewIPRateLimiter(rate.Inf, 0)
	}
	return NewIPRateLimiter(rate.Limit(float64(perMinute)/60.0), burst)
}

// Allow reports whether a request from ip may proceed now.
func (l *IPRateLimiter) Allow(ip string) bool {
	if l.limit == rate.Inf {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	entry, ok := l.ips[ip]
	if !ok {
		entry = &ipLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.ips[ip] = entry
	}
	entry.lastSeen = now

	return entry.limiter.AllowN(now, 1)
}

// sweep drops buckets idle for longer than limiterIdleTTL, at most once per
// minute. Callers hold l.mu.
func (l *IPRateLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < time.Minute {
		return
	}
	l.lastSweep = now

	for ip, entry := range l.ips {
		if now.Sub(entry.lastSeen) > limiterIdleTTL {
			delete(l.ips, ip)
		}
	}
}

// Middleware answers 429 when the client IP exceeds its rate.
func (l *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !l.Allow(ip) {
			logger.FromRequest(r).Warn().Str("ip", ip).Str("uri", r.RequestURI).Msg("auth rate limit exceeded")
			w.Header().Set("Retry-After", "60")
			utils.WriteJSON(w, models.ErrorResponse{Error: app.MsgTooManyRequests}, http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP returns the host part of RemoteAddr. Forwarding headers are not
// trusted; put chi's RealIP middleware in front when running behind a proxy.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
