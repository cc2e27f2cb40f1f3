package middlewares

import (
	"booking-service/internal/pkg/exceptions"
	"booking-service/internal/pkg/utils"
	"net"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// visitor is the limiter state kept for one client IP.
type visitor struct {
	bucket       *rate.Limiter
	blockedUntil time.Time
	lastSeen     time.Time
}

// RateLimiter guards the booking write path per client IP. An IP that drains
// its bucket is refused outright until blockTime has passed.
type RateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	burst     int
	refill    rate.Limit
	blockTime time.Duration
	lastSweep time.Time
	log       *zap.Logger
	now       func() time.Time
}

// NewRateLimiter allows burst requests per IP, refilled one token every per.
func NewRateLimiter(burst int, per, blockTime time.Duration, log *zap.Logger) *RateLimiter {
	return &RateLimiter{
		visitors:  make(map[string]*visitor),
		burst:     burst,
		refill:    rate.Every(per),
		blockTime: blockTime,
		log:       log,
		now:       time.Now,
	}
}

func (r *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ip := clientIP(req)
		if retryAfter, ok := r.admit(ip); !ok {
			utils.BuildErrorResponse(r.log, w, exceptions.ErrTooManyRequests(ip, retryAfter))
			return
		}
		next.ServeHTTP(w, req)
	})
}

// admit reports whether ip may proceed and, if not, how many seconds it
// should wait.
func (r *RateLimiter) admit(ip string) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.sweep(now)

	v, ok := r.visitors[ip]
	if !ok {
		v = &visitor{bucket: rate.NewLimiter(r.refill, r.burst)}
		r.visitors[ip] = v
	}
	v.lastSeen = now

	if now.Before(v.blockedUntil) {
		return int(v.blockedUntil.Sub(now).Seconds()) + 1, false
	}
	if !v.bucket.AllowN(now, 1) {
		v.blockedUntil = now.Add(r.blockTime)
		return int(r.blockTime.Seconds()), false
	}
	return 0, true
}

// sweep drops visitors idle for longer than the block window, at most once
// per block window.
func (r *RateLimiter) sweep(now time.Time) {
	idle := r.blockTime
	if idle < time.Minute {
		idle = time.Minute
	}
	if now.Sub(r.lastSweep) < idle {
		return
	}
	r.lastSweep = now
	for ip, v := range r.visitors {
		if now.Sub(v.lastSeen) > idle && now.After(v.blockedUntil) {
			delete(r.visitors, ip)
		}
	}
}

func clientIP(req *http.Request) string {
	ip, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		return req.RemoteAddr
	}
	return ip
}
