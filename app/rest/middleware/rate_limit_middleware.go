package middleware

import (
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"auth-api/app/rest/response"
	apperrors "auth-api/app/utils/errors"
)

// RateLimiter throttles clients by IP. Each client gets a token bucket
// budgeted to `requests` per `window` (200 per 15 minutes by default), with
// the full budget available as burst so well-behaved clients are never
// slowed down.
type RateLimiter struct {
	visitors map[string]*visitor
	mutex    sync.Mutex
	limit    rate.Limit
	burst    int
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a rate limiter budgeted to requests per window and
// starts its janitor goroutine.
func NewRateLimiter(requests int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Every(window / time.Duration(requests)),
		burst:    requests,
	}

	go rl.cleanupVisitors(window)
	return rl
}

// RateLimit returns the throttling middleware.
func (rl *RateLimiter) RateLimit() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !rl.allow(c.RealIP()) {
				return response.FromAppError(c, apperrors.New(apperrors.ErrCodeRateLimitExceeded,
					"Too many requests, please try again later."))
			}
			return next(c)
		}
	}
}

func (rl *RateLimiter) allow(ip string) bool {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	v, exists := rl.visitors[ip]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter.Allow()
}

// cleanupVisitors drops clients idle for longer than two windows.
func (rl *RateLimiter) cleanupVisitors(window time.Duration) {
	for {
		time.Sleep(time.Minute)

		rl.mutex.Lock()
		for ip, v := range rl.visitors {
			if time.Since(v.lastSeen) > 2*window {
				delete(rl.visitors, ip)
			}
		}
		rl.mutex.Unlock()
	}
}
