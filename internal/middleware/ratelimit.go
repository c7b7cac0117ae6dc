package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// fixedWindow counts requests per key in a window that starts with the first
// hit. It returns the count so far and the window's remaining milliseconds.
var fixedWindow = redis.NewScript(`
	local n = redis.call('INCR', KEYS[1])
	if n == 1 then
		redis.call('PEXPIRE', KEYS[1], ARGV[1])
	end
	return { n, redis.call('PTTL', KEYS[1]) }
`)

type limiterEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// localLimiter keeps one token bucket per client. A bucket idle for longer
// than idle has refilled completely, so dropping it changes nothing.
type localLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*limiterEntry
	limit     rate.Limit
	burst     int
	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func newLocalLimiter(perMinute int, now func() time.Time) *localLimiter {
	return &localLimiter{
		limiters:  make(map[string]*limiterEntry),
		limit:     rate.Every(time.Minute / time.Duration(perMinute)),
		burst:     perMinute,
		idle:      2 * time.Minute,
		lastSweep: now(),
		now:       now,
	}
}

func (l *localLimiter) allow(key string) bool {
	l.mu.Lock()
	now := l.now()
	if now.Sub(l.lastSweep) >= l.idle {
		l.sweep(now)
	}
	e, ok := l.limiters[key]
	if !ok {
		e = &limiterEntry{lim: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[key] = e
	}
	e.lastSeen = now
	l.mu.Unlock()
	return e.lim.AllowN(now, 1)
}

// sweep drops idle buckets. Callers hold mu.
func (l *localLimiter) sweep(now time.Time) {
	for k, e := range l.limiters {
		if now.Sub(e.lastSeen) >= l.idle {
			delete(l.limiters, k)
		}
	}
	l.lastSweep = now
}

// RateLimit allows perMinute requests per client IP. With a redis client the
// count is shared across instances; otherwise, or when redis fails, each
// instance limits on its own.
func RateLimit(perMinute int, rdb *redis.Client) echo.MiddlewareFunc {
	if perMinute <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	local := newLocalLimiter(perMinute, time.Now)
	window := time.Minute

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			if ip == "" {
				ip = "unknown"
			}
			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(perMinute))

			if rdb != nil {
				key := "ratelimit:bookings:" + ip
				vals, err := fixedWindow.Run(c.Request().Context(), rdb, []string{key}, window.Milliseconds()).Int64Slice()
				if err == nil && len(vals) == 2 {
					if vals[0] > int64(perMinute) {
						secs := (vals[1] + 999) / 1000
						c.Response().Header().Set("Retry-After", strconv.FormatInt(secs, 10))
						return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
					}
					return next(c)
				}
				c.Logger().Warnf("[RateLimit] redis unavailable, limiting locally: %v", err)
			}

			if !local.allow(ip) {
				c.Response().Header().Set("Retry-After", "60")
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}
