package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// visitorIdleTTL: bucket yang tidak dipakai selama ini dibuang saat sweep.
const visitorIdleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// keyedLimiter menyimpan satu token bucket per key (IP atau user id).
type keyedLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

func newKeyedLimiter(r rate.Limit, b int) *keyedLimiter {
	return &keyedLimiter{
		visitors: make(map[string]*visitor),
		limit:    r,
		burst:    b,
		now:      time.Now,
	}
}

func (l *keyedLimiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > visitorIdleTTL {
		for k, v := range l.visitors {
			if now.Sub(v.lastSeen) > visitorIdleTTL {
				delete(l.visitors, k)
			}
		}
		l.lastSweep = now
	}

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

func (l *keyedLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}

// RateLimitByIP membatasi r request/detik dengan burst b per client IP.
func RateLimitByIP(r rate.Limit, b int) gin.HandlerFunc {
	return rateLimit(newKeyedLimiter(r, b), "ip", func(c *gin.Context) string {
		return c.ClientIP()
	})
}

// RateLimitByUser sama dengan RateLimitByIP tapi per user_id dari AuthMiddleware.
// Request tanpa user_id dilewatkan.
func RateLimitByUser(r rate.Limit, b int) gin.HandlerFunc {
	return rateLimit(newKeyedLimiter(r, b), "user", func(c *gin.Context) string {
		return c.GetString("user_id")
	})
}

func rateLimit(l *keyedLimiter, scope string, keyFn func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := keyFn(c)
		if key == "" {
			c.Next()
			return
		}
		if !l.allow(key) {
			abortWithError(c, ErrTooMany, scope)
			return
		}
		c.Next()
	}
}
