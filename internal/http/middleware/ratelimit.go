package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiter keeps a token bucket per client IP for the credential-bearing
// auth endpoints. Stale entries are evicted lazily on access.
type RateLimiter struct {
	mu       sync.Mutex
	clients  map[string]*client
	limit    rate.Limit
	burst    int
	lifetime time.Duration
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a limiter allowing perMinute requests with the given
// burst per client IP.
func NewRateLimiter(perMinute, burst int) *RateLimiter {
	return &RateLimiter{
		clients:  make(map[string]*client),
		limit:    rate.Limit(float64(perMinute) / 60.0),
		burst:    burst,
		lifetime: 10 * time.Minute,
	}
}

// Limit rejects requests beyond the per-IP budget with 429.
func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"success": false, "error": "Too many requests, please try again later"})
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	cl, ok := rl.clients[ip]
	if !ok {
		cl = &client{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[ip] = cl
	}
	cl.lastSeen = now

	if len(rl.clients) > 1000 {
		for key, other := range rl.clients {
			if now.Sub(other.lastSeen) > rl.lifetime {
				delete(rl.clients, key)
			}
		}
	}

	return cl.limiter.Allow()
}
