package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"hospital-portal/internal/utils"
)

type rateLimitClient struct {
	limiter *rate.Limiter
	seen    time.Time
}

// RateLimiter keeps a token-bucket limiter per client IP. Stale entries
// are dropped by a background sweep.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*rateLimitClient
	rps     rate.Limit
	burst   int
}

// NewRateLimiter creates a per-IP rate limiter.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*rateLimitClient),
		rps:     rate.Limit(rps),
		burst:   burst,
	}
	go func() {
		for {
			time.Sleep(time.Minute)
			rl.mu.Lock()
			for ip, client := range rl.clients {
				if time.Since(client.seen) > 3*time.Minute {
					delete(rl.clients, ip)
				}
			}
			rl.mu.Unlock()
		}
	}()
	return rl
}

func (rl *RateLimiter) get(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if client, ok := rl.clients[ip]; ok {
		client.seen = time.Now()
		return client.limiter
	}
	limiter := rate.NewLimiter(rl.rps, rl.burst)
	rl.clients[ip] = &rateLimitClient{limiter: limiter, seen: time.Now()}
	return limiter
}

// Middleware rejects callers that exceed the per-IP budget. Applied to
// the credential endpoints only.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !rl.get(ip).Allow() {
			utils.GetLogger().Warn("rate limit exceeded", zap.String("ip", ip))
			utils.Error(c, http.StatusTooManyRequests, "Too many requests. Try again later.")
			c.Abort()
			return
		}
		c.Next()
	}
}
