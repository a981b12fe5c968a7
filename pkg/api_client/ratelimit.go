package api_client

import (
	"sync"
	"time"

	"github.com/developer-overheid-nl/don-blueprint-visualizer/pkg/api_client/helper/problem"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// clientLimiter houdt per client IP een token bucket bij
type clientLimiter struct {
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	clients   map[string]*limiterEntry
	lastSweep time.Time
	now       func() time.Time
}

type limiterEntry struct {
	limiter *rate.Limiter
	seen    time.Time
}

func newClientLimiter(rps float64, burst int) *clientLimiter {
	return &clientLimiter{
		limit:   rate.Limit(rps),
		burst:   burst,
		idleTTL: 10 * time.Minute,
		clients: make(map[string]*limiterEntry),
		now:     time.Now,
	}
}

func (l *clientLimiter) allow(key string) bool {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.clients[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = entry
	}
	entry.seen = now

	if now.Sub(l.lastSweep) >= l.idleTTL {
		l.sweep(now)
	}
	return entry.limiter.AllowN(now, 1)
}

// sweep verwijdert idle clients, zodat de map niet onbeperkt groeit.
// Wordt hooguit eens per idleTTL aangeroepen; l.mu moet vastgehouden worden.
func (l *clientLimiter) sweep(now time.Time) {
	for k, e := range l.clients {
		if now.Sub(e.seen) > l.idleTTL {
			delete(l.clients, k)
		}
	}
	l.lastSweep = now
}

// RateLimitMiddleware rejects requests with 429 once a client exceeds rps
// with the given burst. A non-positive rps disables limiting.
func RateLimitMiddleware(rps float64, burst int) gin.HandlerFunc {
	if rps <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if burst < 1 {
		burst = 1
	}
	limiter := newClientLimiter(rps, burst)
	return func(c *gin.Context) {
		if !limiter.allow(c.ClientIP()) {
			p := problem.NewTooManyRequests("Te veel verzoeken, probeer het later opnieuw")
			c.Header("Content-Type", problem.ContentType)
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(p.Status, p)
			return
		}
		c.Next()
	}
}
