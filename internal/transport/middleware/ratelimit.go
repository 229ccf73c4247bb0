package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/aidflow/fundflow-backend/internal/config"
	"github.com/aidflow/fundflow-backend/pkg/ctxutil"
)

// idleTTL is how long an unused client limiter is kept.
const idleTTL = 10 * time.Minute

// RateLimiter throttles writes per client. A client is the authenticated
// principal, or the remote host for anonymous requests. Reads are never
// counted.
type RateLimiter struct {
	perMinute int

	mu      sync.Mutex
	clients map[string]*client

	stop chan struct{}
	once sync.Once
}

type client struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter starts a limiter and its idle-client sweeper.
// Call Stop on shutdown.
func NewRateLimiter(cfg config.RateLimitConfig) *RateLimiter {
	rl := &RateLimiter{
		perMinute: cfg.WritesPerMinute,
		clients:   make(map[string]*client),
		stop:      make(chan struct{}),
	}
	go rl.sweep(cfg.CleanupInterval)
	return rl
}

// Stop terminates the sweeper. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stop) })
}

// Middleware rejects writes over the per-minute budget with 429.
func (rl *RateLimiter) Middleware() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isWrite(r.Method) {
				next.ServeHTTP(w, r)
				return
			}
			lim := rl.limiter(clientKey(r))
			if !lim.Allow() {
				wait := lim.Reserve()
				delay := wait.Delay()
				wait.Cancel()
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(delay.Seconds()))))
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	c, ok := rl.clients[key]
	if !ok {
		every := time.Minute / time.Duration(max(rl.perMinute, 1))
		c = &client{lim: rate.NewLimiter(rate.Every(every), max(rl.perMinute, 1))}
		rl.clients[key] = c
	}
	c.lastSeen = time.Now()
	return c.lim
}

func (rl *RateLimiter) sweep(interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case now := <-ticker.C:
			rl.mu.Lock()
			for key, c := range rl.clients {
				if now.Sub(c.lastSeen) > idleTTL {
					delete(rl.clients, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// size reports the number of tracked clients.
func (rl *RateLimiter) size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}

func isWrite(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

func clientKey(r *http.Request) string {
	if p, ok := ctxutil.PrincipalFromCtx(r.Context()); ok {
		return "principal:" + p
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}
