package middleware

import (
	"context"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-ArenaSlots/internal/api/handlers"
)

const cleanupInterval = time.Minute

// RateLimiter ограничитель запросов в памяти, отдельный limiter на клиента
type RateLimiter struct {
	visitors map[string]*visitor
	mu       sync.Mutex
	rate     rate.Limit
	burst    int
	ttl      time.Duration
	trusted  []netip.Prefix
	logger   Logger
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter rps - запросов в секунду, burst - размер всплеска,
// ttl - через сколько неактивный клиент забывается,
// trusted - прокси, от которых принимается X-Forwarded-For
func NewRateLimiter(rps float64, burst int, ttl time.Duration, trusted []netip.Prefix, logger Logger) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate.Limit(rps),
		burst:    burst,
		ttl:      ttl,
		trusted:  trusted,
		logger:   logger,
	}
}

// RunCleanup периодически удаляет неактивных клиентов, пока ctx не отменен
func (rl *RateLimiter) RunCleanup(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			rl.cleanup(now)
		}
	}
}

func (rl *RateLimiter) cleanup(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, v := range rl.visitors {
		if now.Sub(v.lastSeen) > rl.ttl {
			delete(rl.visitors, key)
		}
	}
}

func (rl *RateLimiter) getVisitor(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[key]
	if !exists {
		limiter := rate.NewLimiter(rl.rate, rl.burst)
		rl.visitors[key] = &visitor{limiter: limiter, lastSeen: time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

func (rl *RateLimiter) Allow(key string) bool {
	return rl.getVisitor(key).Allow()
}

// Middleware отвечает 429, когда клиент превысил лимит
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := rl.ClientIP(r)
		if !rl.Allow(ip) {
			rl.logger.Warn("%s %s - Rate limit exceeded: ip=%s", r.Method, r.URL.Path, ip)
			handlers.RespondTooManyRequests(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ClientIP адрес клиента. По умолчанию это адрес сокета (RemoteAddr).
// X-Forwarded-For читается, только если соединение пришло от доверенного прокси:
// цепочка просматривается справа налево до первого недоверенного адреса
func (rl *RateLimiter) ClientIP(r *http.Request) string {
	peer := remoteHost(r.RemoteAddr)
	if !rl.isTrusted(peer) {
		return peer
	}

	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}
		if !rl.isTrusted(hop) {
			return hop
		}
	}
	return peer
}

func (rl *RateLimiter) isTrusted(ip string) bool {
	if len(rl.trusted) == 0 {
		return false
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range rl.trusted {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

func remoteHost(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
