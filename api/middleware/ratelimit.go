package middleware

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limit types reported in RateLimitInfo and to the OnLimited hook.
const (
	LimitTypeIP      = "ip"
	LimitTypeTx      = "tx"
	LimitTypeBlocked = "blocked"
)

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	// Every request, per client IP. An IP that drains its burst is refused
	// outright for IPBlockDuration.
	IPRequestsPerSecond int
	IPBurst             int
	IPBlockDuration     time.Duration

	// Message submissions, per client IP. Stricter than reads since every
	// accepted message commits a new height.
	TxPerSecond int
	TxBurst     int

	// Clients idle for IdleTTL are forgotten on the next sweep.
	SweepInterval time.Duration
	IdleTTL       time.Duration
}

// DefaultRateLimitConfig returns default configuration
func DefaultRateLimitConfig() *RateLimitConfig {
	return &RateLimitConfig{
		IPRequestsPerSecond: 100,
		IPBurst:             200,
		IPBlockDuration:     time.Minute,

		TxPerSecond: 10,
		TxBurst:     20,

		SweepInterval: 5 * time.Minute,
		IdleTTL:       time.Hour,
	}
}

// RateLimitInfo describes the outcome of one admission check
type RateLimitInfo struct {
	Allowed    bool   `json:"allowed"`
	Remaining  int    `json:"remaining"`
	Limit      int    `json:"limit"`
	RetryAfter int    `json:"retry_after,omitempty"`
	LimitType  string `json:"limit_type"`
}

// visitor holds the limiters of one client IP
type visitor struct {
	requests     *rate.Limiter
	submissions  *rate.Limiter
	blockedUntil time.Time
	lastSeen     time.Time
}

// RateLimiter admits requests per client IP
type RateLimiter struct {
	config *RateLimitConfig

	mu       sync.Mutex
	visitors map[string]*visitor

	// OnLimited is called with the limit type of every rejected request.
	OnLimited func(limitType string)

	stop     chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter creates a rate limiter and starts its idle sweep
func NewRateLimiter(config *RateLimitConfig) *RateLimiter {
	if config == nil {
		config = DefaultRateLimitConfig()
	}
	rl := &RateLimiter{
		config:   config,
		visitors: make(map[string]*visitor),
		stop:     make(chan struct{}),
	}
	go rl.sweepLoop()
	return rl
}

// Stop ends the idle sweep
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

func (rl *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(rl.config.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case now := <-ticker.C:
			rl.sweep(now)
		case <-rl.stop:
			return
		}
	}
}

func (rl *RateLimiter) sweep(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, v := range rl.visitors {
		if now.Sub(v.lastSeen) > rl.config.IdleTTL && now.After(v.blockedUntil) {
			delete(rl.visitors, ip)
		}
	}
}

// visitor returns the limiters for ip. Callers hold rl.mu.
func (rl *RateLimiter) visitor(ip string, now time.Time) *visitor {
	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{
			requests:    rate.NewLimiter(rate.Limit(rl.config.IPRequestsPerSecond), rl.config.IPBurst),
			submissions: rate.NewLimiter(rate.Limit(rl.config.TxPerSecond), rl.config.TxBurst),
		}
		rl.visitors[ip] = v
	}
	v.lastSeen = now
	return v
}

// AllowIP admits one request from ip. Draining the burst blocks ip for
// IPBlockDuration.
func (rl *RateLimiter) AllowIP(ip string) (bool, *RateLimitInfo) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	v := rl.visitor(ip, now)
	info := &RateLimitInfo{Limit: rl.config.IPBurst, LimitType: LimitTypeIP}

	if now.Before(v.blockedUntil) {
		info.LimitType = LimitTypeBlocked
		info.RetryAfter = seconds(v.blockedUntil.Sub(now))
		return false, info
	}
	if !v.requests.AllowN(now, 1) {
		v.blockedUntil = now.Add(rl.config.IPBlockDuration)
		info.RetryAfter = seconds(rl.config.IPBlockDuration)
		return false, info
	}

	info.Allowed = true
	info.Remaining = int(v.requests.TokensAt(now))
	return true, info
}

// AllowTx admits one message submission from ip. Submissions never block
// the IP; the caller is told when the next token is due.
func (rl *RateLimiter) AllowTx(ip string) (bool, *RateLimitInfo) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	v := rl.visitor(ip, now)
	info := &RateLimitInfo{Limit: rl.config.TxBurst, LimitType: LimitTypeTx}

	r := v.submissions.ReserveN(now, 1)
	if !r.OK() {
		info.RetryAfter = seconds(rl.config.IPBlockDuration)
		return false, info
	}
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		info.RetryAfter = seconds(delay)
		return false, info
	}

	info.Allowed = true
	info.Remaining = int(v.submissions.TokensAt(now))
	return true, info
}

// seconds rounds d up to whole seconds, at least one
func seconds(d time.Duration) int {
	return int(math.Max(1, math.Ceil(d.Seconds())))
}

// RateLimitMiddleware limits every request by client IP
func RateLimitMiddleware(rl *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, info := rl.AllowIP(GetClientIP(r))
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
			if !allowed {
				rl.reject(w, info, "Too many requests, please slow down")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// TxRateLimitMiddleware limits message submissions by client IP
func TxRateLimitMiddleware(rl *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, info := rl.AllowTx(GetClientIP(r))
			w.Header().Set("X-RateLimit-Tx-Remaining", strconv.Itoa(info.Remaining))
			if !allowed {
				rl.reject(w, info, "Message submission limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (rl *RateLimiter) reject(w http.ResponseWriter, info *RateLimitInfo, message string) {
	if rl.OnLimited != nil {
		rl.OnLimited(info.LimitType)
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", strconv.Itoa(info.RetryAfter))
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error":       "rate_limit_exceeded",
		"message":     message,
		"retry_after": info.RetryAfter,
		"limit_type":  info.LimitType,
	})
}

// GetClientIP returns the first X-Forwarded-For hop, then X-Real-IP, then
// the host part of RemoteAddr.
func GetClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	if i := strings.LastIndexByte(r.RemoteAddr, ':'); i >= 0 {
		return r.RemoteAddr[:i]
	}
	return r.RemoteAddr
}

// Stats is a snapshot of the limiter
type Stats struct {
	Clients        int `json:"clients"`
	BlockedClients int `json:"blocked_clients"`
}

// GetStats returns current rate limiter statistics
func (rl *RateLimiter) GetStats() *Stats {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	stats := &Stats{Clients: len(rl.visitors)}
	for _, v := range rl.visitors {
		if now.Before(v.blockedUntil) {
			stats.BlockedClients++
		}
	}
	return stats
}
