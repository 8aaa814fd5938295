package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testConfig() *RateLimitConfig {
	return &RateLimitConfig{
		IPRequestsPerSecond: 1,
		IPBurst:             2,
		IPBlockDuration:     time.Minute,
		TxPerSecond:         1,
		TxBurst:             1,
		SweepInterval:       time.Hour,
		IdleTTL:             time.Hour,
	}
}

func TestAllowIPBlocksAfterBurst(t *testing.T) {
	rl := NewRateLimiter(testConfig())
	defer rl.Stop()

	ok, info := rl.AllowIP("10.0.0.1")
	require.True(t, ok)
	require.Equal(t, 1, info.Remaining)
	ok, _ = rl.AllowIP("10.0.0.1")
	require.True(t, ok)

	ok, info = rl.AllowIP("10.0.0.1")
	require.False(t, ok)
	require.Equal(t, LimitTypeIP, info.LimitType)
	require.Equal(t, 60, info.RetryAfter)

	// blocked for the block duration even once tokens refill
	ok, info = rl.AllowIP("10.0.0.1")
	require.False(t, ok)
	require.Equal(t, LimitTypeBlocked, info.LimitType)
	require.Greater(t, info.RetryAfter, 1)

	ok, _ = rl.AllowIP("10.0.0.2")
	require.True(t, ok)

	stats := rl.GetStats()
	require.Equal(t, 2, stats.Clients)
	require.Equal(t, 1, stats.BlockedClients)
}

func TestTxLimitDoesNotBlockReads(t *testing.T) {
	rl := NewRateLimiter(testConfig())
	defer rl.Stop()

	ok, _ := rl.AllowTx("10.0.0.1")
	require.True(t, ok)
	ok, info := rl.AllowTx("10.0.0.1")
	require.False(t, ok)
	require.Equal(t, LimitTypeTx, info.LimitType)
	require.Equal(t, 1, info.RetryAfter)

	ok, _ = rl.AllowIP("10.0.0.1")
	require.True(t, ok)
	require.Zero(t, rl.GetStats().BlockedClients)
}

func TestSweepForgetsIdleClients(t *testing.T) {
	cfg := testConfig()
	cfg.IdleTTL = time.Second
	rl := NewRateLimiter(cfg)
	defer rl.Stop()

	rl.AllowIP("10.0.0.1")
	rl.AllowIP("10.0.0.2")
	rl.AllowIP("10.0.0.2")
	rl.AllowIP("10.0.0.2") // blocked for a minute

	rl.sweep(time.Now().Add(2 * time.Second))
	require.Equal(t, &Stats{Clients: 1, BlockedClients: 1}, rl.GetStats())
}

func TestRateLimitMiddleware(t *testing.T) {
	rl := NewRateLimiter(testConfig())
	defer rl.Stop()

	var hits []string
	rl.OnLimited = func(limitType string) { hits = append(hits, limitType) }

	handler := RateLimitMiddleware(rl)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = "192.0.2.1:5555"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
		if rec.Code == http.StatusTooManyRequests {
			require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			require.Equal(t, "60", rec.Header().Get("Retry-After"))
		}
	}
	require.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	require.Equal(t, []string{LimitTypeIP}, hits)
}

func TestGetClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:5555"
	require.Equal(t, "192.0.2.1", GetClientIP(req))

	req.Header.Set("X-Real-IP", "198.51.100.7")
	require.Equal(t, "198.51.100.7", GetClientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	require.Equal(t, "203.0.113.9", GetClientIP(req))
}
