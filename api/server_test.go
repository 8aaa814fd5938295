package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"cosmossdk.io/log"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/openalpha/yieldfund/api"
	"github.com/openalpha/yieldfund/api/handlers"
	"github.com/openalpha/yieldfund/api/middleware"
	"github.com/openalpha/yieldfund/app"
	"github.com/openalpha/yieldfund/metrics"
	fundtestutil "github.com/openalpha/yieldfund/testutil"
	fundtypes "github.com/openalpha/yieldfund/types"
	fctypes "github.com/openalpha/yieldfund/x/fundcontroller/types"
	fmtypes "github.com/openalpha/yieldfund/x/fundmanager/types"
)

type harness struct {
	f       *fundtestutil.Fixture
	metrics *metrics.Collector
	handler http.Handler
}

func newHarness(t *testing.T, mutate func(*api.Config)) *harness {
	t.Helper()
	f := fundtestutil.Setup(t)
	collector := metrics.NewCollector()

	cfg := api.DefaultConfig()
	cfg.DisableRateLimit = true
	if mutate != nil {
		mutate(cfg)
	}
	srv := api.NewServer(cfg, f.App, collector, log.NewNopLogger())
	return &harness{f: f, metrics: collector, handler: srv.Handler()}
}

func (h *harness) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		bz, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(bz)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.RemoteAddr = "192.0.2.10:40000"
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	h := newHarness(t, nil)

	rec := h.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	health := decode[map[string]any](t, rec)
	require.Equal(t, "healthy", health["status"])
	require.Equal(t, true, health["initialized"])
}

func TestSubmitDepositThenQuery(t *testing.T) {
	h := newHarness(t, nil)
	alice := h.f.Alice
	height := h.f.App.Height()

	rec := h.do(t, http.MethodPost, "/v1/tx/fundmanager/deposit",
		fmtypes.MsgDeposit{Depositor: alice, Amount: fundtypes.Units(5).String()})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	tx := decode[map[string]any](t, rec)
	require.NotEmpty(t, tx["receipt_id"])
	require.Equal(t, "fundmanager-v1", tx["instance"])
	require.Equal(t, float64(height+1), tx["height"])
	require.Equal(t, fundtypes.Units(5).String(), tx["response"].(map[string]any)["shares"])

	rec = h.do(t, http.MethodGet, "/v1/fund", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	fund := decode[map[string]any](t, rec)
	require.Equal(t, fundtypes.Units(5).String(), fund["fund_balance"])
	require.Equal(t, fundtypes.Units(5).String(), fund["total_shares"])

	rec = h.do(t, http.MethodGet, "/v1/fund/accounts/"+alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	account := decode[map[string]any](t, rec)
	require.Equal(t, fundtypes.Units(5).String(), account["shares"])
	require.Equal(t, fundtypes.Units(5).String(), account["balance"])

	rec = h.do(t, http.MethodGet, "/v1/controller", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, fundtypes.Units(5).String(), decode[map[string]any](t, rec)["idle"])

	rec = h.do(t, http.MethodGet, "/v1/balances/"+alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	balance := decode[map[string]string](t, rec)
	require.Equal(t, fundtestutil.GenesisFunding.Sub(fundtypes.Units(5)).String(), balance["amount"])
	require.Equal(t, h.f.BaseDenom(), balance["denom"])

	require.Equal(t, 5.0, testutil.ToFloat64(h.metrics.DepositedTotal.WithLabelValues("fundmanager-v1")))
	require.Equal(t, 1.0, testutil.ToFloat64(h.metrics.APIRequestsTotal.WithLabelValues(
		http.MethodPost, "/v1/tx/{module}/{msg}", "200")))
}

func TestPoolsAndMarkets(t *testing.T) {
	h := newHarness(t, nil)

	rec := h.do(t, http.MethodGet, "/v1/pools", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 7.0, decode[map[string]any](t, rec)["total"])

	rec = h.do(t, http.MethodGet, "/v1/pools/"+strconv.FormatUint(fctypes.PoolIDCompound, 10), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	pool := decode[map[string]any](t, rec)
	require.Equal(t, string(fctypes.VenueCompound), pool["pool"].(map[string]any)["venue"])

	rec = h.do(t, http.MethodGet, "/v1/pools/999999", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, string(fundtypes.CategoryValidation), decode[handlers.ErrorResponse](t, rec).Category)

	rec = h.do(t, http.MethodGet, "/v1/pools/compound", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = h.do(t, http.MethodGet, "/v1/pools?instance=fundcontroller-v9", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = h.do(t, http.MethodGet, "/v1/markets", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decode[map[string][]any](t, rec)["markets"], 7)

	rec = h.do(t, http.MethodGet, "/v1/routes", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	routes := decode[map[string]map[string][]string](t, rec)["routes"]
	require.Contains(t, routes[fmtypes.ModuleName], fmtypes.TypeMsgUpgradeFundManager)
}

func TestSubmitErrorsMapToStatus(t *testing.T) {
	h := newHarness(t, nil)
	f := h.f

	tests := []struct {
		name     string
		path     string
		body     any
		status   int
		category fundtypes.ErrorCategory
	}{
		{
			name:   "unknown message",
			path:   "/v1/tx/fundmanager/liquidate",
			body:   map[string]string{},
			status: http.StatusNotFound,
		},
		{
			name:     "missing role",
			path:     "/v1/tx/fundmanager/set_interest_fee_rate",
			body:     fmtypes.MsgSetInterestFeeRate{Owner: f.Alice, RateBps: 100},
			status:   http.StatusForbidden,
			category: fundtypes.CategoryAuthorization,
		},
		{
			name:     "bad address",
			path:     "/v1/tx/fundmanager/deposit",
			body:     fmtypes.MsgDeposit{Depositor: "alice", Amount: "1"},
			status:   http.StatusBadRequest,
			category: fundtypes.CategoryValidation,
		},
		{
			name:     "no shares",
			path:     "/v1/tx/fundmanager/withdraw",
			body:     fmtypes.MsgWithdraw{Withdrawer: f.Bob, Amount: "1"},
			status:   http.StatusBadRequest,
			category: fundtypes.CategoryValidation,
		},
		{
			name:     "invalid fee rate",
			path:     "/v1/tx/fundmanager/set_interest_fee_rate",
			body:     fmtypes.MsgSetInterestFeeRate{Owner: f.Owner, RateBps: 10_001},
			status:   http.StatusBadRequest,
			category: fundtypes.CategoryValidation,
		},
		{
			name:     "unknown instance",
			path:     "/v1/tx/fundmanager/deposit?instance=fundmanager-v9",
			body:     fmtypes.MsgDeposit{Depositor: f.Alice, Amount: "1"},
			status:   http.StatusNotFound,
			category: fundtypes.CategoryValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			height := f.App.Height()
			rec := h.do(t, http.MethodPost, tt.path, tt.body)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			require.Equal(t, string(tt.category), decode[handlers.ErrorResponse](t, rec).Category)
			require.Equal(t, height, f.App.Height())
		})
	}

	rec := h.do(t, http.MethodPost, "/v1/tx/fundmanager/deposit?instance=fundmanager-v9",
		fmtypes.MsgDeposit{Depositor: f.Alice, Amount: "1"})
	resp := decode[handlers.ErrorResponse](t, rec)
	require.Equal(t, fmtypes.ModuleName, resp.Codespace)
	require.Equal(t, uint32(5), resp.Code)

	require.Equal(t, 1.0, testutil.ToFloat64(h.metrics.TxTotal.WithLabelValues(
		fmtypes.ModuleName, fmtypes.TypeMsgSetInterestFeeRate, "rejected", string(fundtypes.CategoryAuthorization))))
}

func TestAccountLimitIsUnprocessable(t *testing.T) {
	h := newHarness(t, nil)
	f := h.f

	rec := h.do(t, http.MethodPost, "/v1/tx/fundmanager/set_default_account_balance_limit",
		fmtypes.MsgSetDefaultAccountBalanceLimit{Owner: f.Owner, Limit: fundtypes.Units(1).String()})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = h.do(t, http.MethodPost, "/v1/tx/fundmanager/deposit",
		fmtypes.MsgDeposit{Depositor: f.Alice, Amount: fundtypes.Units(2).String()})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Equal(t, string(fundtypes.CategoryLimitExceeded), decode[handlers.ErrorResponse](t, rec).Category)
}

func TestMethodAndPathErrors(t *testing.T) {
	h := newHarness(t, nil)

	rec := h.do(t, http.MethodGet, "/v1/tx/fundmanager/deposit", nil)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = h.do(t, http.MethodGet, "/v1/orders", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = h.do(t, http.MethodOptions, "/v1/fund", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	h := newHarness(t, nil)
	require.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/v1/overview", nil).Code)

	rec := h.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, strings.Contains(rec.Body.String(), "yieldfund_api_requests_total"))
}

func TestSubmitRateLimit(t *testing.T) {
	h := newHarness(t, func(cfg *api.Config) {
		cfg.DisableRateLimit = false
		cfg.RateLimit = middleware.DefaultRateLimitConfig()
		cfg.RateLimit.TxPerSecond = 1
		cfg.RateLimit.TxBurst = 1
	})
	f := h.f

	rec := h.do(t, http.MethodPost, "/v1/tx/fundmanager/checkpoint_interest",
		fmtypes.MsgCheckpointInterest{Sender: f.Rebalancer})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = h.do(t, http.MethodPost, "/v1/tx/fundmanager/checkpoint_interest",
		fmtypes.MsgCheckpointInterest{Sender: f.Rebalancer})
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	// reads are limited separately
	require.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/v1/fund", nil).Code)
	require.Equal(t, 1.0, testutil.ToFloat64(h.metrics.RateLimitHits.WithLabelValues(middleware.LimitTypeTx)))
}

func TestConfigFromApp(t *testing.T) {
	cfg := api.ConfigFromApp(appAPIConfig("0.0.0.0:1317", 5, 10))
	require.Equal(t, "0.0.0.0:1317", cfg.Listen)
	require.Equal(t, 5, cfg.RateLimit.IPRequestsPerSecond)
	require.Equal(t, 10, cfg.RateLimit.IPBurst)
	require.False(t, cfg.DisableRateLimit)

	require.True(t, api.ConfigFromApp(appAPIConfig("", -1, 0)).DisableRateLimit)
}

func appAPIConfig(listen string, rate, burst int) app.APIConfig {
	return app.APIConfig{Listen: listen, RateLimit: rate, Burst: burst}
}
