package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/openalpha/yieldfund/app"
)

// FundHandler serves read only views of committed state
type FundHandler struct {
	app *app.FundApp
}

// NewFundHandler creates a new FundHandler
func NewFundHandler(fundApp *app.FundApp) *FundHandler {
	return &FundHandler{app: fundApp}
}

// RegisterRoutes registers the query routes. Every route that reads a
// controller or manager takes an optional ?instance= name or address.
func (h *FundHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/v1/overview", h.GetOverview).Methods(http.MethodGet)

	// Fund manager
	r.HandleFunc("/v1/fund", h.GetFund).Methods(http.MethodGet)
	r.HandleFunc("/v1/fund/accounts/{address}", h.GetAccount).Methods(http.MethodGet)

	// Fund controller
	r.HandleFunc("/v1/controller", h.GetController).Methods(http.MethodGet)
	r.HandleFunc("/v1/pools", h.GetPools).Methods(http.MethodGet)
	r.HandleFunc("/v1/pools/{poolId}", h.GetPool).Methods(http.MethodGet)

	// Simulation and base asset
	r.HandleFunc("/v1/markets", h.GetMarkets).Methods(http.MethodGet)
	r.HandleFunc("/v1/balances/{address}", h.GetBalance).Methods(http.MethodGet)
}

// GetOverview handles GET /v1/overview
func (h *FundHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.app.QueryOverview()
	if err != nil {
		writeFundError(w, err, http.StatusInternalServerError)
		return
	}
	WriteJSON(w, http.StatusOK, overview)
}

// GetFund handles GET /v1/fund
func (h *FundHandler) GetFund(w http.ResponseWriter, r *http.Request) {
	fund, err := h.app.QueryFund(r.URL.Query().Get("instance"))
	if err != nil {
		writeFundError(w, err, http.StatusInternalServerError)
		return
	}
	WriteJSON(w, http.StatusOK, fund)
}

// GetAccount handles GET /v1/fund/accounts/{address}
func (h *FundHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	account, err := h.app.QueryAccount(r.URL.Query().Get("instance"), mux.Vars(r)["address"])
	if err != nil {
		writeFundError(w, err, http.StatusInternalServerError)
		return
	}
	WriteJSON(w, http.StatusOK, account)
}

// GetController handles GET /v1/controller
func (h *FundHandler) GetController(w http.ResponseWriter, r *http.Request) {
	summary, err := h.app.QueryController(r.URL.Query().Get("instance"))
	if err != nil {
		writeFundError(w, err, http.StatusInternalServerError)
		return
	}
	WriteJSON(w, http.StatusOK, summary)
}

// GetPools handles GET /v1/pools
func (h *FundHandler) GetPools(w http.ResponseWriter, r *http.Request) {
	pools, err := h.app.QueryPools(r.URL.Query().Get("instance"))
	if err != nil {
		writeFundError(w, err, http.StatusInternalServerError)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"pools": pools,
		"total": len(pools),
	})
}

// GetPool handles GET /v1/pools/{poolId}
func (h *FundHandler) GetPool(w http.ResponseWriter, r *http.Request) {
	poolID, err := strconv.ParseUint(mux.Vars(r)["poolId"], 10, 64)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "pool id must be an unsigned integer")
		return
	}

	pool, err := h.app.QueryPool(r.URL.Query().Get("instance"), poolID)
	if err != nil {
		writeFundError(w, err, http.StatusInternalServerError)
		return
	}
	WriteJSON(w, http.StatusOK, pool)
}

// GetMarkets handles GET /v1/markets
func (h *FundHandler) GetMarkets(w http.ResponseWriter, r *http.Request) {
	markets, err := h.app.QueryMarkets()
	if err != nil {
		writeFundError(w, err, http.StatusInternalServerError)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"markets": markets,
	})
}

// GetBalance handles GET /v1/balances/{address}
func (h *FundHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["address"]
	balance, err := h.app.QueryBalance(address)
	if err != nil {
		writeFundError(w, err, http.StatusInternalServerError)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"address": address,
		"denom":   h.app.Config().BaseDenom,
		"amount":  balance.String(),
	})
}
