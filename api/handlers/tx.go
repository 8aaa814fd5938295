package handlers

import (
	"io"
	"net/http"

	"cosmossdk.io/log"
	"github.com/gorilla/mux"

	"github.com/openalpha/yieldfund/app"
	"github.com/openalpha/yieldfund/metrics"
)

// maxTxBodyBytes bounds a message body
const maxTxBodyBytes = 64 << 10

// Publisher fans committed messages out to subscribers and returns the
// receipt id it published under.
type Publisher interface {
	BroadcastTx(res *app.TxResult) string
}

// TxResponse is returned for a committed message
type TxResponse struct {
	ReceiptID string `json:"receipt_id"`
	*app.TxResult
}

// TxHandler submits messages to the app
type TxHandler struct {
	app       *app.FundApp
	metrics   *metrics.Collector
	publisher Publisher
	logger    log.Logger

	routes map[string]map[string]bool
}

// NewTxHandler creates a new TxHandler. collector and publisher may be nil.
func NewTxHandler(fundApp *app.FundApp, collector *metrics.Collector, publisher Publisher, logger log.Logger) *TxHandler {
	routes := make(map[string]map[string]bool)
	for module, msgs := range app.Routes() {
		routes[module] = make(map[string]bool, len(msgs))
		for _, msg := range msgs {
			routes[module][msg] = true
		}
	}
	return &TxHandler{
		app:       fundApp,
		metrics:   collector,
		publisher: publisher,
		logger:    logger.With("module", "api"),
		routes:    routes,
	}
}

// RegisterRoutes registers the read only routes. The caller mounts Submit
// behind the message rate limiter.
func (h *TxHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/v1/routes", h.GetRoutes).Methods(http.MethodGet)
}

// GetRoutes handles GET /v1/routes
func (h *TxHandler) GetRoutes(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"routes": app.Routes(),
	})
}

// Submit handles POST /v1/tx/{module}/{msg}?instance=. The request body is
// the JSON encoded message.
func (h *TxHandler) Submit(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	req := app.TxRequest{
		Module:   vars["module"],
		Msg:      vars["msg"],
		Instance: r.URL.Query().Get("instance"),
	}
	if !h.routes[req.Module][req.Msg] {
		WriteError(w, http.StatusNotFound, "unknown message "+req.Module+"/"+req.Msg)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxTxBodyBytes+1))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "failed to read body")
		return
	}
	if len(body) > maxTxBodyBytes {
		WriteError(w, http.StatusRequestEntityTooLarge, "message body too large")
		return
	}
	req.Body = body

	timer := metrics.NewTimer()
	res, err := h.app.DeliverTx(req)
	if h.metrics != nil {
		h.metrics.ObserveTx(req, res, err, timer.ElapsedMs())
	}
	if err != nil {
		writeFundError(w, err, http.StatusBadRequest)
		return
	}

	resp := TxResponse{TxResult: res}
	if h.publisher != nil {
		resp.ReceiptID = h.publisher.BroadcastTx(res)
	}
	h.logger.Info("Message committed",
		"module", res.Module, "msg", res.Msg, "instance", res.Instance,
		"height", res.Height, "receipt", resp.ReceiptID)
	WriteJSON(w, http.StatusOK, resp)
}
