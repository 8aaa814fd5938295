package api

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"cosmossdk.io/log"
	"github.com/gorilla/mux"

	"github.com/openalpha/yieldfund/api/handlers"
	"github.com/openalpha/yieldfund/api/middleware"
	"github.com/openalpha/yieldfund/api/websocket"
	"github.com/openalpha/yieldfund/app"
	"github.com/openalpha/yieldfund/metrics"
)

// Server represents the API server
type Server struct {
	httpServer *http.Server
	router     *mux.Router
	config     *Config
	logger     log.Logger

	app     *app.FundApp
	metrics *metrics.Collector
	hub     *websocket.Hub

	fundHandler *handlers.FundHandler
	txHandler   *handlers.TxHandler

	rateLimiter *middleware.RateLimiter
}

// Config contains server configuration
type Config struct {
	Listen           string
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	DisableRateLimit bool // For testing purposes
	RateLimit        *middleware.RateLimitConfig
	Hub              *websocket.HubConfig
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Listen:       "127.0.0.1:8080",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		RateLimit:    middleware.DefaultRateLimitConfig(),
		Hub:          websocket.DefaultHubConfig(),
	}
}

// ConfigFromApp derives the server configuration from the node config
func ConfigFromApp(cfg app.APIConfig) *Config {
	config := DefaultConfig()
	if cfg.Listen != "" {
		config.Listen = cfg.Listen
	}
	if cfg.RateLimit > 0 {
		config.RateLimit.IPRequestsPerSecond = cfg.RateLimit
	}
	if cfg.Burst > 0 {
		config.RateLimit.IPBurst = cfg.Burst
	}
	config.DisableRateLimit = cfg.RateLimit < 0
	return config
}

// NewServer creates a new API server. collector may be nil.
func NewServer(config *Config, fundApp *app.FundApp, collector *metrics.Collector, logger log.Logger) *Server {
	if config == nil {
		config = DefaultConfig()
	}

	s := &Server{
		config:  config,
		logger:  logger.With("module", "api"),
		app:     fundApp,
		metrics: collector,
		hub:     websocket.NewHub(config.Hub, collector, logger),
	}
	s.fundHandler = handlers.NewFundHandler(fundApp)
	s.txHandler = handlers.NewTxHandler(fundApp, collector, s.hub, logger)

	if !config.DisableRateLimit {
		s.rateLimiter = middleware.NewRateLimiter(config.RateLimit)
		if collector != nil {
			s.rateLimiter.OnLimited = collector.RecordRateLimitHit
		}
	}

	s.router = s.routes()
	return s
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.fundHandler.RegisterRoutes(r)
	s.txHandler.RegisterRoutes(r)

	var submit http.Handler = http.HandlerFunc(s.txHandler.Submit)
	if s.rateLimiter != nil {
		submit = middleware.TxRateLimitMiddleware(s.rateLimiter)(submit)
	}
	r.Handle("/v1/tx/{module}/{msg}", submit).Methods(http.MethodPost)

	r.HandleFunc("/ws", s.hub.ServeWS)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)
	}

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Use(s.instrument)
	return r
}

// Handler returns the router wrapped in the middleware chain:
// CORS -> RateLimit -> router
func (s *Server) Handler() http.Handler {
	var handler http.Handler = s.router
	if s.rateLimiter != nil {
		handler = middleware.RateLimitMiddleware(s.rateLimiter)(handler)
	}
	return corsMiddleware(handler)
}

// Hub returns the websocket hub
func (s *Server) Hub() *websocket.Hub {
	return s.hub
}

// Run serves until ctx is done and then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	hubCtx, stopHub := context.WithCancel(ctx)
	defer stopHub()
	go s.hub.Run(hubCtx)

	s.httpServer = &http.Server{
		Addr:         s.config.Listen,
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("API server starting", "listen", s.config.Listen, "rate_limit", s.rateLimiter != nil)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.stopLimiter()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("api server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := s.httpServer.Shutdown(shutdownCtx)
	s.stopLimiter()
	s.logger.Info("API server stopped")
	return err
}

func (s *Server) stopLimiter() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	handlers.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().Unix(),
		"height":      s.app.Height(),
		"initialized": s.app.Initialized(),
		"ws_clients":  s.hub.SubscriberCount(),
	})
}

// instrument records request counts and latency by route template
func (s *Server) instrument(next http.Handler) http.Handler {
	if s.metrics == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		timer := metrics.NewTimer()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		path := "unmatched"
		if route := mux.CurrentRoute(r); route != nil {
			if tmpl, err := route.GetPathTemplate(); err == nil {
				path = tmpl
			}
		}
		s.metrics.RecordAPIRequest(r.Method, path, strconv.Itoa(rec.status), timer.ElapsedMs())
	})
}

// statusRecorder captures the status code. It passes Hijack through so the
// websocket upgrade still works.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	r.status = http.StatusSwitchingProtocols
	return h.Hijack()
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
