package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric the node exports.
const Namespace = "yieldfund"

// Collector holds the event driven metrics of a node. Balances are read at
// scrape time by FundCollector instead.
type Collector struct {
	// Message metrics
	TxTotal   *prometheus.CounterVec
	TxLatency *prometheus.HistogramVec

	// Fund flow metrics
	DepositedTotal  *prometheus.CounterVec
	WithdrawnTotal  *prometheus.CounterVec
	MigrationsTotal *prometheus.CounterVec

	// WebSocket metrics
	WSConnectionsActive prometheus.Gauge
	WSMessagesTotal     *prometheus.CounterVec

	// API metrics
	APIRequestsTotal  *prometheus.CounterVec
	APIRequestLatency *prometheus.HistogramVec
	RateLimitHits     *prometheus.CounterVec

	// System metrics
	BlockHeight prometheus.Gauge

	registry *prometheus.Registry
}

// NewCollector creates the node metrics on a fresh registry that also
// carries the Go runtime and process collectors.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	counter := func(subsystem, name, help string, labels ...string) *prometheus.CounterVec {
		return factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace, Subsystem: subsystem, Name: name, Help: help,
		}, labels)
	}
	histogram := func(subsystem, help string, buckets []float64, labels ...string) *prometheus.HistogramVec {
		return factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace, Subsystem: subsystem, Name: "latency_ms", Help: help, Buckets: buckets,
		}, labels)
	}

	return &Collector{
		registry: reg,

		TxTotal: counter("tx", "total", "Messages delivered, by outcome and error category",
			"module", "msg", "outcome", "category"),
		TxLatency: histogram("tx", "Message execution latency in milliseconds",
			[]float64{0.5, 1, 2, 5, 10, 25, 50, 100, 250}, "module", "msg"),

		DepositedTotal: counter("fund", "deposited_units_total",
			"Base asset deposited through a manager, in whole units", "manager"),
		WithdrawnTotal: counter("fund", "withdrawn_units_total",
			"Base asset withdrawn through a manager, in whole units", "manager"),
		MigrationsTotal: counter("fund", "migrations_total",
			"Completed controller and manager upgrades", "module"),

		WSConnectionsActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace, Subsystem: "websocket", Name: "subscribers",
			Help: "Connected receipt feed subscribers",
		}),
		WSMessagesTotal: counter("websocket", "published_total",
			"Receipts published, by channel kind", "channel"),

		APIRequestsTotal: counter("api", "requests_total",
			"HTTP requests by route template and status", "method", "path", "status"),
		APIRequestLatency: histogram("api", "HTTP request latency in milliseconds",
			[]float64{1, 5, 10, 25, 50, 100, 250, 500}, "method", "path"),
		RateLimitHits: counter("api", "rate_limited_total",
			"Requests refused by the rate limiter", "limit_type"),

		BlockHeight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace, Name: "height", Help: "Last committed height",
		}),
	}
}

// Register adds an extra collector, such as a FundCollector, to the registry.
func (c *Collector) Register(extra prometheus.Collector) error {
	return c.registry.Register(extra)
}

// Registry exposes the underlying registry
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// RecordTx records a delivered message. category is empty on success.
func (c *Collector) RecordTx(module, msg string, err error, category string, latencyMs float64) {
	outcome := "committed"
	if err != nil {
		outcome = "rejected"
	}
	c.TxTotal.WithLabelValues(module, msg, outcome, category).Inc()
	c.TxLatency.WithLabelValues(module, msg).Observe(latencyMs)
}

// RecordDeposit records base asset entering a manager
func (c *Collector) RecordDeposit(manager string, units float64) {
	c.DepositedTotal.WithLabelValues(manager).Add(units)
}

// RecordWithdrawal records base asset leaving a manager
func (c *Collector) RecordWithdrawal(manager string, units float64) {
	c.WithdrawnTotal.WithLabelValues(manager).Add(units)
}

// RecordMigration records a completed upgrade
func (c *Collector) RecordMigration(module string) {
	c.MigrationsTotal.WithLabelValues(module).Inc()
}

// RecordAPIRequest records a served request under its route template
func (c *Collector) RecordAPIRequest(method, path, status string, latencyMs float64) {
	c.APIRequestsTotal.WithLabelValues(method, path, status).Inc()
	c.APIRequestLatency.WithLabelValues(method, path).Observe(latencyMs)
}

// RecordRateLimitHit records a request rejected by the limiter
func (c *Collector) RecordRateLimitHit(limitType string) {
	c.RateLimitHits.WithLabelValues(limitType).Inc()
}

// RecordWSConnection tracks subscribers joining (+1) and leaving (-1)
func (c *Collector) RecordWSConnection(delta int) {
	c.WSConnectionsActive.Add(float64(delta))
}

// RecordWSMessage counts a receipt published on a channel kind
func (c *Collector) RecordWSMessage(channel string) {
	c.WSMessagesTotal.WithLabelValues(channel).Inc()
}

// UpdateBlockHeight sets the last committed height
func (c *Collector) UpdateBlockHeight(height int64) {
	c.BlockHeight.Set(float64(height))
}

// Handler returns the Prometheus HTTP handler for this collector's registry
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Timer measures one operation for the latency histograms
type Timer time.Time

// NewTimer starts a timer
func NewTimer() Timer { return Timer(time.Now()) }

// ElapsedMs is the time since the timer started, in milliseconds
func (t Timer) ElapsedMs() float64 {
	return float64(time.Since(time.Time(t))) / float64(time.Millisecond)
}
