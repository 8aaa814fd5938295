package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"cosmossdk.io/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/openalpha/yieldfund/api/middleware"
	"github.com/openalpha/yieldfund/app"
	"github.com/openalpha/yieldfund/metrics"
)

// Channel names. Every committed message is published on ChannelTx, on
// ChannelTx:<module> and on ChannelInstance:<instance name>.
const (
	ChannelTx       = "tx"
	ChannelInstance = "instance"
)

// HubConfig contains hub configuration
type HubConfig struct {
	MaxClientsPerIP  int
	MaxSubscriptions int

	// Commands per second per subscriber
	MessageRateLimit int
}

// DefaultHubConfig returns default hub configuration
func DefaultHubConfig() *HubConfig {
	return &HubConfig{
		MaxClientsPerIP:  10,
		MaxSubscriptions: 50,
		MessageRateLimit: 100,
	}
}

// Hub fans committed message receipts out to websocket subscribers
type Hub struct {
	config  *HubConfig
	metrics *metrics.Collector
	logger  log.Logger

	mu          sync.RWMutex
	subscribers map[*Subscriber]struct{}
	channels    map[string]map[*Subscriber]struct{}
	perIP       map[string]int
	closed      bool
}

// NewHub creates a new Hub. collector may be nil.
func NewHub(config *HubConfig, collector *metrics.Collector, logger log.Logger) *Hub {
	if config == nil {
		config = DefaultHubConfig()
	}
	return &Hub{
		config:      config,
		metrics:     collector,
		logger:      logger.With("module", "websocket"),
		subscribers: make(map[*Subscriber]struct{}),
		channels:    make(map[string]map[*Subscriber]struct{}),
		perIP:       make(map[string]int),
	}
}

// Run blocks until ctx is done, then disconnects every subscriber and
// refuses new ones.
func (h *Hub) Run(ctx context.Context) {
	<-ctx.Done()

	h.mu.Lock()
	h.closed = true
	for s := range h.subscribers {
		h.dropLocked(s)
	}
	h.mu.Unlock()
}

// admit registers s unless the hub is closed or s's IP is at its cap
func (h *Hub) admit(s *Subscriber) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed || h.perIP[s.ip] >= h.config.MaxClientsPerIP {
		return false
	}
	h.subscribers[s] = struct{}{}
	h.perIP[s.ip]++
	if h.metrics != nil {
		h.metrics.RecordWSConnection(1)
	}
	return true
}

// leave drops s. It is safe to call more than once.
func (h *Hub) leave(s *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropLocked(s)
}

func (h *Hub) dropLocked(s *Subscriber) {
	if _, ok := h.subscribers[s]; !ok {
		return
	}
	delete(h.subscribers, s)
	for channel := range h.channels {
		h.removeLocked(s, channel)
	}
	if h.perIP[s.ip]--; h.perIP[s.ip] <= 0 {
		delete(h.perIP, s.ip)
	}
	close(s.outbox)
	if h.metrics != nil {
		h.metrics.RecordWSConnection(-1)
	}
}

func (h *Hub) join(s *Subscriber, channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subscribers[s]; !ok {
		return
	}
	members, ok := h.channels[channel]
	if !ok {
		members = make(map[*Subscriber]struct{})
		h.channels[channel] = members
	}
	members[s] = struct{}{}
	s.enqueue(encode(&WSMessage{Type: "subscribed", Channel: channel}))
}

func (h *Hub) part(s *Subscriber, channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subscribers[s]; !ok {
		return
	}
	h.removeLocked(s, channel)
	s.enqueue(encode(&WSMessage{Type: "unsubscribed", Channel: channel}))
}

func (h *Hub) removeLocked(s *Subscriber, channel string) {
	members := h.channels[channel]
	delete(members, s)
	if len(members) == 0 {
		delete(h.channels, channel)
	}
}

// Publish sends msg to every subscriber of channel. Subscribers with a full
// outbox miss it.
func (h *Hub) Publish(channel string, msg *WSMessage) {
	frame := encode(msg)
	if frame == nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	members, ok := h.channels[channel]
	if !ok {
		return
	}
	for s := range members {
		s.enqueue(frame)
	}
	if h.metrics != nil {
		h.metrics.RecordWSMessage(channelKind(channel))
	}
}

// BroadcastTx publishes a committed message and returns its receipt id
func (h *Hub) BroadcastTx(res *app.TxResult) string {
	receipt := &TxMessage{ReceiptID: uuid.NewString(), TxResult: res}

	channels := []string{ChannelTx, ChannelTx + ":" + res.Module}
	if res.Instance != "" {
		channels = append(channels, ChannelInstance+":"+res.Instance)
	}
	for _, channel := range channels {
		h.Publish(channel, &WSMessage{Type: "tx", Channel: channel, Data: receipt})
	}
	return receipt.ReceiptID
}

// ValidChannel reports whether a channel name can be subscribed to
func ValidChannel(channel string) bool {
	if channel == ChannelTx {
		return true
	}
	kind, rest, ok := strings.Cut(channel, ":")
	if !ok || rest == "" {
		return false
	}
	return kind == ChannelTx || kind == ChannelInstance
}

// channelKind strips the channel argument so metric labels stay bounded
func channelKind(channel string) string {
	kind, _, _ := strings.Cut(channel, ":")
	return kind
}

// WSMessage is a frame sent to subscribers
type WSMessage struct {
	Type    string      `json:"type"`
	Channel string      `json:"channel,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// TxMessage is a committed message as published to subscribers
type TxMessage struct {
	ReceiptID string `json:"receipt_id"`
	*app.TxResult
}

func encode(msg *WSMessage) []byte {
	frame, err := json.Marshal(msg)
	if err != nil {
		return nil
	}
	return frame
}

// SubscriberCount returns the number of connected subscribers
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// ChannelCount returns the number of subscribers of channel
func (h *Hub) ChannelCount(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels[channel])
}

// ServeWS upgrades the request and attaches a subscriber. An IP at its
// connection cap gets 429 before the upgrade.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	ip := middleware.GetClientIP(r)

	h.mu.RLock()
	full := h.closed || h.perIP[ip] >= h.config.MaxClientsPerIP
	h.mu.RUnlock()
	if full {
		http.Error(w, "too many connections", http.StatusTooManyRequests)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("Upgrade failed", "ip", ip, "error", err)
		return
	}

	id := r.URL.Query().Get("client_id")
	if id == "" {
		id = uuid.NewString()
	}
	s := newSubscriber(h, conn, id, ip)
	if !h.admit(s) {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "too many connections"),
			time.Now().Add(writeWait))
		_ = conn.Close()
		return
	}

	go s.writeLoop()
	go s.readLoop()
}
