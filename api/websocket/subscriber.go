package websocket

import (
	"encoding/json"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxCommandSize = 4096
	outboxSize     = 256
)

// Commands a subscriber may send
const (
	OpSubscribe   = "subscribe"
	OpUnsubscribe = "unsubscribe"
	OpPing        = "ping"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The feed is public and read only.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Command is a frame sent by a subscriber
type Command struct {
	Op      string `json:"action"`
	Channel string `json:"channel,omitempty"`
}

// Subscriber is one websocket connection to the receipt feed
type Subscriber struct {
	hub    *Hub
	conn   *websocket.Conn
	outbox chan []byte

	id          string
	ip          string
	connectedAt time.Time

	// commands is only touched by the read loop
	commands *rate.Limiter

	mu       sync.Mutex
	channels map[string]struct{}
}

func newSubscriber(hub *Hub, conn *websocket.Conn, id, ip string) *Subscriber {
	perSecond := hub.config.MessageRateLimit
	return &Subscriber{
		hub:         hub,
		conn:        conn,
		outbox:      make(chan []byte, outboxSize),
		id:          id,
		ip:          ip,
		connectedAt: time.Now(),
		commands:    rate.NewLimiter(rate.Limit(perSecond), perSecond),
		channels:    make(map[string]struct{}),
	}
}

// Channels returns the subscribed channels in order
func (s *Subscriber) Channels() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.channels))
	for channel := range s.channels {
		out = append(out, channel)
	}
	sort.Strings(out)
	return out
}

// Connected returns how long the subscriber has been connected
func (s *Subscriber) Connected() time.Duration {
	return time.Since(s.connectedAt)
}

// readLoop decodes commands until the connection drops, then hands the
// subscriber back to the hub.
func (s *Subscriber) readLoop() {
	defer func() {
		s.hub.leave(s)
		_ = s.conn.Close()
		s.hub.logger.Debug("Subscriber left", "id", s.id, "ip", s.ip,
			"connected", s.Connected(), "channels", s.Channels())
	}()

	s.conn.SetReadLimit(maxCommandSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, frame, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.hub.logger.Debug("Subscriber dropped", "id", s.id, "error", err)
			}
			return
		}
		if !s.commands.Allow() {
			s.fail("rate_limit_exceeded", "Too many messages, please slow down")
			continue
		}

		var cmd Command
		if err := json.Unmarshal(frame, &cmd); err != nil {
			s.fail("invalid_message", "Failed to parse message")
			continue
		}
		s.dispatch(cmd)
	}
}

// writeLoop drains the outbox and keeps the connection alive with pings.
// It exits when the hub closes the outbox.
func (s *Subscriber) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	for {
		var (
			kind  = websocket.TextMessage
			frame []byte
			ok    = true
		)
		select {
		case frame, ok = <-s.outbox:
			if !ok {
				kind = websocket.CloseMessage
			}
		case <-ticker.C:
			kind = websocket.PingMessage
		}

		_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := s.conn.WriteMessage(kind, frame); err != nil || !ok {
			return
		}
	}
}

func (s *Subscriber) dispatch(cmd Command) {
	switch cmd.Op {
	case OpSubscribe:
		if !ValidChannel(cmd.Channel) {
			s.fail("invalid_channel", "Unknown channel: "+cmd.Channel)
			return
		}
		if !s.track(cmd.Channel) {
			s.fail("subscription_limit", "Maximum subscription limit reached")
			return
		}
		s.hub.join(s, cmd.Channel)
	case OpUnsubscribe:
		s.mu.Lock()
		delete(s.channels, cmd.Channel)
		s.mu.Unlock()
		s.hub.part(s, cmd.Channel)
	case OpPing:
		s.reply(&WSMessage{Type: "pong", Data: map[string]int64{"timestamp": time.Now().UnixMilli()}})
	default:
		s.fail("unknown_action", "Unknown action: "+cmd.Op)
	}
}

// track records channel unless the subscription cap is reached
func (s *Subscriber) track(channel string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.channels[channel]; ok {
		return true
	}
	if len(s.channels) >= s.hub.config.MaxSubscriptions {
		return false
	}
	s.channels[channel] = struct{}{}
	return true
}

func (s *Subscriber) fail(code, message string) {
	s.reply(&WSMessage{Type: "error", Data: map[string]string{"code": code, "message": message}})
}

// reply answers the subscriber unless the hub already dropped it
func (s *Subscriber) reply(msg *WSMessage) {
	s.hub.mu.RLock()
	defer s.hub.mu.RUnlock()
	if _, ok := s.hub.subscribers[s]; ok {
		s.enqueue(encode(msg))
	}
}

// enqueue drops the frame when the outbox is full. Callers hold the hub
// lock so the outbox cannot be closed underneath them.
func (s *Subscriber) enqueue(frame []byte) {
	if frame == nil {
		return
	}
	select {
	case s.outbox <- frame:
	default:
	}
}
