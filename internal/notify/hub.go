package notify

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"nandighosh/internal/domain/models"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	readLimit    = 1024
	readTimeout  = 60 * time.Second
	pingPeriod   = (readTimeout * 9) / 10
	writeTimeout = 5 * time.Second
)

type client struct {
	conn *websocket.Conn
	wmu  sync.Mutex

	done chan struct{}
	once sync.Once
}

func (c *client) stop() {
	c.once.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

// Hub streams notifications to the open pages of a session over
// WebSocket. One session may have several tabs connected.
type Hub struct {
	upgrader websocket.Upgrader
	log      *zerolog.Logger

	// pingPeriod must stay below readTimeout or idle pages get dropped.
	readTimeout time.Duration
	pingPeriod  time.Duration

	mu    sync.RWMutex
	conns map[string]map[*client]struct{}
}

// NewHub builds a hub. checkOrigin may be nil to accept same-host pages only.
func NewHub(log *zerolog.Logger, checkOrigin func(r *http.Request) bool) *Hub {
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	return &Hub{
		upgrader:    websocket.Upgrader{CheckOrigin: checkOrigin},
		log:         log,
		readTimeout: readTimeout,
		pingPeriod:  pingPeriod,
		conns:       make(map[string]map[*client]struct{}),
	}
}

// Serve upgrades the request and registers the connection under
// sessionID. Notifications waiting in backlog are drained and sent
// first; anything published meanwhile follows them. Serve returns once
// the backlog is written; reading and pinging run on their own
// goroutines until the peer goes away.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, sessionID string, backlog *Feed) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Str("session", sessionID).Msg("notification ws upgrade failed")
		return err
	}
	c := &client{conn: conn, done: make(chan struct{})}

	c.wmu.Lock()
	h.mu.Lock()
	set, ok := h.conns[sessionID]
	if !ok {
		set = make(map[*client]struct{})
		h.conns[sessionID] = set
	}
	set[c] = struct{}{}
	h.mu.Unlock()

	if backlog != nil {
		for _, n := range backlog.Drain() {
			if payload, err := json.Marshal(n); err == nil {
				_ = h.writeLocked(c, websocket.TextMessage, payload)
			}
		}
	}
	c.wmu.Unlock()

	go h.readLoop(sessionID, c)
	go h.pingLoop(sessionID, c)
	return nil
}

func (h *Hub) readLoop(sessionID string, c *client) {
	defer h.remove(sessionID, c)

	conn := c.conn
	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(h.readTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(h.readTimeout))
	})

	for {
		mt, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(h.readTimeout))
		if mt == websocket.TextMessage && strings.EqualFold(strings.TrimSpace(string(msg)), "ping") {
			h.write(c, websocket.TextMessage, []byte("pong"))
		}
	}
}

// pingLoop keeps quiet pages alive; browsers answer pings on their own.
func (h *Hub) pingLoop(sessionID string, c *client) {
	ticker := time.NewTicker(h.pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.wmu.Lock()
			err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout))
			c.wmu.Unlock()
			if err != nil {
				h.remove(sessionID, c)
				return
			}
		}
	}
}

func (h *Hub) remove(sessionID string, c *client) {
	c.stop()
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.conns[sessionID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.conns, sessionID)
		}
	}
}

func (h *Hub) write(c *client, messageType int, data []byte) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	return h.writeLocked(c, messageType, data)
}

// writeLocked expects c.wmu to be held.
func (h *Hub) writeLocked(c *client, messageType int, data []byte) error {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	err := c.conn.WriteMessage(messageType, data)
	if err != nil {
		h.log.Debug().Err(err).Msg("notification ws write failed")
	}
	return err
}

// Publish sends n to every connection of sessionID and returns how many
// connections took it. Zero means nobody is listening.
func (h *Hub) Publish(sessionID string, n models.Notification) int {
	h.mu.RLock()
	set := h.conns[sessionID]
	targets := make([]*client, 0, len(set))
	for c := range set {
		targets = append(targets, c)
	}
	h.mu.RUnlock()
	if len(targets) == 0 {
		return 0
	}

	payload, err := json.Marshal(n)
	if err != nil {
		return 0
	}
	delivered := 0
	for _, c := range targets {
		if h.write(c, websocket.TextMessage, payload) == nil {
			delivered++
		}
	}
	return delivered
}

// Connections returns the number of live connections of sessionID.
func (h *Hub) Connections(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[sessionID])
}

// Close drops every connection.
func (h *Hub) Close() {
	h.mu.Lock()
	all := h.conns
	h.conns = make(map[string]map[*client]struct{})
	h.mu.Unlock()
	for _, set := range all {
		for c := range set {
			c.stop()
		}
	}
}
