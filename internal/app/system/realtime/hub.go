// internal/app/system/realtime/hub.go
package realtime

import (
	"sync"

	"go.uber.org/zap"
)

// EventNewNotification is pushed whenever a notification is stored for a user.
const EventNewNotification = "new_notification"

// Message is the frame written to clients.
type Message struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

const defaultSendBuffer = 32

// Hub tracks live connections per user. A user may hold several
// connections (phone and tablet); each gets every message.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}

	log        *zap.Logger
	sendBuffer int
	closed     bool
}

// NewHub creates an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		log:        logger,
		sendBuffer: defaultSendBuffer,
	}
}

func (h *Hub) register(c *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	set, ok := h.clients[c.userID]
	if !ok {
		set = make(map[*Client]struct{})
		h.clients[c.userID] = set
	}
	set[c] = struct{}{}
	h.log.Debug("ws client registered",
		zap.String("user_id", c.userID),
		zap.String("conn_id", c.id),
		zap.Int("user_conns", len(set)))
	return true
}

// unregister removes c and closes its send channel. Only the call that
// actually removes c closes the channel, so repeated calls are harmless.
func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *Client) {
	set, ok := h.clients[c.userID]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.clients, c.userID)
	}
	close(c.send)
	h.log.Debug("ws client unregistered",
		zap.String("user_id", c.userID),
		zap.String("conn_id", c.id))
}

// Publish queues a message for every connection of userID and returns how
// many accepted it. Connections whose buffers are full are dropped rather
// than allowed to block the caller.
func (h *Hub) Publish(userID, event string, data any) int {
	msg := Message{Event: event, Data: data}

	var slow []*Client
	delivered := 0

	h.mu.RLock()
	for c := range h.clients[userID] {
		select {
		case c.send <- msg:
			delivered++
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	if len(slow) > 0 {
		h.mu.Lock()
		for _, c := range slow {
			h.log.Warn("ws client too slow, dropping",
				zap.String("user_id", c.userID),
				zap.String("conn_id", c.id))
			h.removeLocked(c)
		}
		h.mu.Unlock()
	}
	return delivered
}

// Connected returns the number of live connections for userID.
func (h *Hub) Connected(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// Total returns the number of live connections across all users.
func (h *Hub) Total() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, set := range h.clients {
		n += len(set)
	}
	return n
}

// Close drops every connection and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for _, set := range h.clients {
		for c := range set {
			h.removeLocked(c)
		}
	}
}
