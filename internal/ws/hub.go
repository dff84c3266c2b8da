package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// StatusEvent is pushed to feed subscribers when a charger changes status.
type StatusEvent struct {
	ChargerID string    `json:"charger_id"`
	Status    string    `json:"status"`
	At        time.Time `json:"at"`
}

// Hub fans charger status events out to subscribed clients.
type Hub struct {
	mu     sync.RWMutex
	conns  map[*Conn]struct{}
	logger *zap.Logger
}

// NewHub builds an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		conns:  make(map[*Conn]struct{}),
		logger: logger,
	}
}

// Subscribe wraps the websocket connection and serves it until the client
// disconnects. Blocks, so call from the connection's handler goroutine.
func (h *Hub) Subscribe(socket *websocket.Conn) {
	conn := newConn(socket, h.logger, h.remove)

	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()

	conn.serve()
}

func (h *Hub) remove(conn *Conn) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
}

// BroadcastStatus queues a status event for every subscriber.
func (h *Hub) BroadcastStatus(chargerID, status string) {
	event := StatusEvent{
		ChargerID: chargerID,
		Status:    status,
		At:        time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Warn("failed to encode status event", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for conn := range h.conns {
		conn.enqueue(payload)
	}
}

// Subscribers reports the current subscriber count.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}
