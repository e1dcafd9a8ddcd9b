package realtime

import (
	"encoding/json"
	"sync"

	"project-team-tracker/internal/services"

	"go.uber.org/zap"
)

// Client represents a single websocket client connection.
// The network conn itself is managed in the ws handler.
type Client interface {
	Send(message []byte) bool
	Close()
}

// Hub fans change events out to every connected client. It implements
// services.Publisher.
type Hub struct {
	mu      sync.RWMutex
	clients map[Client]struct{}
	logger  *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		clients: make(map[Client]struct{}),
		logger:  log.Named("hub"),
	}
}

// Register adds a client.
func (h *Hub) Register(client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = struct{}{}
}

// Unregister removes a client.
func (h *Hub) Unregister(client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, client)
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends a message to all clients. Failed writes are left for the
// handler to clean up on its side.
func (h *Hub) Broadcast(message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		if ok := c.Send(message); !ok {
			h.logger.Debug("client write failed")
		}
	}
}

// Publish encodes evt as JSON and broadcasts it.
func (h *Hub) Publish(evt services.Event) {
	bytes, err := json.Marshal(evt)
	if err != nil {
		h.logger.Error("event encode failed", zap.String("type", evt.Type), zap.Error(err))
		return
	}
	h.Broadcast(bytes)
}
