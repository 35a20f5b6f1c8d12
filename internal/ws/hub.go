package ws

import (
	"context"
	"log/slog"
	"sync"
)

// Hub tracks connected clients and funnels their messages into a single
// goroutine, so handlers see one message at a time.
type Hub struct {
	clients    map[string]*Client // client ID -> client
	Register   chan *Client
	Unregister chan *Client
	Incoming   chan *ClientMessage
	done       chan struct{}
	mu         sync.RWMutex

	// OnMessage is called for each incoming client message.
	OnMessage func(cm *ClientMessage)
	// OnDisconnect is called when a client disconnects or the hub shuts down.
	OnDisconnect func(client *Client)
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Incoming:   make(chan *ClientMessage, 256),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's main loop. When ctx is done every remaining client is
// disconnected.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.disconnectAll()
			return

		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()
			slog.Info("client connected", "client", client.ID)

		case client := <-h.Unregister:
			h.disconnect(client)

		case cm := <-h.Incoming:
			if h.OnMessage != nil {
				h.OnMessage(cm)
			}
		}
	}
}

func (h *Hub) disconnect(client *Client) {
	h.mu.Lock()
	_, ok := h.clients[client.ID]
	delete(h.clients, client.ID)
	h.mu.Unlock()

	if !ok {
		return
	}
	client.Close()
	slog.Info("client disconnected", "client", client.ID)
	if h.OnDisconnect != nil {
		h.OnDisconnect(client)
	}
}

func (h *Hub) disconnectAll() {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		h.disconnect(c)
	}
}

// Client returns a connected client by ID.
func (h *Hub) Client(id string) *Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.clients[id]
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
