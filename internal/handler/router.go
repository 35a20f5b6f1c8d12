package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/ugaemi/pawseek/internal/config"
	"github.com/ugaemi/pawseek/internal/session"
	"github.com/ugaemi/pawseek/internal/ws"
)

// Router dispatches incoming messages to the appropriate handler.
type Router struct {
	games *GameHandler

	// sessionMap tracks client ID -> session ID. Each connection owns at most
	// one session and nothing is shared between connections.
	sessionMap map[string]string
	mu         sync.RWMutex
}

// NewRouter creates a new message router. Sessions created through it stop
// when ctx is done.
func NewRouter(ctx context.Context, sm *session.Manager, defaults config.Settings) *Router {
	r := &Router{
		sessionMap: make(map[string]string),
	}
	r.games = NewGameHandler(ctx, sm, defaults, r)
	return r
}

// RegisterSession maps a client ID to a session ID.
func (r *Router) RegisterSession(clientID, sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessionMap[clientID] = sessionID
}

// UnregisterSession removes a client's session mapping and returns the
// session ID it had, if any.
func (r *Router) UnregisterSession(clientID string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.sessionMap[clientID]
	delete(r.sessionMap, clientID)
	return id
}

// GetSessionID returns the session ID for a client, or empty string if not found.
func (r *Router) GetSessionID(clientID string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessionMap[clientID]
}

// HandleMessage parses and routes an incoming client message.
func (r *Router) HandleMessage(cm *ws.ClientMessage) {
	var msg ws.Message
	if err := json.Unmarshal(cm.Data, &msg); err != nil {
		slog.Warn("invalid message format", "client", cm.Client.ID, "error", err)
		cm.Client.SendMessage(ws.NewErrorMessage("invalid message format"))
		return
	}

	switch msg.Type {
	case ws.TypeNewGame:
		r.games.HandleNewGame(cm.Client, msg)
	case ws.TypeProbe:
		r.games.HandleProbe(cm.Client, msg)
	case ws.TypePresentationReady:
		r.games.HandlePresentationReady(cm.Client, msg)

	default:
		slog.Warn("unknown message type", "type", msg.Type, "client", cm.Client.ID)
		cm.Client.SendMessage(ws.NewErrorMessage("unknown message type: " + msg.Type))
	}
}

// HandleDisconnect handles client disconnection.
func (r *Router) HandleDisconnect(client *ws.Client) {
	r.games.HandleDisconnect(client)
}
