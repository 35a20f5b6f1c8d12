package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ugaemi/pawseek/internal/catalog"
	"github.com/ugaemi/pawseek/internal/config"
	"github.com/ugaemi/pawseek/internal/geom"
	"github.com/ugaemi/pawseek/internal/session"
	"github.com/ugaemi/pawseek/internal/ws"
)

// GameHandler handles session lifecycle and in-game messages.
type GameHandler struct {
	ctx      context.Context
	sm       *session.Manager
	defaults config.Settings
	router   *Router
}

// NewGameHandler creates a new game handler.
func NewGameHandler(ctx context.Context, sm *session.Manager, defaults config.Settings, router *Router) *GameHandler {
	return &GameHandler{
		ctx:      ctx,
		sm:       sm,
		defaults: defaults,
		router:   router,
	}
}

type newGameRequest struct {
	Width      float64  `json:"width"`
	Height     float64  `json:"height"`
	Scene      string   `json:"scene"`
	Difficulty string   `json:"difficulty"`
	Animals    []string `json:"animals"`
}

// HandleNewGame starts a fresh session for the client, replacing any session
// it already had. Omitted fields fall back to the server defaults.
func (h *GameHandler) HandleNewGame(client *ws.Client, msg ws.Message) {
	var req newGameRequest
	if len(msg.Data) > 0 {
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			client.SendMessage(ws.NewErrorMessage("invalid new_game data"))
			return
		}
	}

	opts, err := h.options(req)
	if err != nil {
		client.SendMessage(ws.NewErrorMessage(err.Error()))
		return
	}
	p := newPresenter(client)
	opts.Presenter = p
	opts.Sound = p

	h.endSession(client)

	g, err := h.sm.Create(h.ctx, opts)
	if err != nil {
		client.SendMessage(ws.NewErrorMessage(err.Error()))
		return
	}
	h.router.RegisterSession(client.ID, g.Session.ID)

	var snap session.Snapshot
	g.Do(func(s *session.Session) { snap = s.Snapshot() })
	resp, _ := ws.NewMessage(ws.TypeGameStarted, snap)
	client.SendMessage(resp)

	slog.Info("client started game", "client", client.ID, "session", g.Session.ID)
}

func (h *GameHandler) options(req newGameRequest) (session.Options, error) {
	opts := session.Options{
		Scene:      h.defaults.Scene,
		Difficulty: h.defaults.Difficulty,
		Pool:       h.defaults.Pool,
		Viewport:   h.defaults.Viewport,
	}

	var err error
	if req.Scene != "" {
		if opts.Scene, err = catalog.ParseScene(req.Scene); err != nil {
			return opts, err
		}
	}
	if req.Difficulty != "" {
		if opts.Difficulty, err = catalog.ParseDifficulty(req.Difficulty); err != nil {
			return opts, err
		}
	}
	if len(req.Animals) > 0 {
		if opts.Pool, err = catalog.ParseKinds(strings.Join(req.Animals, ",")); err != nil {
			return opts, err
		}
	}
	if req.Width != 0 || req.Height != 0 {
		if req.Width <= 0 || req.Height <= 0 {
			return opts, fmt.Errorf("%w: %vx%v", session.ErrDegenerateViewport, req.Width, req.Height)
		}
		opts.Viewport = geom.Size{Width: req.Width, Height: req.Height}
	}
	return opts, nil
}

type probeRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// HandleProbe forwards a probe to the client's session.
func (h *GameHandler) HandleProbe(client *ws.Client, msg ws.Message) {
	var req probeRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		client.SendMessage(ws.NewErrorMessage("invalid probe data"))
		return
	}

	g := h.gameFor(client)
	if g == nil {
		client.SendMessage(ws.NewErrorMessage("no game in progress"))
		return
	}

	p := geom.Point{X: req.X, Y: req.Y}
	g.Post(func(s *session.Session) { s.Probe(p) })
}

// HandlePresentationReady tells the client's session the found dialog is up.
func (h *GameHandler) HandlePresentationReady(client *ws.Client, _ ws.Message) {
	g := h.gameFor(client)
	if g == nil {
		client.SendMessage(ws.NewErrorMessage("no game in progress"))
		return
	}
	g.Post(func(s *session.Session) { s.PresentationReady() })
}

// HandleDisconnect tears down the client's session.
func (h *GameHandler) HandleDisconnect(client *ws.Client) {
	h.endSession(client)
}

func (h *GameHandler) gameFor(client *ws.Client) *session.Game {
	id := h.router.GetSessionID(client.ID)
	if id == "" {
		return nil
	}
	return h.sm.Get(id)
}

func (h *GameHandler) endSession(client *ws.Client) {
	if id := h.router.UnregisterSession(client.ID); id != "" {
		h.sm.Remove(id)
	}
}
