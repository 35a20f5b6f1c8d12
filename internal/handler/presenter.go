package handler

import (
	"log/slog"
	"time"

	"github.com/ugaemi/pawseek/internal/game"
	"github.com/ugaemi/pawseek/internal/session"
	"github.com/ugaemi/pawseek/internal/ws"
)

// Durations travel as seconds.

type durationPayload struct {
	Duration float64 `json:"duration"`
}

type revealPayload struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	StartRadius float64 `json:"start_radius"`
	Radius      float64 `json:"radius"`
	Duration    float64 `json:"duration"`
}

type foundPayload struct {
	Entity    *game.PlacedEntity `json:"entity"`
	Name      string             `json:"name"`
	Fact      string             `json:"fact"`
	Source    string             `json:"source"`
	Remaining int                `json:"remaining"`
	Lines     []string           `json:"lines"`
	FadeIn    float64            `json:"fade_in"`
}

// presenter renders a session remotely by sending presentation messages to
// the client. It also forwards audio cues, leaving playback to the client.
type presenter struct {
	client *ws.Client
}

func newPresenter(client *ws.Client) *presenter {
	return &presenter{client: client}
}

func (p *presenter) send(msgType string, payload any) {
	msg, err := ws.NewMessage(msgType, payload)
	if err != nil {
		slog.Error("failed to encode presentation message", "type", msgType, "error", err)
		return
	}
	p.client.SendMessage(msg)
}

func (p *presenter) BeginIntro(d time.Duration) {
	p.send(ws.TypeIntro, durationPayload{Duration: d.Seconds()})
}

func (p *presenter) Reveal(req session.RevealRequest) {
	p.send(ws.TypeReveal, revealPayload{
		X:           req.Center.X,
		Y:           req.Center.Y,
		StartRadius: req.StartRadius,
		Radius:      req.Radius,
		Duration:    req.Duration.Seconds(),
	})
}

func (p *presenter) Hide(req session.HideRequest) {
	p.send(ws.TypeHide, durationPayload{Duration: req.Duration.Seconds()})
}

func (p *presenter) ShowFound(d session.FoundDialog) {
	p.send(ws.TypeFound, foundPayload{
		Entity:    d.Entity,
		Name:      d.Name,
		Fact:      d.Fact,
		Source:    d.Source,
		Remaining: d.Remaining,
		Lines:     d.Lines(),
		FadeIn:    d.FadeIn.Seconds(),
	})
}

func (p *presenter) Dismiss(d time.Duration) {
	p.send(ws.TypeDismiss, durationPayload{Duration: d.Seconds()})
}

func (p *presenter) ShowWon() {
	p.send(ws.TypeWon, struct{}{})
}

func (p *presenter) Play(req session.SoundRequest) {
	p.send(ws.TypeSound, req)
}
