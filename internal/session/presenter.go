package session

import (
	"fmt"
	"time"

	"github.com/ugaemi/pawseek/internal/game"
	"github.com/ugaemi/pawseek/internal/geom"
)

// RevealRequest asks the renderer to open a circular cut-out from radius 0
// to Reveal.Radius over Duration.
type RevealRequest struct {
	game.Reveal
	StartRadius float64       `json:"start_radius"`
	Duration    time.Duration `json:"duration"`
}

// HideRequest asks the renderer to close the current cut-out.
type HideRequest struct {
	Duration time.Duration `json:"duration"`
}

// FoundDialog is the content shown when an entity is found.
type FoundDialog struct {
	Entity    *game.PlacedEntity `json:"entity"`
	Name      string             `json:"name"`
	Fact      string             `json:"fact"`
	Source    string             `json:"source"`
	Remaining int                `json:"remaining"`
	FadeIn    time.Duration      `json:"fade_in"`
}

// SoundRequest is a fire-and-forget audio cue.
type SoundRequest struct {
	Asset  string  `json:"asset"`
	Pan    float64 `json:"pan"`
	Volume float64 `json:"volume"`
	Pitch  float64 `json:"pitch"`
}

// Presenter renders what the session asks for. Methods are called on the
// session's event loop and must not block.
type Presenter interface {
	BeginIntro(d time.Duration)
	Reveal(req RevealRequest)
	Hide(req HideRequest)
	ShowFound(dialog FoundDialog)
	Dismiss(d time.Duration)
	ShowWon()
}

// SoundPlayer plays audio cues. Failures stay inside the player.
type SoundPlayer interface {
	Play(req SoundRequest)
}

// Scheduler runs fn on the session's event loop after d. The returned
// function cancels the callback if it has not run yet.
type Scheduler interface {
	After(d time.Duration, fn func()) (cancel func())
}

// NopPresenter ignores every request.
type NopPresenter struct{}

func (NopPresenter) BeginIntro(time.Duration) {}
func (NopPresenter) Reveal(RevealRequest)     {}
func (NopPresenter) Hide(HideRequest)         {}
func (NopPresenter) ShowFound(FoundDialog)    {}
func (NopPresenter) Dismiss(time.Duration)    {}
func (NopPresenter) ShowWon()                 {}

// NopSound drops every cue.
type NopSound struct{}

func (NopSound) Play(SoundRequest) {}

// Snapshot is a read-only view of a session.
type Snapshot struct {
	ID         string              `json:"id"`
	Scene      string              `json:"scene"`
	Difficulty string              `json:"difficulty"`
	Viewport   geom.Size           `json:"viewport"`
	State      game.State          `json:"state"`
	Current    *game.PlacedEntity  `json:"current,omitempty"`
	Entities   []game.PlacedEntity `json:"entities"`
	Unfound    int                 `json:"unfound"`
}

// Lines returns the dialog text, one line per row.
func (d FoundDialog) Lines() []string {
	return []string{
		fmt.Sprintf("You found a %s!", d.Name),
		fmt.Sprintf("Did you know that %s?", d.Fact),
		"source: " + d.Source,
		fmt.Sprintf("%d left", d.Remaining),
	}
}
