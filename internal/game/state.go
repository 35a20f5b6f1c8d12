package game

import "encoding/json"

// State is the game progression state of a session.
type State int

const (
	StateWaitingForInput State = iota
	StateTransitioning
	StatePlaying
	StateFound
	StateAwaitingDismissal
	StateWon
)

func (s State) String() string {
	switch s {
	case StateWaitingForInput:
		return "waiting_for_input"
	case StateTransitioning:
		return "transitioning"
	case StatePlaying:
		return "playing"
	case StateFound:
		return "found"
	case StateAwaitingDismissal:
		return "awaiting_dismissal"
	case StateWon:
		return "won"
	default:
		return "unknown"
	}
}

// AcceptsProbe reports whether a probe delivered in this state does anything.
func (s State) AcceptsProbe() bool {
	switch s {
	case StateWaitingForInput, StatePlaying, StateAwaitingDismissal:
		return true
	default:
		return false
	}
}

// MarshalJSON serializes State as a string.
func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}
