package session

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/ugaemi/pawseek/internal/catalog"
	"github.com/ugaemi/pawseek/internal/game"
	"github.com/ugaemi/pawseek/internal/geom"
)

var (
	ErrDegenerateViewport = errors.New("viewport has no area")
	ErrNoScheduler        = errors.New("scheduler is required")
)

// Options configures a new session.
type Options struct {
	Scene      catalog.Scene
	Difficulty catalog.Difficulty
	Pool       []catalog.Kind
	Viewport   geom.Size

	Measurer  catalog.Measurer // nil uses catalog.DefaultMeasurer
	Rand      *rand.Rand       // nil seeds from the wall clock
	Presenter Presenter        // nil ignores presentation requests
	Sound     SoundPlayer      // nil drops audio cues
	Scheduler Scheduler
}

type pendingKind int

const (
	pendingNone pendingKind = iota
	pendingIntro
	pendingDwell
)

// Session is one game: the placed entities and the state machine that drives
// probes, reveals and dismissals. It is not safe for concurrent use; every
// method must run on the event loop that also runs the Scheduler's callbacks.
type Session struct {
	ID         string
	Scene      catalog.Scene
	Difficulty catalog.Difficulty
	Pool       []catalog.Kind
	Viewport   geom.Size
	Entities   []*game.PlacedEntity

	state   game.State
	unfound int
	// current is the entity carried by Found and AwaitingDismissal.
	current *game.PlacedEntity

	// In-flight context captured while Transitioning.
	pending pendingKind
	flight  *game.ProbeResult
	cancel  func()
	closed  bool

	sizes     catalog.SizeContext
	rng       *rand.Rand
	presenter Presenter
	sound     SoundPlayer
	sched     Scheduler
}

// New validates opts, places the entities and returns a session waiting for
// its first probe.
func New(opts Options) (*Session, error) {
	if err := catalog.ValidateSelection(opts.Scene, opts.Difficulty, opts.Pool); err != nil {
		return nil, err
	}
	if opts.Viewport.Width <= 0 || opts.Viewport.Height <= 0 {
		return nil, fmt.Errorf("%w: %vx%v", ErrDegenerateViewport, opts.Viewport.Width, opts.Viewport.Height)
	}
	if opts.Scheduler == nil {
		return nil, ErrNoScheduler
	}

	s := &Session{
		ID:         uuid.New().String(),
		Scene:      opts.Scene,
		Difficulty: opts.Difficulty,
		Pool:       append([]catalog.Kind(nil), opts.Pool...),
		Viewport:   opts.Viewport,
		state:      game.StateWaitingForInput,
		sizes: catalog.SizeContext{
			Viewport: opts.Viewport,
			Shrink:   opts.Difficulty.Shrink(),
			Measurer: opts.Measurer,
		},
		rng:       opts.Rand,
		presenter: opts.Presenter,
		sound:     opts.Sound,
		sched:     opts.Scheduler,
	}
	if s.rng == nil {
		now := uint64(time.Now().UnixNano())
		s.rng = rand.New(rand.NewPCG(now, now>>1))
	}
	if s.presenter == nil {
		s.presenter = NopPresenter{}
	}
	if s.sound == nil {
		s.sound = NopSound{}
	}

	placement := game.Place(s.rng, opts.Scene.UsableZone(), opts.Difficulty, s.Pool, s.sizes)
	s.Entities = placement.Entities
	s.unfound = len(placement.Entities)

	if placement.Overlaps > 0 {
		slog.Info("placement overlap accepted", "session", s.ID, "overlaps", placement.Overlaps, "entities", len(s.Entities))
	}
	slog.Info("session created", "session", s.ID, "scene", s.Scene.String(), "difficulty", s.Difficulty.String(), "entities", len(s.Entities))
	return s, nil
}

// State returns the current game state.
func (s *Session) State() game.State { return s.state }

// Unfound returns how many entities are still hidden.
func (s *Session) Unfound() int { return s.unfound }

// Current returns the entity carried by Found or AwaitingDismissal.
func (s *Session) Current() *game.PlacedEntity { return s.current }

// Won reports whether every entity has been found.
func (s *Session) Won() bool { return s.state == game.StateWon }

// Closed reports whether the session has been torn down.
func (s *Session) Closed() bool { return s.closed }

// Sizes returns the footprint context used by this session.
func (s *Session) Sizes() catalog.SizeContext { return s.sizes }

// Probe delivers a player probe at p in viewport coordinates. It reports
// whether the probe was acted on; probes in Transitioning, Found and Won are
// ignored without side effects.
func (s *Session) Probe(p geom.Point) bool {
	if s.closed {
		return false
	}

	switch s.state {
	case game.StateWaitingForInput:
		s.beginIntro()
	case game.StatePlaying:
		s.evaluate(p)
	case game.StateAwaitingDismissal:
		s.Dismiss()
	default:
		slog.Debug("probe ignored", "session", s.ID, "state", s.state.String())
		return false
	}
	return true
}

func (s *Session) beginIntro() {
	s.state = game.StateTransitioning
	s.pending = pendingIntro
	s.presenter.BeginIntro(game.IntroDuration)
	s.cancel = s.sched.After(game.IntroDuration, s.introFinished)
}

func (s *Session) introFinished() {
	if s.closed || s.state != game.StateTransitioning || s.pending != pendingIntro {
		return
	}
	s.pending = pendingNone
	s.cancel = nil
	s.state = game.StatePlaying
	slog.Debug("intro finished", "session", s.ID)
}

func (s *Session) evaluate(p geom.Point) {
	res := game.EvaluateProbe(s.rng, p, game.Unfound(s.Entities), s.Viewport)
	reveal := game.RevealGeometry(p, res.Hit, s.sizes.Footprint(catalog.ReferenceKind).Width)

	s.state = game.StateTransitioning
	s.pending = pendingDwell
	s.flight = &res

	s.presenter.Reveal(RevealRequest{
		Reveal:   reveal,
		Duration: game.RevealDuration,
	})
	if res.Nearest != nil {
		s.sound.Play(SoundRequest{
			Asset:  res.Nearest.Kind.Asset(),
			Pan:    res.Cue.Pan,
			Volume: res.Cue.Volume,
			Pitch:  res.Cue.Pitch,
		})
	}

	slog.Debug("probe evaluated", "session", s.ID, "x", p.X, "y", p.Y, "hit", res.Hit != nil, "distance", res.Distance)
	s.cancel = s.sched.After(game.DwellFor(res.Hit != nil), s.DwellElapsed)
}

// DwellElapsed closes the reveal opened by the last probe. A hit entity is
// marked found and the session moves to Found; a miss returns to Playing. It
// is normally invoked by the scheduler.
func (s *Session) DwellElapsed() {
	if s.closed || s.state != game.StateTransitioning || s.pending != pendingDwell {
		return
	}
	res := s.flight
	s.flight = nil
	s.pending = pendingNone
	s.cancel = nil

	s.presenter.Hide(HideRequest{Duration: game.RevealDuration})

	if res.Hit == nil {
		s.state = game.StatePlaying
		return
	}

	hit := res.Hit
	hit.MarkFound()
	s.unfound--
	s.current = hit
	s.state = game.StateFound

	slog.Info("entity found", "session", s.ID, "kind", hit.Kind.String(), "remaining", s.unfound)
	s.presenter.ShowFound(FoundDialog{
		Entity:    hit,
		Name:      hit.Kind.Name(),
		Fact:      hit.Kind.RandomFact(s.rng),
		Source:    hit.Kind.FactSource(),
		Remaining: s.unfound,
		FadeIn:    game.FoundFadeIn,
	})
}

// PresentationReady signals that the found dialog is fully shown, moving
// Found to AwaitingDismissal. It is ignored in any other state.
func (s *Session) PresentationReady() {
	if s.closed || s.state != game.StateFound {
		return
	}
	s.state = game.StateAwaitingDismissal
}

// Dismiss closes the found dialog. The session returns to Playing, or to
// Won once nothing is left to find. It reports whether anything happened.
func (s *Session) Dismiss() bool {
	if s.closed || s.state != game.StateAwaitingDismissal {
		return false
	}
	s.current = nil
	s.presenter.Dismiss(game.DismissFade)

	if s.unfound == 0 {
		s.state = game.StateWon
		slog.Info("session won", "session", s.ID, "entities", len(s.Entities))
		s.presenter.ShowWon()
		return true
	}
	s.state = game.StatePlaying
	return true
}

// Close tears the session down. Pending callbacks are cancelled and any that
// still fire are ignored.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.flight = nil
	s.pending = pendingNone
	slog.Info("session closed", "session", s.ID, "state", s.state.String())
}

// Snapshot returns a copy of the session's observable state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		ID:         s.ID,
		Scene:      s.Scene.String(),
		Difficulty: s.Difficulty.String(),
		Viewport:   s.Viewport,
		State:      s.state,
		Entities:   make([]game.PlacedEntity, 0, len(s.Entities)),
		Unfound:    s.unfound,
	}
	for _, e := range s.Entities {
		snap.Entities = append(snap.Entities, *e)
	}
	if s.current != nil {
		cur := *s.current
		snap.Current = &cur
	}
	return snap
}
