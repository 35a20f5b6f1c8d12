package terminal

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/ugaemi/pawseek/internal/catalog"
	"github.com/ugaemi/pawseek/internal/geom"
	"github.com/ugaemi/pawseek/internal/session"
)

const frameInterval = 33 * time.Millisecond

type phase int

const (
	phaseSplash phase = iota
	phaseIntro
	phasePlaying
	phaseWon
)

// Options selects what the terminal game plays.
type Options struct {
	Scene      catalog.Scene
	Difficulty catalog.Difficulty
	Pool       []catalog.Kind
	Rand       *rand.Rand
	Sound      session.SoundPlayer
}

// circle is an animated reveal cut-out.
type circle struct {
	center  geom.Point
	from    float64
	to      float64
	start   time.Time
	dur     time.Duration
	closing bool
}

// dialog is the found dialog and its fade state.
type dialog struct {
	content    session.FoundDialog
	start      time.Time
	dismissing bool
	dismissAt  time.Time
	dismissDur time.Duration
}

// Game is the terminal front-end. It renders one session at a time and
// implements session.Presenter. Everything except event polling runs on the
// runner goroutine.
type Game struct {
	screen tcell.Screen
	runner *session.Runner
	sched  session.Scheduler
	opts   Options
	now    func() time.Time

	session *session.Session
	grid    grid
	buttons tcell.ButtonMask

	phase      phase
	introStart time.Time
	introDur   time.Duration
	reveal     *circle
	dialog     *dialog
}

// NewGame builds a game on an initialized screen and places the first
// session.
func NewGame(screen tcell.Screen, opts Options) (*Game, error) {
	r := session.NewRunner()
	g := &Game{
		screen: screen,
		runner: r,
		sched:  r,
		opts:   opts,
		now:    time.Now,
	}
	if err := g.newSession(); err != nil {
		return nil, err
	}
	return g, nil
}

// Session returns the session currently on screen.
func (g *Game) Session() *session.Session { return g.session }

func (g *Game) newSession() error {
	cols, rows := g.screen.Size()
	viewport := ViewportFor(cols, rows)

	s, err := session.New(session.Options{
		Scene:      g.opts.Scene,
		Difficulty: g.opts.Difficulty,
		Pool:       g.opts.Pool,
		Viewport:   viewport,
		Measurer:   cellMeasurer{},
		Rand:       g.opts.Rand,
		Presenter:  g,
		Sound:      g.opts.Sound,
		Scheduler:  g.sched,
	})
	if err != nil {
		return fmt.Errorf("new session: %w", err)
	}

	if g.session != nil {
		g.session.Close()
	}
	g.session = s
	g.grid = grid{cols: cols, rows: rows, viewport: viewport}
	g.phase = phaseSplash
	g.reveal = nil
	g.dialog = nil
	return nil
}

// Run drives the game until ctx is done or the player quits.
func (g *Game) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g.screen.EnableMouse()
	go g.pollEvents()
	go g.tick(ctx)

	g.runner.Post(g.draw)
	g.runner.Run(ctx)
	if g.session != nil {
		g.session.Close()
	}
}

// Quit stops the game loop.
func (g *Game) Quit() {
	g.runner.Stop()
	g.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

func (g *Game) pollEvents() {
	for {
		ev := g.screen.PollEvent()
		if ev == nil {
			return
		}
		if !g.runner.Post(func() { g.handleEvent(ev) }) {
			return
		}
	}
}

func (g *Game) tick(ctx context.Context) {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-g.runner.Done():
			return
		case <-ticker.C:
			g.runner.Post(g.draw)
		}
	}
}

// handleEvent must run on the runner goroutine.
func (g *Game) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC,
			ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			g.Quit()
			return
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'n':
			if err := g.newSession(); err != nil {
				slog.Error("failed to start new game", "error", err)
			}
		}

	case *tcell.EventMouse:
		// Only the press counts; drags and releases do not probe.
		pressed := ev.Buttons()&tcell.Button1 != 0 && g.buttons&tcell.Button1 == 0
		g.buttons = ev.Buttons()
		if !pressed {
			return
		}
		x, y := ev.Position()
		g.session.Probe(g.grid.center(x, y))

	case *tcell.EventResize:
		cols, rows := g.screen.Size()
		g.grid.cols, g.grid.rows = cols, rows
		g.screen.Sync()
	}
	g.draw()
}

func (g *Game) BeginIntro(d time.Duration) {
	g.phase = phaseIntro
	g.introStart = g.now()
	g.introDur = d
}

func (g *Game) Reveal(req session.RevealRequest) {
	g.reveal = &circle{
		center: req.Center,
		from:   req.StartRadius,
		to:     req.Radius,
		start:  g.now(),
		dur:    req.Duration,
	}
}

func (g *Game) Hide(req session.HideRequest) {
	if g.reveal == nil {
		return
	}
	g.reveal = &circle{
		center:  g.reveal.center,
		from:    g.reveal.radius(g.now()),
		start:   g.now(),
		dur:     req.Duration,
		closing: true,
	}
}

// ShowFound opens the dialog and reports it ready once it has faded in.
func (g *Game) ShowFound(d session.FoundDialog) {
	g.dialog = &dialog{content: d, start: g.now()}
	s := g.session
	g.sched.After(d.FadeIn, s.PresentationReady)
}

func (g *Game) Dismiss(d time.Duration) {
	if g.dialog == nil {
		return
	}
	g.dialog.dismissing = true
	g.dialog.dismissAt = g.now()
	g.dialog.dismissDur = d
}

func (g *Game) ShowWon() {
	g.phase = phaseWon
	g.reveal = nil
}

// progress returns how far an animation started at start has run, in [0, 1].
func progress(now, start time.Time, d time.Duration) float64 {
	if d <= 0 {
		return 1
	}
	return geom.Clamp(float64(now.Sub(start))/float64(d), 0, 1)
}

func (c *circle) radius(now time.Time) float64 {
	p := progress(now, c.start, c.dur)
	if c.closing {
		return c.from * (1 - p)
	}
	return c.from + (c.to-c.from)*p
}

func (c *circle) done(now time.Time) bool {
	return c.closing && progress(now, c.start, c.dur) >= 1
}
