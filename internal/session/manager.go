package session

import (
	"context"
	"log/slog"
	"sync"
)

// Game pairs a session with the event loop it runs on.
type Game struct {
	Session *Session
	Runner  *Runner
}

// Do runs fn against the session on its loop and waits for it.
func (g *Game) Do(fn func(s *Session)) bool {
	return g.Runner.Call(func() { fn(g.Session) })
}

// Post queues fn against the session on its loop without waiting.
func (g *Game) Post(fn func(s *Session)) bool {
	return g.Runner.Post(func() { fn(g.Session) })
}

// Stop closes the session on its loop, then stops the loop.
func (g *Game) Stop() {
	g.Runner.Call(g.Session.Close)
	g.Runner.Stop()
}

// Manager tracks all live games.
type Manager struct {
	games map[string]*Game // session ID -> game
	mu    sync.RWMutex
}

// NewManager creates a new game manager.
func NewManager() *Manager {
	return &Manager{
		games: make(map[string]*Game),
	}
}

// Create builds a session on a fresh runner and starts the runner. The
// runner is the session's scheduler; opts.Scheduler is ignored.
func (m *Manager) Create(ctx context.Context, opts Options) (*Game, error) {
	r := NewRunner()
	opts.Scheduler = r

	s, err := New(opts)
	if err != nil {
		return nil, err
	}

	g := &Game{Session: s, Runner: r}
	go r.Run(ctx)

	m.mu.Lock()
	m.games[s.ID] = g
	m.mu.Unlock()

	slog.Info("game started", "session", s.ID)
	return g, nil
}

// Get returns a game by session ID.
func (m *Manager) Get(id string) *Game {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.games[id]
}

// Remove stops a game and forgets it.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	g, ok := m.games[id]
	delete(m.games, id)
	m.mu.Unlock()

	if !ok {
		return
	}
	g.Stop()
	slog.Info("game removed", "session", id)
}

// Count returns the number of live games.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

// StopAll stops and forgets every game.
func (m *Manager) StopAll() {
	m.mu.Lock()
	games := m.games
	m.games = make(map[string]*Game)
	m.mu.Unlock()

	for _, g := range games {
		g.Stop()
	}
}
