package handler

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugaemi/pawseek/internal/catalog"
	"github.com/ugaemi/pawseek/internal/config"
	"github.com/ugaemi/pawseek/internal/game"
	"github.com/ugaemi/pawseek/internal/geom"
	"github.com/ugaemi/pawseek/internal/session"
	"github.com/ugaemi/pawseek/internal/ws"
)

type sentMessage struct {
	Type string
	Data json.RawMessage
}

// startedGame is the subset of the game_started snapshot the tests inspect.
type startedGame struct {
	ID         string              `json:"id"`
	Scene      string              `json:"scene"`
	Difficulty string              `json:"difficulty"`
	Viewport   geom.Size           `json:"viewport"`
	State      string              `json:"state"`
	Entities   []game.PlacedEntity `json:"entities"`
	Unfound    int                 `json:"unfound"`
}

// newTestClient creates a test client that captures sent messages.
func newTestClient(id string) (*ws.Client, chan sentMessage) {
	ch := make(chan sentMessage, 10)
	client := &ws.Client{
		ID:   id,
		Send: make(chan []byte, 256),
	}

	// Read sent messages in background
	go func() {
		for data := range client.Send {
			var msg sentMessage
			json.Unmarshal(data, &msg)
			ch <- msg
		}
	}()

	return client, ch
}

func setupRouterTest(t *testing.T) (*Router, *session.Manager) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	sm := session.NewManager()
	t.Cleanup(func() {
		sm.StopAll()
		cancel()
	})

	defaults := config.Settings{
		Scene:      catalog.SceneFarm,
		Difficulty: catalog.DifficultyEasy,
		Pool:       []catalog.Kind{catalog.KindDog},
		Viewport:   geom.Size{Width: 1000, Height: 1000},
	}
	return NewRouter(ctx, sm, defaults), sm
}

func send(router *Router, client *ws.Client, msgType string, payload any) {
	var data json.RawMessage
	if payload != nil {
		data, _ = json.Marshal(payload)
	}
	raw, _ := json.Marshal(ws.Message{Type: msgType, Data: data})
	router.HandleMessage(&ws.ClientMessage{Client: client, Data: raw})
}

func readResponseWithTimeout(t *testing.T, ch chan sentMessage, timeout time.Duration) sentMessage {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(timeout):
		t.Fatal("timeout waiting for response")
		return sentMessage{}
	}
}

func readResponse(t *testing.T, ch chan sentMessage) sentMessage {
	t.Helper()
	return readResponseWithTimeout(t, ch, time.Second)
}

func readError(t *testing.T, ch chan sentMessage) string {
	t.Helper()
	resp := readResponse(t, ch)
	require.Equal(t, ws.TypeError, resp.Type)
	var errMsg ws.ErrorMessage
	require.NoError(t, json.Unmarshal(resp.Data, &errMsg))
	return errMsg.Message
}

func startGame(t *testing.T, router *Router, client *ws.Client, ch chan sentMessage, req any) startedGame {
	t.Helper()
	send(router, client, ws.TypeNewGame, req)
	resp := readResponse(t, ch)
	require.Equal(t, ws.TypeGameStarted, resp.Type)

	var g startedGame
	require.NoError(t, json.Unmarshal(resp.Data, &g))
	return g
}

func TestHandleNewGame_Defaults(t *testing.T) {
	router, sm := setupRouterTest(t)
	client, ch := newTestClient("c1")

	g := startGame(t, router, client, ch, nil)
	assert.NotEmpty(t, g.ID)
	assert.Equal(t, "farm", g.Scene)
	assert.Equal(t, "easy", g.Difficulty)
	assert.Equal(t, "waiting_for_input", g.State)
	assert.Equal(t, geom.Size{Width: 1000, Height: 1000}, g.Viewport)
	assert.GreaterOrEqual(t, len(g.Entities), 2)
	assert.LessOrEqual(t, len(g.Entities), 3)
	assert.Equal(t, len(g.Entities), g.Unfound)
	for _, e := range g.Entities {
		assert.Equal(t, catalog.KindDog, e.Kind)
	}

	assert.Equal(t, 1, sm.Count())
	assert.Equal(t, g.ID, router.GetSessionID(client.ID))
}

func TestHandleNewGame_Overrides(t *testing.T) {
	router, _ := setupRouterTest(t)
	client, ch := newTestClient("c1")

	g := startGame(t, router, client, ch, newGameRequest{
		Width:      800,
		Height:     600,
		Scene:      "snowy_forest",
		Difficulty: "hard",
		Animals:    []string{"cat", "rabbit"},
	})
	assert.Equal(t, "snowy-forest", g.Scene)
	assert.Equal(t, "hard", g.Difficulty)
	assert.Equal(t, geom.Size{Width: 800, Height: 600}, g.Viewport)
	assert.GreaterOrEqual(t, len(g.Entities), 7)
	for _, e := range g.Entities {
		assert.Contains(t, []catalog.Kind{catalog.KindCat, catalog.KindRabbit}, e.Kind)
	}
}

func TestHandleNewGame_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		req     any
		wantErr string
	}{
		{"unknown scene", newGameRequest{Scene: "moon"}, "unknown scene"},
		{"unknown difficulty", newGameRequest{Difficulty: "nightmare"}, "unknown difficulty"},
		{"unknown animal", newGameRequest{Animals: []string{"dragon"}}, "unknown entity kind"},
		{"degenerate viewport", newGameRequest{Width: 100}, "viewport has no area"},
		{"malformed", "not an object", "invalid new_game data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, sm := setupRouterTest(t)
			client, ch := newTestClient("c1")

			send(router, client, ws.TypeNewGame, tt.req)
			assert.Contains(t, readError(t, ch), tt.wantErr)
			assert.Equal(t, 0, sm.Count())
		})
	}
}

func TestHandleNewGame_ReplacesExisting(t *testing.T) {
	router, sm := setupRouterTest(t)
	client, ch := newTestClient("c1")

	first := startGame(t, router, client, ch, nil)
	second := startGame(t, router, client, ch, nil)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 1, sm.Count())
	assert.Nil(t, sm.Get(first.ID))
	assert.Equal(t, second.ID, router.GetSessionID(client.ID))
}

func TestHandleNewGame_SessionsAreIndependent(t *testing.T) {
	router, sm := setupRouterTest(t)
	c1, ch1 := newTestClient("c1")
	c2, ch2 := newTestClient("c2")

	g1 := startGame(t, router, c1, ch1, nil)
	g2 := startGame(t, router, c2, ch2, nil)
	assert.NotEqual(t, g1.ID, g2.ID)
	assert.Equal(t, 2, sm.Count())

	// A probe from c1 only reaches c1.
	send(router, c1, ws.TypeProbe, probeRequest{X: 1, Y: 1})
	assert.Equal(t, ws.TypeIntro, readResponse(t, ch1).Type)
	select {
	case msg := <-ch2:
		t.Fatalf("unexpected message for c2: %s", msg.Type)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHandleProbe_Errors(t *testing.T) {
	router, _ := setupRouterTest(t)
	client, ch := newTestClient("c1")

	send(router, client, ws.TypeProbe, probeRequest{X: 1, Y: 1})
	assert.Equal(t, "no game in progress", readError(t, ch))

	send(router, client, ws.TypePresentationReady, nil)
	assert.Equal(t, "no game in progress", readError(t, ch))

	startGame(t, router, client, ch, nil)
	send(router, client, ws.TypeProbe, "oops")
	assert.Equal(t, "invalid probe data", readError(t, ch))
}

func TestHandleMessage_Unknown(t *testing.T) {
	router, _ := setupRouterTest(t)
	client, ch := newTestClient("c1")

	send(router, client, "fly", nil)
	assert.Equal(t, "unknown message type: fly", readError(t, ch))

	router.HandleMessage(&ws.ClientMessage{Client: client, Data: []byte("{")})
	assert.Equal(t, "invalid message format", readError(t, ch))
}

func TestHandleProbe_FirstProbeStartsIntro(t *testing.T) {
	router, _ := setupRouterTest(t)
	client, ch := newTestClient("c1")
	startGame(t, router, client, ch, nil)

	send(router, client, ws.TypeProbe, probeRequest{X: 10, Y: 10})
	resp := readResponse(t, ch)
	require.Equal(t, ws.TypeIntro, resp.Type)

	var intro durationPayload
	require.NoError(t, json.Unmarshal(resp.Data, &intro))
	assert.InDelta(t, game.IntroDuration.Seconds(), intro.Duration, 1e-9)
}

func TestHandleProbe_HitFlow(t *testing.T) {
	router, _ := setupRouterTest(t)
	client, ch := newTestClient("c1")
	g := startGame(t, router, client, ch, nil)

	send(router, client, ws.TypeProbe, probeRequest{})
	require.Equal(t, ws.TypeIntro, readResponse(t, ch).Type)
	time.Sleep(game.IntroDuration + 200*time.Millisecond)

	target := g.Entities[0]
	center := target.Bounds(g.Viewport).Center()
	send(router, client, ws.TypeProbe, probeRequest{X: center.X, Y: center.Y})

	resp := readResponse(t, ch)
	require.Equal(t, ws.TypeReveal, resp.Type)
	var reveal revealPayload
	require.NoError(t, json.Unmarshal(resp.Data, &reveal))
	assert.Equal(t, center.X, reveal.X)
	assert.Equal(t, center.Y, reveal.Y)
	assert.InDelta(t, target.Size.Width/game.RevealRadiusDivisor, reveal.Radius, 1e-9)
	assert.InDelta(t, game.RevealDuration.Seconds(), reveal.Duration, 1e-9)

	resp = readResponse(t, ch)
	require.Equal(t, ws.TypeSound, resp.Type)
	var sound session.SoundRequest
	require.NoError(t, json.Unmarshal(resp.Data, &sound))
	assert.Equal(t, "dog", sound.Asset)
	assert.Equal(t, 0.0, sound.Pan)
	assert.Equal(t, 1.0, sound.Volume)

	assert.Equal(t, ws.TypeHide, readResponse(t, ch).Type)

	resp = readResponse(t, ch)
	require.Equal(t, ws.TypeFound, resp.Type)
	var found foundPayload
	require.NoError(t, json.Unmarshal(resp.Data, &found))
	assert.Equal(t, target.ID, found.Entity.ID)
	assert.True(t, found.Entity.Found)
	assert.Equal(t, "dog", found.Name)
	assert.Equal(t, len(g.Entities)-1, found.Remaining)
	assert.Len(t, found.Lines, 4)

	// Dismissal only works once the dialog is up.
	send(router, client, ws.TypePresentationReady, nil)
	send(router, client, ws.TypeProbe, probeRequest{})
	assert.Equal(t, ws.TypeDismiss, readResponse(t, ch).Type)
}

func TestHandleDisconnect_RemovesSession(t *testing.T) {
	router, sm := setupRouterTest(t)
	client, ch := newTestClient("c1")
	g := startGame(t, router, client, ch, nil)

	router.HandleDisconnect(client)
	assert.Equal(t, 0, sm.Count())
	assert.Nil(t, sm.Get(g.ID))
	assert.Empty(t, router.GetSessionID(client.ID))

	// Unknown clients are ignored.
	other, _ := newTestClient("c2")
	router.HandleDisconnect(other)
}
