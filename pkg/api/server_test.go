package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cbodonnell/tycoon/pkg/api/handlers"
	"github.com/cbodonnell/tycoon/pkg/game"
	"github.com/cbodonnell/tycoon/pkg/messages"
	"github.com/cbodonnell/tycoon/pkg/network"
	"github.com/cbodonnell/tycoon/pkg/queue"
	"github.com/cbodonnell/tycoon/pkg/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nhooyr.io/websocket"
)

type testServer struct {
	*httptest.Server
	manager *game.GameManager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	manager := game.NewGameManager(game.NewGameManagerOptions{
		Repository:       repositories.NewMemoryRepository(),
		ServerEventQueue: queue.NewInMemoryQueue(100),
	})
	t.Cleanup(manager.Stop)
	hub := network.NewHub(network.NewHubOptions{})
	t.Cleanup(hub.Close)

	server := httptest.NewServer(NewRouter(NewAPIServerOptions{
		Games:   manager,
		Viewers: hub,
	}))
	t.Cleanup(server.Close)
	return &testServer{Server: server, manager: manager}
}

func (s *testServer) post(t *testing.T, path string, body interface{}, out interface{}) int {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(s.URL+path, "application/json", bytes.NewReader(b))
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (s *testServer) get(t *testing.T, path string, out interface{}) int {
	t.Helper()
	resp, err := http.Get(s.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// startGame creates a game for Alice, seats Bob and starts it.
func (s *testServer) startGame(t *testing.T) (gameID, aliceID, bobID string) {
	t.Helper()
	var created handlers.CreateGameResponse
	require.Equal(t, http.StatusCreated, s.post(t, "/games", handlers.CreateGameRequest{Name: "Alice"}, &created))
	require.Len(t, created.Code, 4)

	var joined handlers.JoinGameResponse
	require.Equal(t, http.StatusOK, s.post(t, "/games/join", handlers.JoinGameRequest{Code: strings.ToLower(created.Code), Name: "Bob"}, &joined))
	require.Equal(t, created.GameID, joined.GameID)

	var started handlers.GameResponse
	require.Equal(t, http.StatusOK, s.post(t, "/games/"+created.GameID+"/start", struct{}{}, &started))
	require.Equal(t, "playing", string(started.Status))
	return created.GameID, created.PlayerID, joined.PlayerID
}

func TestGameLifecycle(t *testing.T) {
	s := newTestServer(t)
	gameID, aliceID, _ := s.startGame(t)

	var got handlers.GameResponse
	require.Equal(t, http.StatusOK, s.get(t, "/games/"+gameID, &got))
	assert.Equal(t, gameID, got.GameID)
	require.Len(t, got.Snapshot.Players, 2)
	assert.Equal(t, "Alice", got.Snapshot.Players[0].Name)
	assert.Equal(t, "Bob", got.Snapshot.Players[1].Name)
	assert.Equal(t, "Game Started!", got.Snapshot.LastAction)

	var applied messages.ActionResponse
	status := s.post(t, "/games/"+gameID+"/actions", messages.ActionRequest{ActorID: aliceID, Action: "ROLL_DICE"}, &applied)
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, applied.Message)
	assert.Equal(t, applied.Message, applied.Snapshot.LastAction)

	require.Equal(t, http.StatusOK, s.get(t, "/games/"+gameID, &got))
	assert.Greater(t, got.Version, int64(3))
}

func TestActionErrors(t *testing.T) {
	s := newTestServer(t)
	gameID, aliceID, bobID := s.startGame(t)

	tests := []struct {
		name       string
		path       string
		req        messages.ActionRequest
		wantStatus int
		wantReason string
	}{
		{
			name:       "not your turn",
			path:       "/games/" + gameID + "/actions",
			req:        messages.ActionRequest{ActorID: bobID, Action: "ROLL_DICE"},
			wantStatus: http.StatusForbidden,
			wantReason: "NotYourTurn",
		},
		{
			name:       "unknown player",
			path:       "/games/" + gameID + "/actions",
			req:        messages.ActionRequest{ActorID: "nobody", Action: "ROLL_DICE"},
			wantStatus: http.StatusForbidden,
			wantReason: "UnknownPlayer",
		},
		{
			name:       "unknown action",
			path:       "/games/" + gameID + "/actions",
			req:        messages.ActionRequest{ActorID: aliceID, Action: "FLIP_TABLE"},
			wantStatus: http.StatusBadRequest,
			wantReason: "InvalidTarget",
		},
		{
			name:       "missing property",
			path:       "/games/" + gameID + "/actions",
			req:        messages.ActionRequest{ActorID: aliceID, Action: "MORTGAGE"},
			wantStatus: http.StatusBadRequest,
			wantReason: "InvalidTarget",
		},
		{
			name:       "unknown game",
			path:       "/games/missing/actions",
			req:        messages.ActionRequest{ActorID: aliceID, Action: "ROLL_DICE"},
			wantStatus: http.StatusNotFound,
			wantReason: "NotFound",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp messages.ErrorResponse
			status := s.post(t, tt.path, tt.req, &resp)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantReason, resp.Reason)
			assert.NotEmpty(t, resp.Detail)
		})
	}
}

func TestLobbyErrors(t *testing.T) {
	s := newTestServer(t)

	var resp messages.ErrorResponse
	assert.Equal(t, http.StatusBadRequest, s.post(t, "/games", handlers.CreateGameRequest{Name: " "}, &resp))
	assert.Equal(t, "InvalidTarget", resp.Reason)

	assert.Equal(t, http.StatusNotFound, s.post(t, "/games/join", handlers.JoinGameRequest{Code: "ZZZZ", Name: "Bob"}, &resp))

	var created handlers.CreateGameResponse
	require.Equal(t, http.StatusCreated, s.post(t, "/games", handlers.CreateGameRequest{Name: "Alice"}, &created))
	assert.Equal(t, http.StatusBadRequest, s.post(t, "/games/"+created.GameID+"/start", struct{}{}, &resp))
	assert.Equal(t, "RuleViolation", resp.Reason)

	status := s.post(t, "/games/"+created.GameID+"/actions", messages.ActionRequest{ActorID: created.PlayerID, Action: "ROLL_DICE"}, &resp)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "RuleViolation", resp.Reason)

	res, err := http.Post(s.URL+"/games", "application/json", strings.NewReader("{not json"))
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	require.NoError(t, json.NewDecoder(res.Body).Decode(&resp))
	assert.Equal(t, "BadRequest", resp.Reason)
}

func TestRoutes(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusNotFound, s.get(t, "/games/missing", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, s.get(t, "/games/missing/actions", nil))

	req, err := http.NewRequest(http.MethodOptions, s.URL+"/games", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestWatchGame(t *testing.T) {
	s := newTestServer(t)
	gameID, _, _ := s.startGame(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	url := "ws" + strings.TrimPrefix(s.URL, "http") + "/games/" + gameID + "/ws"
	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	defer conn.CloseNow()

	_, data, err := conn.Read(ctx)
	require.NoError(t, err)
	var snapshot messages.ServerSnapshot
	require.NoError(t, json.Unmarshal(data, &snapshot))
	assert.Equal(t, messages.MessageTypeServerSnapshot, snapshot.Type)
	assert.Equal(t, gameID, snapshot.GameID)
	assert.Equal(t, "Game Started!", snapshot.Message)
	require.NotNil(t, snapshot.Snapshot)
	assert.Len(t, snapshot.Snapshot.Players, 2)
}
