package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cbodonnell/tycoon/pkg/game"
	"github.com/cbodonnell/tycoon/pkg/game/engine"
	"github.com/cbodonnell/tycoon/pkg/game/types"
	"github.com/cbodonnell/tycoon/pkg/log"
	"github.com/cbodonnell/tycoon/pkg/messages"
	"github.com/cbodonnell/tycoon/pkg/repositories"
	"github.com/cbodonnell/tycoon/pkg/repositories/models"
	"github.com/gorilla/mux"
)

// GameService is the game manager as seen by the HTTP handlers.
type GameService interface {
	CreateGame(ctx context.Context, hostName string) (*models.Game, string, error)
	JoinGame(ctx context.Context, code string, name string) (*models.Game, string, error)
	StartGame(ctx context.Context, gameID string) (*models.Game, error)
	LoadGame(ctx context.Context, gameID string) (*models.Game, error)
	Apply(ctx context.Context, gameID string, actorID string, action types.Action) (*game.Outcome, error)
}

// ViewerServer attaches websocket viewers to a game.
type ViewerServer interface {
	ServeGame(w http.ResponseWriter, r *http.Request, gameID string, initial []byte) error
}

type CreateGameRequest struct {
	Name string `json:"name"`
}

type CreateGameResponse struct {
	GameID   string `json:"gameId"`
	Code     string `json:"code"`
	PlayerID string `json:"playerId"`
}

type JoinGameRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type JoinGameResponse struct {
	GameID   string `json:"gameId"`
	PlayerID string `json:"playerId"`
}

type GameResponse struct {
	GameID   string            `json:"gameId"`
	Code     string            `json:"code"`
	Status   models.GameStatus `json:"status"`
	Version  int64             `json:"version"`
	Snapshot *types.Snapshot   `json:"snapshot"`
}

func gameResponse(g *models.Game) GameResponse {
	return GameResponse{
		GameID:   g.ID,
		Code:     g.Code,
		Status:   g.Status,
		Version:  g.Version,
		Snapshot: g.Snapshot,
	}
}

func HandleCreateGame(svc GameService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateGameRequest
		if !decode(w, r, &req) {
			return
		}
		g, playerID, err := svc.CreateGame(r.Context(), req.Name)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, CreateGameResponse{
			GameID:   g.ID,
			Code:     g.Code,
			PlayerID: playerID,
		})
	}
}

func HandleJoinGame(svc GameService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req JoinGameRequest
		if !decode(w, r, &req) {
			return
		}
		g, playerID, err := svc.JoinGame(r.Context(), req.Code, req.Name)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, JoinGameResponse{
			GameID:   g.ID,
			PlayerID: playerID,
		})
	}
}

func HandleStartGame(svc GameService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g, err := svc.StartGame(r.Context(), mux.Vars(r)["gameID"])
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, gameResponse(g))
	}
}

func HandleGetGame(svc GameService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g, err := svc.LoadGame(r.Context(), mux.Vars(r)["gameID"])
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, gameResponse(g))
	}
}

func HandleApplyAction(svc GameService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req messages.ActionRequest
		if !decode(w, r, &req) {
			return
		}
		action, err := messages.ParseAction(req.Action, req.Payload)
		if err != nil {
			writeError(w, err)
			return
		}
		out, err := svc.Apply(r.Context(), mux.Vars(r)["gameID"], req.ActorID, action)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, messages.ActionResponse{
			Snapshot: out.Game.Snapshot,
			Message:  out.Message,
		})
	}
}

// HandleWatchGame streams the game to a websocket viewer, starting with
// its current state.
func HandleWatchGame(svc GameService, viewers ViewerServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g, err := svc.LoadGame(r.Context(), mux.Vars(r)["gameID"])
		if err != nil {
			writeError(w, err)
			return
		}
		initial, err := messages.SerializeServerSnapshot(&messages.ServerSnapshot{
			GameID:   g.ID,
			Version:  g.Version,
			Message:  g.Snapshot.LastAction,
			Snapshot: g.Snapshot,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		if err := viewers.ServeGame(w, r, g.ID, initial); err != nil {
			log.Debug("Viewer of game %s ended: %v", g.ID, err)
		}
	}
}

// StatusCode maps an error to the HTTP status reported to the client.
func StatusCode(err error) int {
	switch engine.KindOf(err) {
	case engine.UnknownPlayer, engine.NotYourTurn:
		return http.StatusForbidden
	case engine.InvalidTarget, engine.RuleViolation:
		return http.StatusBadRequest
	case engine.TimingViolation:
		return http.StatusTooEarly
	case engine.ConcurrencyConflict:
		return http.StatusConflict
	}
	switch {
	case repositories.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, game.ErrGameBusy):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	status := StatusCode(err)
	resp := messages.NewErrorResponse(err)
	switch status {
	case http.StatusNotFound:
		resp.Reason = "NotFound"
	case http.StatusServiceUnavailable:
		resp.Reason = "Busy"
	case http.StatusInternalServerError:
		log.Error("Request failed: %v", err)
		resp.Detail = "internal error"
	}
	writeJSON(w, status, resp)
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, messages.ErrorResponse{
			Reason: "BadRequest",
			Detail: "request body must be valid JSON",
		})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to encode response: %v", err)
	}
}
