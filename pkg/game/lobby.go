package game

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/cbodonnell/tycoon/pkg/game/engine"
	"github.com/cbodonnell/tycoon/pkg/game/types"
	"github.com/cbodonnell/tycoon/pkg/log"
	"github.com/cbodonnell/tycoon/pkg/repositories"
	"github.com/cbodonnell/tycoon/pkg/repositories/models"
	"github.com/google/uuid"
)

const (
	codeLength   = 4
	codeAttempts = 10
	minPlayers   = 2
)

const codeLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

func randomCode() string {
	b := make([]byte, codeLength)
	for i := range b {
		b[i] = codeLetters[rand.Intn(len(codeLetters))]
	}
	return string(b)
}

func newUUID() string {
	return uuid.NewString()
}

// NormalizeCode canonicalizes a room code typed by a player.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func playerName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", engine.NewError(engine.InvalidTarget, "a player name is required")
	}
	return name, nil
}

// CreateGame creates a game in the lobby with hostName as its first player.
// It returns the game and the host's player id.
func (gm *GameManager) CreateGame(ctx context.Context, hostName string) (*models.Game, string, error) {
	name, err := playerName(hostName)
	if err != nil {
		return nil, "", err
	}

	hostID := gm.newID()
	snapshot := gm.engine.NewSnapshot([]types.Seat{{ID: hostID, Name: name}})
	snapshot.LastAction = fmt.Sprintf("%s created the game", name)
	snapshot.Log = []string{snapshot.LastAction}

	for attempt := 0; attempt < codeAttempts; attempt++ {
		g := &models.Game{
			ID:       gm.newID(),
			Code:     gm.newCode(),
			Status:   models.GameStatusLobby,
			Version:  1,
			Snapshot: snapshot,
		}
		err := gm.repository.CreateGame(ctx, g)
		if repositories.IsCodeExists(err) {
			log.Debug("Room code %s is taken, generating another", g.Code)
			continue
		}
		if err != nil {
			return nil, "", fmt.Errorf("failed to create game: %w", err)
		}
		log.Info("Game %s created with code %s", g.ID, g.Code)
		return g, hostID, nil
	}
	return nil, "", fmt.Errorf("failed to find a free room code after %d attempts", codeAttempts)
}

// JoinGame seats a new player in the game with the given room code.
// It returns the game and the new player's id.
func (gm *GameManager) JoinGame(ctx context.Context, code string, name string) (*models.Game, string, error) {
	name, err := playerName(name)
	if err != nil {
		return nil, "", err
	}
	found, err := gm.repository.LoadGameByCode(ctx, NormalizeCode(code))
	if err != nil {
		return nil, "", err
	}

	playerID := gm.newID()
	outcome, err := gm.submit(ctx, found.ID, func(g *models.Game) (string, error) {
		if g.Status != models.GameStatusLobby {
			return "", engine.NewError(engine.RuleViolation, "the game has already started")
		}
		if len(g.Snapshot.Players) >= gm.maxPlayers {
			return "", engine.NewError(engine.RuleViolation, "the game is full")
		}
		g.Snapshot.AddPlayer(types.Seat{ID: playerID, Name: name}, gm.engine.Rules().StartingMoney)
		msg := fmt.Sprintf("%s joined the game", name)
		g.Snapshot.LastAction = msg
		g.Snapshot.Log = append(g.Snapshot.Log, msg)
		return msg, nil
	})
	if err != nil {
		return nil, "", err
	}
	return outcome.Game, playerID, nil
}

// StartGame moves a game out of the lobby.
func (gm *GameManager) StartGame(ctx context.Context, gameID string) (*models.Game, error) {
	outcome, err := gm.submit(ctx, gameID, func(g *models.Game) (string, error) {
		if g.Status != models.GameStatusLobby {
			return "", engine.NewError(engine.RuleViolation, "the game has already started")
		}
		if len(g.Snapshot.Players) < minPlayers {
			return "", engine.NewError(engine.RuleViolation, "at least %d players are needed to start", minPlayers)
		}
		g.Status = models.GameStatusPlaying
		msg := "Game Started!"
		g.Snapshot.LastAction = msg
		g.Snapshot.Log = append(g.Snapshot.Log, msg)
		return msg, nil
	})
	if err != nil {
		return nil, err
	}
	return outcome.Game, nil
}
