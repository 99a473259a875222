package models

import (
	"time"

	"github.com/cbodonnell/tycoon/pkg/game/types"
)

type GameStatus string

const (
	GameStatusLobby    GameStatus = "lobby"
	GameStatusPlaying  GameStatus = "playing"
	GameStatusFinished GameStatus = "finished"
)

// Game is the stored record of a single game.
type Game struct {
	ID        string          `json:"id"`
	Code      string          `json:"code"`
	Status    GameStatus      `json:"status"`
	Version   int64           `json:"version"`
	Snapshot  *types.Snapshot `json:"snapshot"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Clone returns a copy of g that shares no mutable state with it.
func (g *Game) Clone() *Game {
	c := *g
	if g.Snapshot != nil {
		c.Snapshot = g.Snapshot.Clone()
	}
	return &c
}
