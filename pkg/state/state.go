package state

import (
	"context"
	"errors"

	"github.com/cbodonnell/tycoon/pkg/game/types"
)

// ErrNoState is returned by Get when no snapshot is held for a game.
var ErrNoState = errors.New("no state for game")

// StateManager provides shared access to the latest snapshot of each live game.
// Implementations must be thread-safe.
type StateManager interface {
	// Get returns a copy of the current snapshot of the game.
	Get(ctx context.Context, gameID string) (*types.Snapshot, error)
	// Set sets the current snapshot of the game.
	Set(ctx context.Context, gameID string, snapshot *types.Snapshot) error
	// Delete forgets the game.
	Delete(ctx context.Context, gameID string) error
	// All returns copies of every held snapshot keyed by game id.
	All(ctx context.Context) (map[string]*types.Snapshot, error)
}
