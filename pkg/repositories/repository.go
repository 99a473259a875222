package repositories

import (
	"context"

	"github.com/cbodonnell/tycoon/pkg/repositories/models"
)

type Repository interface {
	Close(ctx context.Context) error
	// CreateGame stores a new game. It fails with ErrCodeExists if the code is taken.
	CreateGame(ctx context.Context, game *models.Game) error
	LoadGame(ctx context.Context, gameID string) (*models.Game, error)
	LoadGameByCode(ctx context.Context, code string) (*models.Game, error)
	// SaveGame replaces the stored game only if its version still equals
	// expectedVersion, and fails with ErrVersionConflict otherwise. On success
	// game.Version is expectedVersion+1.
	SaveGame(ctx context.Context, game *models.Game, expectedVersion int64) error
	ListGames(ctx context.Context, status models.GameStatus) ([]*models.Game, error)
}
