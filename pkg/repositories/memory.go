package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cbodonnell/tycoon/pkg/repositories/models"
)

// MemoryRepository keeps games in process. Records are copied in and out so
// callers never share snapshots with the store.
type MemoryRepository struct {
	mu    sync.RWMutex
	games map[string]*models.Game
	codes map[string]string
}

func NewMemoryRepository() Repository {
	return &MemoryRepository{
		games: make(map[string]*models.Game),
		codes: make(map[string]string),
	}
}

func (r *MemoryRepository) Close(ctx context.Context) error {
	return nil
}

func (r *MemoryRepository) CreateGame(ctx context.Context, game *models.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.codes[game.Code]; ok {
		return &ErrCodeExists{Code: game.Code}
	}
	now := time.Now()
	game.CreatedAt = now
	game.UpdatedAt = now
	r.games[game.ID] = game.Clone()
	r.codes[game.Code] = game.ID
	return nil
}

func (r *MemoryRepository) LoadGame(ctx context.Context, gameID string) (*models.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.games[gameID]
	if !ok {
		return nil, &ErrNotFound{}
	}
	return g.Clone(), nil
}

func (r *MemoryRepository) LoadGameByCode(ctx context.Context, code string) (*models.Game, error) {
	r.mu.RLock()
	id, ok := r.codes[code]
	r.mu.RUnlock()
	if !ok {
		return nil, &ErrNotFound{}
	}
	return r.LoadGame(ctx, id)
}

func (r *MemoryRepository) SaveGame(ctx context.Context, game *models.Game, expectedVersion int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.games[game.ID]
	if !ok {
		return &ErrNotFound{}
	}
	if stored.Version != expectedVersion {
		return &ErrVersionConflict{Expected: expectedVersion}
	}
	game.Version = expectedVersion + 1
	game.CreatedAt = stored.CreatedAt
	game.UpdatedAt = time.Now()
	r.games[game.ID] = game.Clone()
	return nil
}

func (r *MemoryRepository) ListGames(ctx context.Context, status models.GameStatus) ([]*models.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	games := make([]*models.Game, 0)
	for _, g := range r.games {
		if g.Status == status {
			games = append(games, g.Clone())
		}
	}
	sort.Slice(games, func(i, j int) bool {
		return games[i].CreatedAt.Before(games[j].CreatedAt)
	})
	return games, nil
}
