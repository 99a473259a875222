package repositories

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cbodonnell/tycoon/pkg/game/types"
	"github.com/cbodonnell/tycoon/pkg/repositories/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGame(code string) *models.Game {
	return &models.Game{
		ID:       uuid.NewString(),
		Code:     code,
		Status:   models.GameStatusLobby,
		Version:  1,
		Snapshot: types.NewSnapshot([]types.Seat{{ID: "a", Name: "Alice"}}, 1500),
	}
}

// testRepository exercises the behaviour every Repository must share.
func testRepository(t *testing.T, repo Repository) {
	ctx := context.Background()
	// stores outside the process may already hold codes from earlier runs
	run := uuid.NewString()[:8]
	code := func(c string) string { return c + run }

	t.Run("create and load", func(t *testing.T) {
		g := newGame(code("ABCD"))
		require.NoError(t, repo.CreateGame(ctx, g))

		got, err := repo.LoadGame(ctx, g.ID)
		require.NoError(t, err)
		assert.Equal(t, g.Code, got.Code)
		assert.Equal(t, models.GameStatusLobby, got.Status)
		assert.Equal(t, int64(1), got.Version)
		assert.Equal(t, g.Snapshot, got.Snapshot)

		byCode, err := repo.LoadGameByCode(ctx, code("ABCD"))
		require.NoError(t, err)
		assert.Equal(t, g.ID, byCode.ID)
	})

	t.Run("duplicate code", func(t *testing.T) {
		require.NoError(t, repo.CreateGame(ctx, newGame(code("DUPE"))))
		err := repo.CreateGame(ctx, newGame(code("DUPE")))
		assert.True(t, IsCodeExists(err), "got %v", err)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.LoadGame(ctx, uuid.NewString())
		assert.True(t, IsNotFound(err), "got %v", err)
		_, err = repo.LoadGameByCode(ctx, code("NONE"))
		assert.True(t, IsNotFound(err), "got %v", err)
		err = repo.SaveGame(ctx, newGame(code("GONE")), 1)
		assert.True(t, IsNotFound(err), "got %v", err)
	})

	t.Run("compare and swap", func(t *testing.T) {
		g := newGame(code("SWAP"))
		require.NoError(t, repo.CreateGame(ctx, g))

		first, err := repo.LoadGame(ctx, g.ID)
		require.NoError(t, err)
		second, err := repo.LoadGame(ctx, g.ID)
		require.NoError(t, err)

		first.Status = models.GameStatusPlaying
		first.Snapshot.LastAction = "Game Started!"
		require.NoError(t, repo.SaveGame(ctx, first, first.Version))
		assert.Equal(t, int64(2), first.Version)

		second.Snapshot.LastAction = "stale"
		err = repo.SaveGame(ctx, second, second.Version)
		assert.True(t, IsVersionConflict(err), "got %v", err)

		got, err := repo.LoadGame(ctx, g.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), got.Version)
		assert.Equal(t, "Game Started!", got.Snapshot.LastAction)
	})

	t.Run("list by status", func(t *testing.T) {
		g := newGame(code("LIST"))
		require.NoError(t, repo.CreateGame(ctx, g))
		g.Status = models.GameStatusFinished
		require.NoError(t, repo.SaveGame(ctx, g, g.Version))

		finished, err := repo.ListGames(ctx, models.GameStatusFinished)
		require.NoError(t, err)
		ids := make([]string, 0, len(finished))
		for _, f := range finished {
			ids = append(ids, f.ID)
		}
		assert.Contains(t, ids, g.ID)

		lobby, err := repo.ListGames(ctx, models.GameStatusLobby)
		require.NoError(t, err)
		for _, l := range lobby {
			assert.NotEqual(t, g.ID, l.ID)
		}
	})
}

func TestMemoryRepository(t *testing.T) {
	testRepository(t, NewMemoryRepository())
}

func TestMemoryRepositoryCopiesRecords(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	g := newGame("COPY")
	require.NoError(t, repo.CreateGame(ctx, g))

	g.Snapshot.Players[0].Money = 0
	got, err := repo.LoadGame(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, 1500, got.Snapshot.Players[0].Money)
}

func TestSQLiteRepository(t *testing.T) {
	ctx := context.Background()
	repo, err := NewSQLiteRepository(ctx, filepath.Join(t.TempDir(), "tycoon.db"), "../../migrations/sqlite")
	require.NoError(t, err)
	defer repo.Close(ctx)

	testRepository(t, repo)
}

func TestSQLiteRepositoryMissingMigrations(t *testing.T) {
	_, err := NewSQLiteRepository(context.Background(), filepath.Join(t.TempDir(), "tycoon.db"), filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestPostgresRepository(t *testing.T) {
	connStr := os.Getenv("TYCOON_TEST_POSTGRES_URL")
	if connStr == "" {
		t.Skip("TYCOON_TEST_POSTGRES_URL not set")
	}
	ctx := context.Background()
	repo, err := NewPostgresRepository(ctx, connStr, "../../migrations/postgres")
	require.NoError(t, err)
	defer repo.Close(ctx)

	testRepository(t, repo)
}

func TestRedisRepository(t *testing.T) {
	addr := os.Getenv("TYCOON_TEST_REDIS_URL")
	if addr == "" {
		t.Skip("TYCOON_TEST_REDIS_URL not set")
	}
	ctx := context.Background()
	repo, err := NewRedisRepository(ctx, NewRedisRepositoryOptions{
		Address: addr,
		Prefix:  "tycoon-test-" + uuid.NewString(),
	})
	require.NoError(t, err)
	defer repo.Close(ctx)

	testRepository(t, repo)
}

func TestRedisRepositoryDialErrors(t *testing.T) {
	tests := []struct {
		name    string
		address string
	}{
		{name: "wrong scheme", address: "http://localhost:6379"},
		{name: "bad database", address: "redis://localhost:6379/notanumber"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRedisRepository(context.Background(), NewRedisRepositoryOptions{Address: tt.address})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "unable to connect to redis")
		})
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "open.db")

	tests := []struct {
		name    string
		connStr string
		wantErr bool
	}{
		{name: "memory", connStr: "memory://"},
		{name: "sqlite", connStr: "sqlite://" + dbPath},
		{name: "sqlite without path", connStr: "sqlite://", wantErr: true},
		{name: "unknown scheme", connStr: "mongodb://localhost", wantErr: true},
		{name: "unparseable", connStr: "://nope", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, err := Open(ctx, tt.connStr, "../../migrations")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer repo.Close(ctx)

			g := newGame("OPEN" + uuid.NewString()[:4])
			require.NoError(t, repo.CreateGame(ctx, g))
			loaded, err := repo.LoadGame(ctx, g.ID)
			require.NoError(t, err)
			assert.Equal(t, g.Code, loaded.Code)
		})
	}
}
