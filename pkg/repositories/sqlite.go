package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/cbodonnell/tycoon/pkg/messages"
	"github.com/cbodonnell/tycoon/pkg/repositories/models"
	"github.com/mattn/go-sqlite3"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(ctx context.Context, path string, migrations string) (Repository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	if err := runMigrations(ctx, migrations, func(ctx context.Context, q string) error {
		_, err := db.ExecContext(ctx, q)
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteRepository{
		db: db,
	}, nil
}

// runMigrations executes every file in dir in name order.
func runMigrations(ctx context.Context, dir string, exec func(ctx context.Context, q string) error) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %v", err)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		migrationPath := filepath.Join(dir, entry.Name())
		migration, err := os.ReadFile(migrationPath)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %v", migrationPath, err)
		}

		if err := exec(ctx, string(migration)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %v", migrationPath, err)
		}
	}
	return nil
}

func (r *SQLiteRepository) Close(ctx context.Context) error {
	return r.db.Close()
}

func (r *SQLiteRepository) CreateGame(ctx context.Context, game *models.Game) error {
	blob, err := messages.EncodeSnapshot(game.Snapshot)
	if err != nil {
		return err
	}
	now := time.Now()

	q := `
	INSERT INTO games (game_id, code, status, version, snapshot, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?);
	`
	_, err = r.db.ExecContext(ctx, q, game.ID, game.Code, string(game.Status), game.Version, blob, now.UnixMilli(), now.UnixMilli())
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return &ErrCodeExists{Code: game.Code}
		}
		return fmt.Errorf("failed to insert game: %v", err)
	}

	game.CreatedAt = time.UnixMilli(now.UnixMilli())
	game.UpdatedAt = game.CreatedAt
	return nil
}

const sqliteSelectGame = `
	SELECT game_id, code, status, version, snapshot, created_at, updated_at FROM games
	`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteGame(row rowScanner) (*models.Game, error) {
	var (
		g         models.Game
		status    string
		blob      []byte
		createdAt int64
		updatedAt int64
	)
	if err := row.Scan(&g.ID, &g.Code, &status, &g.Version, &blob, &createdAt, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, &ErrNotFound{}
		}
		return nil, fmt.Errorf("failed to scan game: %v", err)
	}
	snapshot, err := messages.DecodeSnapshot(blob)
	if err != nil {
		return nil, err
	}
	g.Status = models.GameStatus(status)
	g.Snapshot = snapshot
	g.CreatedAt = time.UnixMilli(createdAt)
	g.UpdatedAt = time.UnixMilli(updatedAt)
	return &g, nil
}

func (r *SQLiteRepository) LoadGame(ctx context.Context, gameID string) (*models.Game, error) {
	return scanSQLiteGame(r.db.QueryRowContext(ctx, sqliteSelectGame+"WHERE game_id = ?;", gameID))
}

func (r *SQLiteRepository) LoadGameByCode(ctx context.Context, code string) (*models.Game, error) {
	return scanSQLiteGame(r.db.QueryRowContext(ctx, sqliteSelectGame+"WHERE code = ?;", code))
}

func (r *SQLiteRepository) SaveGame(ctx context.Context, game *models.Game, expectedVersion int64) error {
	blob, err := messages.EncodeSnapshot(game.Snapshot)
	if err != nil {
		return err
	}
	now := time.Now().UnixMilli()

	q := `
	UPDATE games SET status = ?, version = ?, snapshot = ?, updated_at = ?
	WHERE game_id = ? AND version = ?;
	`
	res, err := r.db.ExecContext(ctx, q, string(game.Status), expectedVersion+1, blob, now, game.ID, expectedVersion)
	if err != nil {
		return fmt.Errorf("failed to update game: %v", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %v", err)
	}
	if n == 0 {
		var exists int
		err := r.db.QueryRowContext(ctx, "SELECT 1 FROM games WHERE game_id = ?;", game.ID).Scan(&exists)
		if err == sql.ErrNoRows {
			return &ErrNotFound{}
		}
		if err != nil {
			return fmt.Errorf("failed to query game: %v", err)
		}
		return &ErrVersionConflict{Expected: expectedVersion}
	}

	game.Version = expectedVersion + 1
	game.UpdatedAt = time.UnixMilli(now)
	return nil
}

func (r *SQLiteRepository) ListGames(ctx context.Context, status models.GameStatus) ([]*models.Game, error) {
	rows, err := r.db.QueryContext(ctx, sqliteSelectGame+"WHERE status = ? ORDER BY created_at;", string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %v", err)
	}
	defer rows.Close()

	games := make([]*models.Game, 0)
	for rows.Next() {
		g, err := scanSQLiteGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate games: %v", err)
	}
	return games, nil
}
