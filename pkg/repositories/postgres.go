package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cbodonnell/tycoon/pkg/log"
	"github.com/cbodonnell/tycoon/pkg/messages"
	"github.com/cbodonnell/tycoon/pkg/repositories/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgUniqueViolation = "23505"

type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository connects to the database and applies the migrations
// found in the migrations directory.
// The caller is responsible for calling Close() on the repository.
func NewPostgresRepository(ctx context.Context, connStr string, migrations string) (Repository, error) {
	pool, err := connectDb(ctx, connStr)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(ctx, migrations, func(ctx context.Context, q string) error {
		_, err := pool.Exec(ctx, q)
		return err
	}); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresRepository{
		pool: pool,
	}, nil
}

func connectDb(ctx context.Context, connStr string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %v", err)
	}

	var username string
	var database string
	err = pool.QueryRow(ctx, "SELECT current_user, current_database()").Scan(&username, &database)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to query database: %v", err)
	}

	log.Info("Connected to %s as %s", database, username)

	return pool, nil
}

func (r *PostgresRepository) Close(ctx context.Context) error {
	r.pool.Close()
	return nil
}

func (r *PostgresRepository) CreateGame(ctx context.Context, game *models.Game) error {
	blob, err := messages.EncodeSnapshot(game.Snapshot)
	if err != nil {
		return err
	}

	q := `
	INSERT INTO games (game_id, code, status, version, snapshot)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING created_at, updated_at;
	`
	err = r.pool.QueryRow(ctx, q, game.ID, game.Code, string(game.Status), game.Version, blob).Scan(&game.CreatedAt, &game.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return &ErrCodeExists{Code: game.Code}
		}
		return fmt.Errorf("failed to insert game: %v", err)
	}
	return nil
}

const pgSelectGame = `
	SELECT game_id, code, status, version, snapshot, created_at, updated_at FROM games
	`

func scanPostgresGame(row pgx.Row) (*models.Game, error) {
	var (
		g      models.Game
		status string
		blob   []byte
	)
	if err := row.Scan(&g.ID, &g.Code, &status, &g.Version, &blob, &g.CreatedAt, &g.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
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
	return &g, nil
}

func (r *PostgresRepository) LoadGame(ctx context.Context, gameID string) (*models.Game, error) {
	return scanPostgresGame(r.pool.QueryRow(ctx, pgSelectGame+"WHERE game_id = $1;", gameID))
}

func (r *PostgresRepository) LoadGameByCode(ctx context.Context, code string) (*models.Game, error) {
	return scanPostgresGame(r.pool.QueryRow(ctx, pgSelectGame+"WHERE code = $1;", code))
}

func (r *PostgresRepository) SaveGame(ctx context.Context, game *models.Game, expectedVersion int64) error {
	blob, err := messages.EncodeSnapshot(game.Snapshot)
	if err != nil {
		return err
	}

	q := `
	UPDATE games SET status = $1, version = $2, snapshot = $3, updated_at = NOW()
	WHERE game_id = $4 AND version = $5
	RETURNING updated_at;
	`
	var updatedAt time.Time
	err = r.pool.QueryRow(ctx, q, string(game.Status), expectedVersion+1, blob, game.ID, expectedVersion).Scan(&updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		var exists bool
		q := `SELECT EXISTS (SELECT 1 FROM games WHERE game_id = $1);`
		if err := r.pool.QueryRow(ctx, q, game.ID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to query game: %v", err)
		}
		if !exists {
			return &ErrNotFound{}
		}
		return &ErrVersionConflict{Expected: expectedVersion}
	}
	if err != nil {
		return fmt.Errorf("failed to update game: %v", err)
	}

	game.Version = expectedVersion + 1
	game.UpdatedAt = updatedAt
	return nil
}

func (r *PostgresRepository) ListGames(ctx context.Context, status models.GameStatus) ([]*models.Game, error) {
	rows, err := r.pool.Query(ctx, pgSelectGame+"WHERE status = $1 ORDER BY created_at;", string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %v", err)
	}
	defer rows.Close()

	games := make([]*models.Game, 0)
	for rows.Next() {
		g, err := scanPostgresGame(rows)
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
