package repositories

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/cbodonnell/tycoon/pkg/messages"
	"github.com/cbodonnell/tycoon/pkg/repositories/models"
	"github.com/gomodule/redigo/redis"
)

// RedisRepository stores each game as a hash. Saves are guarded with
// WATCH/MULTI on the game key.
type RedisRepository struct {
	pool   *redis.Pool
	prefix string
}

const dialTimeout = 5 * time.Second

type NewRedisRepositoryOptions struct {
	// Address is a redis:// URL.
	Address string
	// Prefix namespaces every key. Defaults to "tycoon".
	Prefix string
}

func NewRedisRepository(ctx context.Context, opts NewRedisRepositoryOptions) (Repository, error) {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = "tycoon"
	}
	pool := &redis.Pool{
		MaxIdle:     10,
		IdleTimeout: 60 * time.Second,
		DialContext: func(ctx context.Context) (redis.Conn, error) {
			return redis.DialURL(opts.Address, redis.DialConnectTimeout(dialTimeout))
		},
	}

	conn, err := pool.GetContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to redis: %v", err)
	}
	defer conn.Close()
	if _, err := conn.Do("PING"); err != nil {
		return nil, fmt.Errorf("unable to ping redis: %v", err)
	}

	return &RedisRepository{
		pool:   pool,
		prefix: prefix,
	}, nil
}

func (r *RedisRepository) gameKey(gameID string) string {
	return fmt.Sprintf("%s:game:%s", r.prefix, gameID)
}

func (r *RedisRepository) codeKey(code string) string {
	return fmt.Sprintf("%s:code:%s", r.prefix, code)
}

func (r *RedisRepository) statusKey(status models.GameStatus) string {
	return fmt.Sprintf("%s:status:%s", r.prefix, status)
}

func (r *RedisRepository) Close(ctx context.Context) error {
	return r.pool.Close()
}

func (r *RedisRepository) CreateGame(ctx context.Context, game *models.Game) error {
	blob, err := messages.EncodeSnapshot(game.Snapshot)
	if err != nil {
		return err
	}
	conn, err := r.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to get redis connection: %v", err)
	}
	defer conn.Close()

	claimed, err := redis.Int(conn.Do("SETNX", r.codeKey(game.Code), game.ID))
	if err != nil {
		return fmt.Errorf("failed to claim code: %v", err)
	}
	if claimed == 0 {
		return &ErrCodeExists{Code: game.Code}
	}

	now := time.Now().UnixMilli()
	conn.Send("MULTI")
	conn.Send("HSET", redis.Args{}.Add(r.gameKey(game.ID)).AddFlat(map[string]interface{}{
		"code":       game.Code,
		"status":     string(game.Status),
		"version":    game.Version,
		"snapshot":   blob,
		"created_at": now,
		"updated_at": now,
	})...)
	conn.Send("SADD", r.statusKey(game.Status), game.ID)
	if _, err := conn.Do("EXEC"); err != nil {
		conn.Do("DEL", r.codeKey(game.Code))
		return fmt.Errorf("failed to store game: %v", err)
	}

	game.CreatedAt = time.UnixMilli(now)
	game.UpdatedAt = game.CreatedAt
	return nil
}

func (r *RedisRepository) load(conn redis.Conn, gameID string) (*models.Game, error) {
	values, err := redis.StringMap(conn.Do("HGETALL", r.gameKey(gameID)))
	if err != nil {
		return nil, fmt.Errorf("failed to load game: %v", err)
	}
	if len(values) == 0 {
		return nil, &ErrNotFound{}
	}

	version, err := strconv.ParseInt(values["version"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse version: %v", err)
	}
	createdAt, _ := strconv.ParseInt(values["created_at"], 10, 64)
	updatedAt, _ := strconv.ParseInt(values["updated_at"], 10, 64)
	snapshot, err := messages.DecodeSnapshot([]byte(values["snapshot"]))
	if err != nil {
		return nil, err
	}

	return &models.Game{
		ID:        gameID,
		Code:      values["code"],
		Status:    models.GameStatus(values["status"]),
		Version:   version,
		Snapshot:  snapshot,
		CreatedAt: time.UnixMilli(createdAt),
		UpdatedAt: time.UnixMilli(updatedAt),
	}, nil
}

func (r *RedisRepository) LoadGame(ctx context.Context, gameID string) (*models.Game, error) {
	conn, err := r.pool.GetContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get redis connection: %v", err)
	}
	defer conn.Close()
	return r.load(conn, gameID)
}

func (r *RedisRepository) LoadGameByCode(ctx context.Context, code string) (*models.Game, error) {
	conn, err := r.pool.GetContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get redis connection: %v", err)
	}
	defer conn.Close()

	gameID, err := redis.String(conn.Do("GET", r.codeKey(code)))
	if errors.Is(err, redis.ErrNil) {
		return nil, &ErrNotFound{}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve code: %v", err)
	}
	return r.load(conn, gameID)
}

func (r *RedisRepository) SaveGame(ctx context.Context, game *models.Game, expectedVersion int64) error {
	blob, err := messages.EncodeSnapshot(game.Snapshot)
	if err != nil {
		return err
	}
	conn, err := r.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to get redis connection: %v", err)
	}
	defer conn.Close()

	key := r.gameKey(game.ID)
	if _, err := conn.Do("WATCH", key); err != nil {
		return fmt.Errorf("failed to watch game: %v", err)
	}
	values, err := redis.Strings(conn.Do("HMGET", key, "version", "status"))
	if err != nil {
		conn.Do("UNWATCH")
		return fmt.Errorf("failed to read version: %v", err)
	}
	if values[0] == "" {
		conn.Do("UNWATCH")
		return &ErrNotFound{}
	}
	if values[0] != strconv.FormatInt(expectedVersion, 10) {
		conn.Do("UNWATCH")
		return &ErrVersionConflict{Expected: expectedVersion}
	}
	previousStatus := models.GameStatus(values[1])

	now := time.Now().UnixMilli()
	conn.Send("MULTI")
	conn.Send("HSET", key,
		"status", string(game.Status),
		"version", expectedVersion+1,
		"snapshot", blob,
		"updated_at", now,
	)
	if previousStatus != game.Status {
		conn.Send("SREM", r.statusKey(previousStatus), game.ID)
		conn.Send("SADD", r.statusKey(game.Status), game.ID)
	}
	reply, err := conn.Do("EXEC")
	if err != nil {
		return fmt.Errorf("failed to save game: %v", err)
	}
	if reply == nil {
		// the watched key changed between HMGET and EXEC
		return &ErrVersionConflict{Expected: expectedVersion}
	}

	game.Version = expectedVersion + 1
	game.UpdatedAt = time.UnixMilli(now)
	return nil
}

func (r *RedisRepository) ListGames(ctx context.Context, status models.GameStatus) ([]*models.Game, error) {
	conn, err := r.pool.GetContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get redis connection: %v", err)
	}
	defer conn.Close()

	ids, err := redis.Strings(conn.Do("SMEMBERS", r.statusKey(status)))
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %v", err)
	}

	games := make([]*models.Game, 0, len(ids))
	for _, id := range ids {
		g, err := r.load(conn, id)
		if IsNotFound(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	sort.Slice(games, func(i, j int) bool {
		return games[i].CreatedAt.Before(games[j].CreatedAt)
	})
	return games, nil
}
